package domain

import "time"

// NotificationSettings controla los canales de aviso del usuario.
type NotificationSettings struct {
	Email     bool `json:"email"`
	Push      bool `json:"push"`
	SMS       bool `json:"sms"`
	Marketing bool `json:"marketing"`
}

// PrivacySettings controla la visibilidad del perfil.
type PrivacySettings struct {
	ProfileVisibility string `json:"profile_visibility"` // public, private, friends
	ShowEmail         bool   `json:"show_email"`
	ShowPhone         bool   `json:"show_phone"`
}

// PreferenceSettings guarda idioma, zona horaria y tema.
type PreferenceSettings struct {
	Language string `json:"language"`
	Timezone string `json:"timezone"`
	Theme    string `json:"theme"` // light, dark, auto
}

// ProfileDetails son los campos libres del perfil editable.
type ProfileDetails struct {
	Bio        string   `json:"bio,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Location   string   `json:"location,omitempty"`
	Website    string   `json:"website,omitempty"`
	LinkedIn   string   `json:"linkedin,omitempty"`
	GitHub     string   `json:"github,omitempty"`
	Twitter    string   `json:"twitter,omitempty"`
	Education  string   `json:"education,omitempty"`
	Experience string   `json:"experience,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Interests  []string `json:"interests,omitempty"`
}

// UserSettings agrupa configuración y perfil de un usuario.
type UserSettings struct {
	UserID        string               `json:"user_id"`
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	Preferences   PreferenceSettings   `json:"preferences"`
	Profile       ProfileDetails       `json:"profile"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// DefaultUserSettings devuelve la configuración inicial de una cuenta.
func DefaultUserSettings(userID string) UserSettings {
	return UserSettings{
		UserID: userID,
		Notifications: NotificationSettings{
			Email: true,
			Push:  true,
		},
		Privacy: PrivacySettings{
			ProfileVisibility: "public",
			ShowEmail:         false,
			ShowPhone:         false,
		},
		Preferences: PreferenceSettings{
			Language: "en",
			Timezone: "UTC",
			Theme:    "auto",
		},
	}
}
