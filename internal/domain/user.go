package domain

import "time"

const (
	RoleMentor = "mentor"
	RoleSeeker = "seeker"
	RoleBoth   = "both"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	Role         string    `json:"role"`
	AuthProvider string    `json:"auth_provider,omitempty"`
	AuthSubject  string    `json:"-"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
