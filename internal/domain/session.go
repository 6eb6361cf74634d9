package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionStatus representa el estado del ciclo de vida de una sesión.
type SessionStatus string

const (
	StatusScheduled SessionStatus = "scheduled"
	StatusLive      SessionStatus = "live"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

const (
	SessionTypeVideo = "video"
	SessionTypeAudio = "audio"
	SessionTypeChat  = "chat"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid state")
)

// Margen para reservas "que empiezan ahora": el reloj del cliente y el
// del servidor nunca coinciden exactamente.
const scheduleGrace = time.Minute

// Session es una mentoría agendada entre un mentor y un usuario.
type Session struct {
	ID              string        `json:"id"`
	MentorID        string        `json:"mentor_id"`
	MentorName      string        `json:"mentor_name"`
	MentorAvatar    string        `json:"mentor_avatar,omitempty"`
	MentorTitle     string        `json:"mentor_title,omitempty"`
	UserID          string        `json:"user_id"`
	UserName        string        `json:"user_name"`
	UserAvatar      string        `json:"user_avatar,omitempty"`
	Topic           string        `json:"topic"`
	Type            string        `json:"type"`
	ScheduledAt     time.Time     `json:"scheduled_at"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          SessionStatus `json:"status"`
	JoinLink        string        `json:"join_link,omitempty"`
	Rating          *int          `json:"rating,omitempty"`
	Feedback        string        `json:"feedback,omitempty"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	EndedAt         *time.Time    `json:"ended_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// NewSessionInput agrupa los datos de una reserva confirmada.
type NewSessionInput struct {
	MentorID        string
	MentorName      string
	MentorAvatar    string
	MentorTitle     string
	UserID          string
	UserName        string
	UserAvatar      string
	Topic           string
	Type            string
	ScheduledAt     time.Time
	DurationMinutes int
	JoinLink        string
}

// NewSession valida la reserva y construye la sesión en estado Scheduled.
// Los invariantes de construcción se rechazan acá; el ciclo de vida
// posterior nunca produce errores de validación.
func NewSession(in NewSessionInput, now time.Time) (Session, error) {
	in.MentorID = strings.TrimSpace(in.MentorID)
	in.UserID = strings.TrimSpace(in.UserID)
	in.Topic = strings.TrimSpace(in.Topic)
	in.Type = strings.TrimSpace(in.Type)

	if in.MentorID == "" || in.UserID == "" {
		return Session{}, fmt.Errorf("%w: mentor and user are required", ErrValidation)
	}
	if in.DurationMinutes <= 0 {
		return Session{}, fmt.Errorf("%w: duration must be positive, got %d", ErrValidation, in.DurationMinutes)
	}
	if in.ScheduledAt.Before(now.Add(-scheduleGrace)) {
		return Session{}, fmt.Errorf("%w: scheduled time is in the past", ErrValidation)
	}
	switch in.Type {
	case SessionTypeVideo, SessionTypeAudio, SessionTypeChat:
	case "":
		in.Type = SessionTypeVideo
	default:
		return Session{}, fmt.Errorf("%w: unknown session type %q", ErrValidation, in.Type)
	}

	return Session{
		ID:              uuid.NewString(),
		MentorID:        in.MentorID,
		MentorName:      strings.TrimSpace(in.MentorName),
		MentorAvatar:    in.MentorAvatar,
		MentorTitle:     strings.TrimSpace(in.MentorTitle),
		UserID:          in.UserID,
		UserName:        strings.TrimSpace(in.UserName),
		UserAvatar:      in.UserAvatar,
		Topic:           in.Topic,
		Type:            in.Type,
		ScheduledAt:     in.ScheduledAt.UTC(),
		DurationMinutes: in.DurationMinutes,
		Status:          StatusScheduled,
		JoinLink:        strings.TrimSpace(in.JoinLink),
		CreatedAt:       now.UTC(),
	}, nil
}

// EndsAt calcula el fin programado de la sesión.
func (s Session) EndsAt() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// Terminal indica si la sesión ya no admite transiciones.
func (s Session) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCancelled
}
