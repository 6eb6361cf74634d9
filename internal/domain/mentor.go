package domain

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

const (
	AvailabilityAvailable = "available"
	AvailabilityBusy      = "busy"
	AvailabilityAway      = "away"
)

// MentorProfile es la ficha pública de un mentor en el marketplace.
// El embedding de expertise lo escribe un job de ingesta externo y acá
// solo se consulta para buscar mentores similares.
type MentorProfile struct {
	ID                uuid.UUID       `json:"id"`
	UserID            string          `json:"user_id"`
	Name              string          `json:"name"`
	Title             string          `json:"title,omitempty"`
	Avatar            string          `json:"avatar,omitempty"`
	Bio               string          `json:"bio,omitempty"`
	Tags              []string        `json:"tags,omitempty"`
	Languages         []string        `json:"languages,omitempty"`
	Topics            []string        `json:"topics,omitempty"`
	Location          string          `json:"location,omitempty"`
	HourlyRate        int             `json:"hourly_rate"` // 0 = sesiones gratuitas
	Availability      string          `json:"availability"`
	RatingAvg         float64         `json:"rating_avg"`
	SessionsCompleted int             `json:"sessions_completed"`
	Embedding         pgvector.Vector `json:"-"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
