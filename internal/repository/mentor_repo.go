package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorhub/internal/domain"
)

// MentorFilter acota el listado de mentores del marketplace.
type MentorFilter struct {
	Query        string // busca en nombre, título y bio
	Tag          string
	Language     string
	Availability string
	FreeOnly     bool
	Limit        int
}

// MentorRepository define el contrato de lectura sobre mentores. Las
// filas de mentor_profiles (embedding incluido) las escribe el job de
// ingesta externo; este servicio solo las consulta y actualiza el
// agregado de rating.
type MentorRepository interface {
	GetByID(ctx context.Context, id string) (domain.MentorProfile, error)
	Browse(ctx context.Context, filter MentorFilter) ([]domain.MentorProfile, error)
	// ListSimilar busca vecinos por distancia coseno sobre el embedding
	// de expertise del mentor dado.
	ListSimilar(ctx context.Context, id string, k int) ([]domain.MentorProfile, error)
	// ApplyRating incorpora una calificación nueva al promedio.
	ApplyRating(ctx context.Context, id string, rating int) error
}

const mentorColumns = `
	id, user_id, name, title, avatar, bio, tags, languages, topics,
	location, hourly_rate, availability, rating_avg, sessions_completed,
	created_at, updated_at
`

// PgMentorRepository implementa MentorRepository usando pgxpool.
type PgMentorRepository struct {
	pool *pgxpool.Pool
}

func NewPgMentorRepository(pool *pgxpool.Pool) *PgMentorRepository {
	return &PgMentorRepository{pool: pool}
}

func (r *PgMentorRepository) GetByID(ctx context.Context, id string) (domain.MentorProfile, error) {
	const query = `
		SELECT ` + mentorColumns + `
		FROM mentor_profiles
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	profile, err := scanMentor(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MentorProfile{}, err
	}
	return profile, err
}

func (r *PgMentorRepository) Browse(ctx context.Context, filter MentorFilter) ([]domain.MentorProfile, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const query = `
		SELECT ` + mentorColumns + `
		FROM mentor_profiles
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR title ILIKE '%' || $1 || '%' OR bio ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR $2 = ANY(tags))
		  AND ($3 = '' OR $3 = ANY(languages))
		  AND ($4 = '' OR availability = $4)
		  AND (NOT $5 OR hourly_rate = 0)
		ORDER BY rating_avg DESC, sessions_completed DESC
		LIMIT $6
	`
	rows, err := r.pool.Query(ctx, query,
		filter.Query,
		filter.Tag,
		filter.Language,
		filter.Availability,
		filter.FreeOnly,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMentors(rows)
}

func (r *PgMentorRepository) ListSimilar(ctx context.Context, id string, k int) ([]domain.MentorProfile, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT ` + mentorColumns + `
		FROM mentor_profiles
		WHERE id <> $1 AND embedding IS NOT NULL
		ORDER BY embedding <=> (SELECT embedding FROM mentor_profiles WHERE id = $1)
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, id, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMentors(rows)
}

func (r *PgMentorRepository) ApplyRating(ctx context.Context, id string, rating int) error {
	// Promedio incremental: evita releer todas las sesiones del mentor.
	const query = `
		UPDATE mentor_profiles
		SET rating_avg = (rating_avg * sessions_completed + $2) / (sessions_completed + 1),
		    sessions_completed = sessions_completed + 1,
		    updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, rating)
	return err
}

func scanMentor(row rowScanner) (domain.MentorProfile, error) {
	var m domain.MentorProfile
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Title,
		&m.Avatar,
		&m.Bio,
		&m.Tags,
		&m.Languages,
		&m.Topics,
		&m.Location,
		&m.HourlyRate,
		&m.Availability,
		&m.RatingAvg,
		&m.SessionsCompleted,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return domain.MentorProfile{}, err
	}
	return m, nil
}

func collectMentors(rows pgx.Rows) ([]domain.MentorProfile, error) {
	var mentors []domain.MentorProfile
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mentors, nil
}
