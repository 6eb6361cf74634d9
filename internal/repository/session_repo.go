package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorhub/internal/domain"
)

// SessionRepository define el contrato de persistencia para sesiones.
type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) error
	GetByID(ctx context.Context, id string) (domain.Session, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.Session, error)
	// ListActive devuelve las sesiones que el runner debe tickear.
	ListActive(ctx context.Context) ([]domain.Session, error)
	UpdateStatus(ctx context.Context, session domain.Session) error
	// SetRating escribe rating/feedback solo si la sesión está completa
	// y todavía no tiene rating; devuelve false si la condición falla.
	SetRating(ctx context.Context, id string, rating int, feedback string) (bool, error)
}

const sessionColumns = `
	id, mentor_id, mentor_name, mentor_avatar, mentor_title,
	user_id, user_name, user_avatar, topic, type,
	scheduled_at, duration_minutes, status, join_link,
	rating, feedback, started_at, ended_at, created_at
`

// PgSessionRepository implementa SessionRepository usando pgxpool.
type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.Session) error {
	const query = `
		INSERT INTO sessions (
			id, mentor_id, mentor_name, mentor_avatar, mentor_title,
			user_id, user_name, user_avatar, topic, type,
			scheduled_at, duration_minutes, status, join_link, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.MentorID,
		session.MentorName,
		session.MentorAvatar,
		session.MentorTitle,
		session.UserID,
		session.UserName,
		session.UserAvatar,
		session.Topic,
		session.Type,
		session.ScheduledAt,
		session.DurationMinutes,
		session.Status,
		session.JoinLink,
		session.CreatedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.Session, error) {
	const query = `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	session, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Session{}, err
	}
	return session, err
}

func (r *PgSessionRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Session, error) {
	const query = `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE user_id = $1 OR mentor_id = $1
		ORDER BY scheduled_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *PgSessionRepository) ListActive(ctx context.Context) ([]domain.Session, error) {
	const query = `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE status IN ('scheduled', 'live')
		ORDER BY scheduled_at ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *PgSessionRepository) UpdateStatus(ctx context.Context, session domain.Session) error {
	const query = `
		UPDATE sessions
		SET status = $2, started_at = $3, ended_at = $4
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.Status,
		session.StartedAt,
		session.EndedAt,
	)
	return err
}

func (r *PgSessionRepository) SetRating(ctx context.Context, id string, rating int, feedback string) (bool, error) {
	const query = `
		UPDATE sessions
		SET rating = $2, feedback = $3
		WHERE id = $1 AND status = 'completed' AND rating IS NULL
	`
	tag, err := r.pool.Exec(ctx, query, id, rating, feedback)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.Session, error) {
	var s domain.Session
	var joinLink, feedback *string
	err := row.Scan(
		&s.ID,
		&s.MentorID,
		&s.MentorName,
		&s.MentorAvatar,
		&s.MentorTitle,
		&s.UserID,
		&s.UserName,
		&s.UserAvatar,
		&s.Topic,
		&s.Type,
		&s.ScheduledAt,
		&s.DurationMinutes,
		&s.Status,
		&joinLink,
		&s.Rating,
		&feedback,
		&s.StartedAt,
		&s.EndedAt,
		&s.CreatedAt,
	)
	if err != nil {
		return domain.Session{}, err
	}
	if joinLink != nil {
		s.JoinLink = *joinLink
	}
	if feedback != nil {
		s.Feedback = *feedback
	}
	return s, nil
}

func collectSessions(rows pgx.Rows) ([]domain.Session, error) {
	var sessions []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
