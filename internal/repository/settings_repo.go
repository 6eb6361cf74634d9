package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorhub/internal/domain"
)

// SettingsRepository define el contrato de persistencia para la
// configuración de cuenta. Se guarda como un documento por usuario.
type SettingsRepository interface {
	Get(ctx context.Context, userID string) (domain.UserSettings, error)
	Upsert(ctx context.Context, settings domain.UserSettings) error
}

// PgSettingsRepository implementa SettingsRepository usando pgxpool.
type PgSettingsRepository struct {
	pool *pgxpool.Pool
}

func NewPgSettingsRepository(pool *pgxpool.Pool) *PgSettingsRepository {
	return &PgSettingsRepository{pool: pool}
}

func (r *PgSettingsRepository) Get(ctx context.Context, userID string) (domain.UserSettings, error) {
	const query = `
		SELECT user_id, document, updated_at
		FROM user_settings
		WHERE user_id = $1
	`
	var (
		settings domain.UserSettings
		doc      []byte
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(&settings.UserID, &doc, &settings.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.UserSettings{}, err
	}
	if err != nil {
		return domain.UserSettings{}, err
	}
	id, updatedAt := settings.UserID, settings.UpdatedAt
	if err := json.Unmarshal(doc, &settings); err != nil {
		return domain.UserSettings{}, err
	}
	settings.UserID = id
	settings.UpdatedAt = updatedAt
	return settings, nil
}

func (r *PgSettingsRepository) Upsert(ctx context.Context, settings domain.UserSettings) error {
	settings.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO user_settings (user_id, document, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query, settings.UserID, doc, settings.UpdatedAt)
	return err
}
