package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mentorhub/internal/domain"
)

// MessageRepository define el contrato de persistencia para mensajes.
// El orden de lectura es el de inserción (seq por sesión), no el de
// los timestamps.
type MessageRepository interface {
	Append(ctx context.Context, message domain.Message) (domain.Message, error)
	ListBySessionID(ctx context.Context, sessionID string) ([]domain.Message, error)
}

// PgMessageRepository implementa MessageRepository usando pgxpool.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Append(ctx context.Context, message domain.Message) (domain.Message, error) {
	// El seq se asigna dentro del INSERT. Dos appends concurrentes
	// pueden leer el mismo MAX; el UNIQUE(session_id, seq) de la tabla
	// hace fallar al segundo en vez de dejar un duplicado.
	const query = `
		INSERT INTO messages (id, session_id, sender_id, sender_name, kind, content, seq, created_at)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			COALESCE((SELECT MAX(seq) FROM messages WHERE session_id = $2), 0) + 1,
			$7
		)
		RETURNING seq
	`
	err := r.pool.QueryRow(ctx, query,
		message.ID,
		message.SessionID,
		message.SenderID,
		message.SenderName,
		message.Kind,
		message.Content,
		message.CreatedAt,
	).Scan(&message.Seq)
	if err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

func (r *PgMessageRepository) ListBySessionID(ctx context.Context, sessionID string) ([]domain.Message, error) {
	const query = `
		SELECT id, session_id, sender_id, sender_name, kind, content, seq, created_at
		FROM messages
		WHERE session_id = $1
		ORDER BY seq ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		err = rows.Scan(
			&msg.ID,
			&msg.SessionID,
			&msg.SenderID,
			&msg.SenderName,
			&msg.Kind,
			&msg.Content,
			&msg.Seq,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
