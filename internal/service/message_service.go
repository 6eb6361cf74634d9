package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mentorhub/internal/domain"
	"mentorhub/internal/repository"
)

// MessageService encapsula la lógica para los mensajes del chat.
type MessageService struct {
	sessions repository.SessionRepository
	messages repository.MessageRepository
}

var (
	ErrMessageServiceNotConfigured = errors.New("message service not configured")
	ErrMessageInvalidInput         = errors.New("message invalid input")
)

func NewMessageService(sessions repository.SessionRepository, messages repository.MessageRepository) *MessageService {
	return &MessageService{sessions: sessions, messages: messages}
}

// Append normaliza y agrega un mensaje de texto de un participante.
// El log es append-only: una sesión terminada todavía acepta mensajes
// (una despedida tardía es válida), pero la sesión tiene que existir.
func (s *MessageService) Append(ctx context.Context, msg domain.Message) (domain.Message, error) {
	if s == nil || s.messages == nil {
		return domain.Message{}, ErrMessageServiceNotConfigured
	}

	msg.SessionID = strings.TrimSpace(msg.SessionID)
	msg.SenderID = strings.TrimSpace(msg.SenderID)
	msg.SenderName = strings.TrimSpace(msg.SenderName)
	msg.Content = strings.TrimSpace(msg.Content)

	if msg.SessionID == "" || msg.SenderID == "" || msg.Content == "" {
		return domain.Message{}, ErrMessageInvalidInput
	}
	if msg.Kind == "" {
		msg.Kind = domain.MessageKindText
	}
	if msg.Kind != domain.MessageKindText && msg.Kind != domain.MessageKindSystem {
		return domain.Message{}, ErrMessageInvalidInput
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	if s.sessions != nil {
		if _, err := s.sessions.GetByID(ctx, msg.SessionID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Message{}, fmt.Errorf("%w: session %s does not exist", domain.ErrInvalidState, msg.SessionID)
			}
			return domain.Message{}, err
		}
	}

	return s.messages.Append(ctx, msg)
}

// ListBySession devuelve el chat en orden de inserción.
func (s *MessageService) ListBySession(ctx context.Context, sessionID string) ([]domain.Message, error) {
	if s == nil || s.messages == nil {
		return nil, ErrMessageServiceNotConfigured
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return []domain.Message{}, nil
	}
	return s.messages.ListBySessionID(ctx, sessionID)
}
