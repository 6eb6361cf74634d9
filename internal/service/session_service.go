package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"mentorhub/internal/domain"
	"mentorhub/internal/lifecycle"
	"mentorhub/internal/repository"
)

var ErrSessionServiceNotConfigured = errors.New("session service not configured")

// SessionService persiste las transiciones que decide el paquete
// lifecycle. Es el único escritor del status de una sesión.
type SessionService struct {
	logger   *zap.Logger
	sessions repository.SessionRepository
	messages repository.MessageRepository
	prompts  PromptStore
}

func NewSessionService(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	messages repository.MessageRepository,
	prompts PromptStore,
) *SessionService {
	if prompts == nil {
		prompts = NewMemoryPromptStore()
	}
	return &SessionService{
		logger:   logger,
		sessions: sessions,
		messages: messages,
		prompts:  prompts,
	}
}

func (s *SessionService) Get(ctx context.Context, id string) (domain.Session, error) {
	if s == nil || s.sessions == nil {
		return domain.Session{}, ErrSessionServiceNotConfigured
	}
	return s.sessions.GetByID(ctx, id)
}

func (s *SessionService) ListByUser(ctx context.Context, userID string) ([]domain.Session, error) {
	if s == nil || s.sessions == nil {
		return nil, ErrSessionServiceNotConfigured
	}
	return s.sessions.ListByUserID(ctx, userID)
}

// Tick reevalúa una sesión contra now y persiste lo que haya cambiado:
// status, mensajes de sistema y el flag de rating pendiente. Repetir la
// llamada con el mismo now no duplica efectos porque el estado ya
// avanzado no vuelve a disparar.
func (s *SessionService) Tick(ctx context.Context, id string, now time.Time) (domain.Session, error) {
	if s == nil || s.sessions == nil {
		return domain.Session{}, ErrSessionServiceNotConfigured
	}
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	return s.apply(ctx, lifecycle.Tick(session, now), now)
}

// TickActive aplica un tick a todas las sesiones scheduled/live. El
// fallo de una sesión se registra y no frena a las demás.
func (s *SessionService) TickActive(ctx context.Context, now time.Time) error {
	if s == nil || s.sessions == nil {
		return ErrSessionServiceNotConfigured
	}
	active, err := s.sessions.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, session := range active {
		res := lifecycle.Tick(session, now)
		if !res.Changed() {
			continue
		}
		if _, err := s.apply(ctx, res, now); err != nil {
			s.logger.Warn("session tick persist failed",
				zap.Error(err),
				zap.String("session_id", session.ID),
			)
		}
	}
	return nil
}

// Cancel lleva la sesión a Cancelled. Repetirlo es un no-op sin error.
func (s *SessionService) Cancel(ctx context.Context, id string) (domain.Session, error) {
	if s == nil || s.sessions == nil {
		return domain.Session{}, ErrSessionServiceNotConfigured
	}
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	cancelled, changed := lifecycle.Cancel(session)
	if !changed {
		return session, nil
	}
	if err := s.sessions.UpdateStatus(ctx, cancelled); err != nil {
		return domain.Session{}, err
	}
	return cancelled, nil
}

// TimeToStart y TimeRemaining exponen las consultas derivadas del
// ciclo de vida, siempre >= 0.
func (s *SessionService) TimeToStart(session domain.Session, now time.Time) time.Duration {
	return lifecycle.TimeToStart(session, now)
}

func (s *SessionService) TimeRemaining(session domain.Session, now time.Time) time.Duration {
	return lifecycle.TimeRemaining(session, now)
}

func (s *SessionService) apply(ctx context.Context, res lifecycle.TickResult, now time.Time) (domain.Session, error) {
	if !res.Changed() {
		return res.Session, nil
	}
	if err := s.sessions.UpdateStatus(ctx, res.Session); err != nil {
		return domain.Session{}, err
	}
	for _, note := range res.SystemNotes {
		if _, err := s.messages.Append(ctx, lifecycle.SystemMessage(res.Session.ID, note, now)); err != nil {
			s.logger.Warn("system message append failed",
				zap.Error(err),
				zap.String("session_id", res.Session.ID),
			)
		}
	}
	if res.RatingPrompt && s.prompts != nil {
		if err := s.prompts.MarkPending(ctx, res.Session.ID); err != nil {
			s.logger.Warn("rating prompt flag failed",
				zap.Error(err),
				zap.String("session_id", res.Session.ID),
			)
		}
	}
	return res.Session, nil
}
