package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mentorhub/internal/domain"
	"mentorhub/internal/repository"
)

var ErrRatingServiceNotConfigured = errors.New("rating service not configured")

// RatingService captura la calificación post-sesión: a lo sumo una vez
// por sesión, y solo cuando la sesión está completa.
type RatingService struct {
	logger   *zap.Logger
	sessions repository.SessionRepository
	mentors  repository.MentorRepository
	prompts  PromptStore
}

func NewRatingService(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	mentors repository.MentorRepository,
	prompts PromptStore,
) *RatingService {
	if prompts == nil {
		prompts = NewMemoryPromptStore()
	}
	return &RatingService{
		logger:   logger,
		sessions: sessions,
		mentors:  mentors,
		prompts:  prompts,
	}
}

// Submit registra rating y feedback. Falla con ErrInvalidState si la
// sesión no está completa o si ya fue calificada.
func (s *RatingService) Submit(ctx context.Context, sessionID string, rating int, feedback string) (domain.Session, error) {
	if s == nil || s.sessions == nil {
		return domain.Session{}, ErrRatingServiceNotConfigured
	}
	if rating < 1 || rating > 5 {
		return domain.Session{}, fmt.Errorf("%w: rating must be between 1 and 5, got %d", domain.ErrValidation, rating)
	}
	feedback = strings.TrimSpace(feedback)

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	if session.Status != domain.StatusCompleted {
		return domain.Session{}, fmt.Errorf("%w: cannot rate a %s session", domain.ErrInvalidState, session.Status)
	}
	if session.Rating != nil {
		return domain.Session{}, fmt.Errorf("%w: session already rated", domain.ErrInvalidState)
	}

	// El UPDATE condicional es la barrera real contra el doble submit;
	// los chequeos previos solo mejoran el mensaje de error.
	ok, err := s.sessions.SetRating(ctx, sessionID, rating, feedback)
	if err != nil {
		return domain.Session{}, err
	}
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: session already rated", domain.ErrInvalidState)
	}

	session.Rating = &rating
	session.Feedback = feedback

	if err := s.prompts.Dismiss(ctx, sessionID); err != nil {
		s.logger.Warn("rating prompt dismiss failed", zap.Error(err), zap.String("session_id", sessionID))
	}
	if s.mentors != nil {
		if err := s.mentors.ApplyRating(ctx, session.MentorID, rating); err != nil {
			s.logger.Warn("mentor rating update failed", zap.Error(err), zap.String("mentor_id", session.MentorID))
		}
	}

	return session, nil
}

// Skip descarta el aviso sin registrar calificación. Es reversible: un
// submit posterior sigue permitido mientras la sesión no tenga rating.
func (s *RatingService) Skip(ctx context.Context, sessionID string) error {
	if s == nil || s.prompts == nil {
		return ErrRatingServiceNotConfigured
	}
	return s.prompts.Dismiss(ctx, sessionID)
}

// PromptPending indica si la sesión tiene el aviso de calificación
// sin resolver.
func (s *RatingService) PromptPending(ctx context.Context, sessionID string) (bool, error) {
	if s == nil || s.prompts == nil {
		return false, ErrRatingServiceNotConfigured
	}
	return s.prompts.Pending(ctx, sessionID)
}
