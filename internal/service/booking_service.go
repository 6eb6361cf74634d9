package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mentorhub/internal/domain"
	"mentorhub/internal/email"
	"mentorhub/internal/lifecycle"
	"mentorhub/internal/repository"
)

// BookingService convierte una reserva confirmada del wizard en una
// sesión en estado Scheduled.
type BookingService struct {
	logger      *zap.Logger
	sessions    repository.SessionRepository
	messages    repository.MessageRepository
	mentors     repository.MentorRepository
	emailSender email.Sender
}

func NewBookingService(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	messages repository.MessageRepository,
	mentors repository.MentorRepository,
	emailSender email.Sender,
) *BookingService {
	return &BookingService{
		logger:      logger,
		sessions:    sessions,
		messages:    messages,
		mentors:     mentors,
		emailSender: emailSender,
	}
}

// BookingInput son los datos que el wizard junta paso a paso.
type BookingInput struct {
	MentorID        string
	UserID          string
	UserName        string
	UserAvatar      string
	UserEmail       string
	Topic           string
	Type            string
	ScheduledAt     time.Time
	DurationMinutes int
	JoinLink        string
}

const bookedNote = "Session booked successfully! Your mentor will join shortly."

// Book valida la reserva, crea la sesión y deja el primer mensaje de
// sistema en el chat. La sesión nace Scheduled; de ahí en adelante solo
// el ciclo de vida muta su estado.
func (s *BookingService) Book(ctx context.Context, in BookingInput) (domain.Session, error) {
	now := time.Now().UTC()

	mentor, err := s.mentors.GetByID(ctx, in.MentorID)
	if err != nil {
		return domain.Session{}, err
	}

	session, err := domain.NewSession(domain.NewSessionInput{
		MentorID:        mentor.ID.String(),
		MentorName:      mentor.Name,
		MentorAvatar:    mentor.Avatar,
		MentorTitle:     mentor.Title,
		UserID:          in.UserID,
		UserName:        in.UserName,
		UserAvatar:      in.UserAvatar,
		Topic:           in.Topic,
		Type:            in.Type,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: in.DurationMinutes,
		JoinLink:        in.JoinLink,
	}, now)
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.Session{}, err
	}

	if _, err := s.messages.Append(ctx, lifecycle.SystemMessage(session.ID, bookedNote, now)); err != nil {
		s.logger.Warn("booking note append failed", zap.Error(err), zap.String("session_id", session.ID))
	}

	if s.emailSender != nil && in.UserEmail != "" {
		if err := s.emailSender.SendBookingConfirmation(ctx, in.UserEmail, session); err != nil {
			s.logger.Warn("booking confirmation email failed", zap.Error(err), zap.String("session_id", session.ID))
		}
	}

	return session, nil
}
