package email

import (
	"context"
	"errors"

	"mentorhub/internal/domain"
)

// Sender define la interfaz para el envío de correos de reserva.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, toEmail string, session domain.Session) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendBookingConfirmation(_ context.Context, _ string, _ domain.Session) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
