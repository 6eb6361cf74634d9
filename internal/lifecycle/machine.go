package lifecycle

import (
	"fmt"
	"time"

	"mentorhub/internal/domain"
)

// TickResult es la salida de una evaluación del ciclo de vida: la
// sesión avanzada más los efectos one-shot que disparó esta llamada.
type TickResult struct {
	Session      domain.Session
	SystemNotes  []string
	RatingPrompt bool
}

// Changed indica si la evaluación produjo alguna transición.
func (r TickResult) Changed() bool {
	return len(r.SystemNotes) > 0
}

// Tick reevalúa la sesión contra el instante dado. Es una función pura
// de (sesión, now): puede llamarse con cualquier frecuencia y cada
// transición dispara exactamente una vez, porque el disparo depende del
// estado ya almacenado y no de haber observado el instante exacto del
// umbral (level-triggered).
func Tick(s domain.Session, now time.Time) TickResult {
	res := TickResult{Session: s}

	if res.Session.Status == domain.StatusScheduled && !now.Before(res.Session.ScheduledAt) {
		started := now.UTC()
		res.Session.Status = domain.StatusLive
		res.Session.StartedAt = &started
		res.SystemNotes = append(res.SystemNotes, startNote(res.Session))
	}

	// Duraciones degeneradas cruzan ambos umbrales en la misma llamada:
	// aun así la sesión pasa por Live y emite ambos avisos en orden.
	if res.Session.Status == domain.StatusLive && !now.Before(res.Session.EndsAt()) {
		ended := now.UTC()
		res.Session.Status = domain.StatusCompleted
		res.Session.EndedAt = &ended
		res.SystemNotes = append(res.SystemNotes, endNote)
		res.RatingPrompt = true
	}

	return res
}

// Cancel lleva la sesión a Cancelled desde cualquier estado no
// terminal. Es idempotente: sobre Cancelled o Completed no hace nada.
func Cancel(s domain.Session) (domain.Session, bool) {
	if s.Terminal() {
		return s, false
	}
	s.Status = domain.StatusCancelled
	return s, true
}

// TimeToStart devuelve cuánto falta para el inicio, nunca negativo.
func TimeToStart(s domain.Session, now time.Time) time.Duration {
	d := s.ScheduledAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// TimeRemaining devuelve cuánto falta para el fin, nunca negativo.
func TimeRemaining(s domain.Session, now time.Time) time.Duration {
	d := s.EndsAt().Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// FormatCountdown formatea una cuenta regresiva como "1h 2m 3s",
// "2m 3s" o "3s", igual que el contador de la página de sesión.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

const endNote = "Session has ended. Please rate your experience!"

func startNote(s domain.Session) string {
	if s.JoinLink == "" {
		return "Session has started!"
	}
	return "Session has started! Click the video link to join: " + s.JoinLink
}
