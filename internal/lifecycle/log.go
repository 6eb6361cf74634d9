package lifecycle

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"mentorhub/internal/domain"
)

// Log es el historial en memoria de una sesión: append-only, el orden
// de inserción es autoritativo aunque un timestamp llegue desordenado.
// Cada sesión tiene su propio Log; nunca se comparte entre sesiones.
type Log struct {
	mu   sync.Mutex
	msgs []domain.Message
}

func NewLog() *Log {
	return &Log{}
}

// Append agrega el mensaje al final y le asigna su posición.
func (l *Log) Append(msg domain.Message) domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg.Seq = int64(len(l.msgs) + 1)
	l.msgs = append(l.msgs, msg)
	return msg
}

// All devuelve una copia del historial en orden de inserción.
func (l *Log) All() []domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Message, len(l.msgs))
	copy(out, l.msgs)
	return out
}

// Len devuelve la cantidad de mensajes registrados.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.msgs)
}

// SystemMessage construye un mensaje de sistema para una sesión.
func SystemMessage(sessionID, content string, now time.Time) domain.Message {
	return domain.Message{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		SenderID:   domain.SystemSenderID,
		SenderName: "System",
		Kind:       domain.MessageKindSystem,
		Content:    content,
		CreatedAt:  now.UTC(),
	}
}
