package domain

import "time"

const (
	MessageKindText   = "text"
	MessageKindSystem = "system"
)

// SystemSenderID identifica los mensajes emitidos por la plataforma.
const SystemSenderID = "system"

// Message es un mensaje del chat de una sesión. El orden de inserción
// (Seq) es autoritativo; el timestamp es informativo.
type Message struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Kind       string    `json:"kind"`
	Content    string    `json:"content"`
	Seq        int64     `json:"seq"`
	CreatedAt  time.Time `json:"created_at"`
}
