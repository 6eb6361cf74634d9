package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mentorhub/internal/domain"
)

func TestMessageService_AppendNormalizesAndDefaults(t *testing.T) {
	sessions := newMemSessionRepo()
	messages := newMemMessageRepo()
	svc := NewMessageService(sessions, messages)

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	session := seedSession(t, sessions, start, 30)

	got, err := svc.Append(context.Background(), domain.Message{
		SessionID: "  " + session.ID + "  ",
		SenderID:  " user-1 ",
		Content:   "  hello there  ",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got.Content != "hello there" {
		t.Fatalf("expected trimmed content, got %q", got.Content)
	}
	if got.Kind != domain.MessageKindText {
		t.Fatalf("expected default kind text, got %s", got.Kind)
	}
	if got.ID == "" {
		t.Fatal("expected generated message id")
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
	if got.Seq != 1 {
		t.Fatalf("expected seq 1, got %d", got.Seq)
	}
}

func TestMessageService_AppendPreservesOrder(t *testing.T) {
	sessions := newMemSessionRepo()
	messages := newMemMessageRepo()
	svc := NewMessageService(sessions, messages)

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	session := seedSession(t, sessions, start, 30)

	// Timestamps desordenados a propósito: el orden de inserción manda.
	stamps := []time.Time{start.Add(time.Hour), start, start.Add(30 * time.Minute)}
	for i, ts := range stamps {
		_, err := svc.Append(context.Background(), domain.Message{
			SessionID: session.ID,
			SenderID:  "user-1",
			Content:   string(rune('A' + i)),
			CreatedAt: ts,
		})
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	log, err := svc.ListBySession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	want := []string{"A", "B", "C"}
	for i, msg := range log {
		if msg.Content != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], msg.Content)
		}
	}
}

func TestMessageService_AppendRejectsInvalidInput(t *testing.T) {
	sessions := newMemSessionRepo()
	svc := NewMessageService(sessions, newMemMessageRepo())

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	session := seedSession(t, sessions, start, 30)

	cases := []domain.Message{
		{SessionID: "", SenderID: "u", Content: "hi"},
		{SessionID: session.ID, SenderID: "", Content: "hi"},
		{SessionID: session.ID, SenderID: "u", Content: "   "},
		{SessionID: session.ID, SenderID: "u", Content: "hi", Kind: "broadcast"},
	}
	for i, msg := range cases {
		if _, err := svc.Append(context.Background(), msg); !errors.Is(err, ErrMessageInvalidInput) {
			t.Fatalf("case %d: expected ErrMessageInvalidInput, got %v", i, err)
		}
	}
}

func TestMessageService_AppendRequiresExistingSession(t *testing.T) {
	svc := NewMessageService(newMemSessionRepo(), newMemMessageRepo())

	_, err := svc.Append(context.Background(), domain.Message{
		SessionID: "missing",
		SenderID:  "user-1",
		Content:   "hello?",
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestMessageService_NilServiceFails(t *testing.T) {
	var svc *MessageService
	if _, err := svc.Append(context.Background(), domain.Message{}); !errors.Is(err, ErrMessageServiceNotConfigured) {
		t.Fatalf("expected ErrMessageServiceNotConfigured, got %v", err)
	}
	if _, err := svc.ListBySession(context.Background(), "x"); !errors.Is(err, ErrMessageServiceNotConfigured) {
		t.Fatalf("expected ErrMessageServiceNotConfigured, got %v", err)
	}
}
