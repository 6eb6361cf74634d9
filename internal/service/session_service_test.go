package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"mentorhub/internal/domain"
)

func seedSession(t *testing.T, repo *memSessionRepo, start time.Time, minutes int) domain.Session {
	t.Helper()
	session, err := domain.NewSession(domain.NewSessionInput{
		MentorID:        "mentor-1",
		MentorName:      "Ada",
		UserID:          "user-1",
		UserName:        "Leo",
		Topic:           "System design",
		Type:            domain.SessionTypeVideo,
		ScheduledAt:     start,
		DurationMinutes: minutes,
		JoinLink:        "https://meet.example/abc",
	}, start.Add(-time.Hour))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := repo.Create(context.Background(), session); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return session
}

func TestSessionService_TickPersistsTransition(t *testing.T) {
	sessions := newMemSessionRepo()
	messages := newMemMessageRepo()
	prompts := NewMemoryPromptStore()
	svc := NewSessionService(zap.NewNop(), sessions, messages, prompts)

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	session := seedSession(t, sessions, start, 30)

	got, err := svc.Tick(context.Background(), session.ID, start.Add(time.Second))
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if got.Status != domain.StatusLive {
		t.Fatalf("expected live, got %s", got.Status)
	}

	stored, err := sessions.GetByID(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != domain.StatusLive {
		t.Fatalf("expected stored status live, got %s", stored.Status)
	}
	if stored.StartedAt == nil {
		t.Fatal("expected StartedAt to be set")
	}

	log, err := messages.ListBySessionID(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("ListBySessionID: %v", err)
	}
	if len(log) != 1 {
		t.Fatalf("expected 1 system message, got %d", len(log))
	}
	if log[0].Kind != domain.MessageKindSystem {
		t.Fatalf("expected system message, got %s", log[0].Kind)
	}
}

func TestSessionService_RepeatedTickDoesNotDuplicate(t *testing.T) {
	sessions := newMemSessionRepo()
	messages := newMemMessageRepo()
	svc := NewSessionService(zap.NewNop(), sessions, messages, nil)

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	session := seedSession(t, sessions, start, 30)

	now := start.Add(time.Minute)
	for i := 0; i < 5; i++ {
		if _, err := svc.Tick(context.Background(), session.ID, now); err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
	}

	if sessions.updates != 1 {
		t.Fatalf("expected 1 status update, got %d", sessions.updates)
	}
	log, _ := messages.ListBySessionID(context.Background(), session.ID)
	if len(log) != 1 {
		t.Fatalf("expected 1 system message, got %d", len(log))
	}
}

func TestSessionService_TickMarksRatingPrompt(t *testing.T) {
	sessions := newMemSessionRepo()
	messages := newMemMessageRepo()
	prompts := NewMemoryPromptStore()
	svc := NewSessionService(zap.NewNop(), sessions, messages, prompts)

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	session := seedSession(t, sessions, start, 30)

	got, err := svc.Tick(context.Background(), session.ID, start.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if got.Status != domain.StatusCompleted {
		t.Fatalf("expected completed, got %s", got.Status)
	}

	pending, err := prompts.Pending(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if !pending {
		t.Fatal("expected rating prompt to be pending after completion")
	}

	log, _ := messages.ListBySessionID(context.Background(), session.ID)
	if len(log) != 2 {
		t.Fatalf("expected start and end notes, got %d messages", len(log))
	}
	if log[0].Seq >= log[1].Seq {
		t.Fatalf("expected ascending seq, got %d then %d", log[0].Seq, log[1].Seq)
	}
}

func TestSessionService_CancelIsIdempotent(t *testing.T) {
	sessions := newMemSessionRepo()
	svc := NewSessionService(zap.NewNop(), sessions, newMemMessageRepo(), nil)

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	session := seedSession(t, sessions, start, 30)

	first, err := svc.Cancel(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if first.Status != domain.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", first.Status)
	}

	second, err := svc.Cancel(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("second Cancel: %v", err)
	}
	if second.Status != domain.StatusCancelled {
		t.Fatalf("expected cancelled after repeat, got %s", second.Status)
	}
	if sessions.updates != 1 {
		t.Fatalf("expected 1 status update, got %d", sessions.updates)
	}
}

func TestSessionService_TickActiveIsolatesFailures(t *testing.T) {
	sessions := newMemSessionRepo()
	messages := newMemMessageRepo()
	svc := NewSessionService(zap.NewNop(), sessions, messages, nil)

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	a := seedSession(t, sessions, start, 30)
	b := seedSession(t, sessions, start, 30)

	sessions.updateErr = errors.New("db down")
	if err := svc.TickActive(context.Background(), start.Add(time.Minute)); err != nil {
		t.Fatalf("TickActive with failing updates: %v", err)
	}

	sessions.updateErr = nil
	if err := svc.TickActive(context.Background(), start.Add(time.Minute)); err != nil {
		t.Fatalf("TickActive: %v", err)
	}
	for _, id := range []string{a.ID, b.ID} {
		got, _ := sessions.GetByID(context.Background(), id)
		if got.Status != domain.StatusLive {
			t.Fatalf("expected session %s live after recovery, got %s", id, got.Status)
		}
	}
}

func TestSessionService_NilServiceFails(t *testing.T) {
	var svc *SessionService
	if _, err := svc.Tick(context.Background(), "x", time.Now()); !errors.Is(err, ErrSessionServiceNotConfigured) {
		t.Fatalf("expected ErrSessionServiceNotConfigured, got %v", err)
	}
}
