package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mentorhub/internal/domain"
	"mentorhub/internal/email"
)

func seedMentor(t *testing.T, mentors *memMentorRepo) domain.MentorProfile {
	t.Helper()
	profile := domain.MentorProfile{
		ID:     uuid.New(),
		Name:   "Ada",
		Title:  "Staff Engineer",
		Avatar: "https://cdn.example/ada.png",
	}
	if err := mentors.Create(context.Background(), profile); err != nil {
		t.Fatalf("Create mentor: %v", err)
	}
	return profile
}

func TestBookingService_Book(t *testing.T) {
	sessions := newMemSessionRepo()
	messages := newMemMessageRepo()
	mentors := newMemMentorRepo()
	svc := NewBookingService(zap.NewNop(), sessions, messages, mentors, email.NewDisabledSender("smtp not configured"))

	mentor := seedMentor(t, mentors)

	session, err := svc.Book(context.Background(), BookingInput{
		MentorID:        mentor.ID.String(),
		UserID:          "user-1",
		UserName:        "Leo",
		UserEmail:       "leo@example.com",
		Topic:           "Career growth",
		Type:            domain.SessionTypeVideo,
		ScheduledAt:     time.Now().UTC().Add(time.Hour),
		DurationMinutes: 45,
		JoinLink:        "https://meet.example/xyz",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if session.Status != domain.StatusScheduled {
		t.Fatalf("expected scheduled, got %s", session.Status)
	}
	if session.MentorName != mentor.Name {
		t.Fatalf("expected mentor name %q, got %q", mentor.Name, session.MentorName)
	}

	log, err := messages.ListBySessionID(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("ListBySessionID: %v", err)
	}
	if len(log) != 1 || log[0].Kind != domain.MessageKindSystem {
		t.Fatalf("expected one system booking note, got %+v", log)
	}
}

func TestBookingService_BookRejectsInvalidInput(t *testing.T) {
	sessions := newMemSessionRepo()
	mentors := newMemMentorRepo()
	svc := NewBookingService(zap.NewNop(), sessions, newMemMessageRepo(), mentors, nil)

	mentor := seedMentor(t, mentors)

	cases := []struct {
		name string
		in   BookingInput
	}{
		{"zero duration", BookingInput{
			MentorID: mentor.ID.String(), UserID: "u", Topic: "x",
			ScheduledAt: time.Now().UTC().Add(time.Hour), DurationMinutes: 0,
		}},
		{"past schedule", BookingInput{
			MentorID: mentor.ID.String(), UserID: "u", Topic: "x",
			ScheduledAt: time.Now().UTC().Add(-2 * time.Hour), DurationMinutes: 30,
		}},
		{"unknown type", BookingInput{
			MentorID: mentor.ID.String(), UserID: "u", Topic: "x", Type: "hologram",
			ScheduledAt: time.Now().UTC().Add(time.Hour), DurationMinutes: 30,
		}},
	}
	for _, tc := range cases {
		if _, err := svc.Book(context.Background(), tc.in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("expected no sessions persisted, got %d", len(sessions.sessions))
	}
}

func TestBookingService_BookUnknownMentor(t *testing.T) {
	svc := NewBookingService(zap.NewNop(), newMemSessionRepo(), newMemMessageRepo(), newMemMentorRepo(), nil)

	_, err := svc.Book(context.Background(), BookingInput{
		MentorID:        uuid.NewString(),
		UserID:          "user-1",
		Topic:           "Anything",
		ScheduledAt:     time.Now().UTC().Add(time.Hour),
		DurationMinutes: 30,
	})
	if err == nil {
		t.Fatal("expected error for unknown mentor")
	}
}
