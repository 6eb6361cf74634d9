package lifecycle

import (
	"testing"
	"time"
)

func TestLogPreservesAppendOrder(t *testing.T) {
	log := NewLog()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	a := log.Append(SystemMessage("s1", "A", now))
	b := log.Append(SystemMessage("s1", "B", now.Add(time.Second)))
	c := log.Append(SystemMessage("s1", "C", now.Add(2*time.Second)))

	got := log.All()
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	for i, want := range []string{"A", "B", "C"} {
		if got[i].Content != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, got[i].Content)
		}
	}
	if a.Seq != 1 || b.Seq != 2 || c.Seq != 3 {
		t.Fatalf("expected seq 1,2,3 got %d,%d,%d", a.Seq, b.Seq, c.Seq)
	}
}

func TestLogAppendOrderBeatsTimestamps(t *testing.T) {
	log := NewLog()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	// Un timestamp fuera de orden se acepta, pero el orden de lectura
	// sigue siendo el de inserción.
	log.Append(SystemMessage("s1", "first", now))
	log.Append(SystemMessage("s1", "second", now.Add(-time.Hour)))

	got := log.All()
	if got[0].Content != "first" || got[1].Content != "second" {
		t.Fatalf("expected append order, got %q then %q", got[0].Content, got[1].Content)
	}
}

func TestLogAllReturnsSnapshot(t *testing.T) {
	log := NewLog()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	log.Append(SystemMessage("s1", "A", now))

	snap := log.All()
	snap[0].Content = "mutated"
	log.Append(SystemMessage("s1", "B", now))

	got := log.All()
	if got[0].Content != "A" {
		t.Fatalf("snapshot mutation leaked into the log: %q", got[0].Content)
	}
	if len(snap) != 1 {
		t.Fatalf("snapshot grew after later appends: %d", len(snap))
	}
}
