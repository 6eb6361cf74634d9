package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"mentorhub/internal/domain"
	"mentorhub/internal/lifecycle"
)

// Simulador de ciclo de vida: reserva una sesión en memoria y avanza el
// reloj a mano para ver las transiciones sin esperar tiempo real.
func main() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("===== Session Simulator =====")
	startIn := askInt(reader, "Minutes until start", 1)
	duration := askInt(reader, "Duration in minutes", 45)

	now := time.Now().UTC()
	session, err := domain.NewSession(domain.NewSessionInput{
		MentorID:        "mentor-1",
		MentorName:      "Dr. Anjali Gupta",
		MentorTitle:     "Senior Product Manager",
		UserID:          "user-1",
		UserName:        "Rahul Sharma",
		Topic:           "Product Management Career Transition",
		Type:            domain.SessionTypeVideo,
		ScheduledAt:     now.Add(time.Duration(startIn) * time.Minute),
		DurationMinutes: duration,
		JoinLink:        "https://zoom.us/j/1234567890",
	}, now)
	if err != nil {
		log.Fatalf("booking rejected: %v", err)
	}

	chat := lifecycle.NewLog()
	chat.Append(lifecycle.SystemMessage(session.ID, "Session booked successfully! Your mentor will join shortly.", now))

	fmt.Printf("Booked %q with %s, starts in %s\n\n", session.Topic, session.MentorName,
		lifecycle.FormatCountdown(lifecycle.TimeToStart(session, now)))
	fmt.Println("Commands: +<minutes> advance clock, say <text>, cancel, log, quit")

	prompted := false
	for {
		fmt.Printf("[%s] t+%s> ", session.Status, lifecycle.FormatCountdown(now.Sub(session.CreatedAt)))
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "quit":
			return
		case line == "log":
			for _, msg := range chat.All() {
				fmt.Printf("  %2d [%s] %s: %s\n", msg.Seq, msg.Kind, msg.SenderName, msg.Content)
			}
		case line == "cancel":
			var changed bool
			session, changed = lifecycle.Cancel(session)
			if changed {
				fmt.Println("session cancelled")
			} else {
				fmt.Println("nothing to cancel")
			}
		case strings.HasPrefix(line, "say "):
			msg := chat.Append(domain.Message{
				SessionID:  session.ID,
				SenderID:   session.UserID,
				SenderName: session.UserName,
				Kind:       domain.MessageKindText,
				Content:    strings.TrimSpace(line[len("say "):]),
				CreatedAt:  now,
			})
			fmt.Printf("sent #%d\n", msg.Seq)
		case strings.HasPrefix(line, "+"):
			mins, err := strconv.Atoi(line[1:])
			if err != nil || mins < 0 {
				fmt.Println("usage: +<minutes>")
				continue
			}
			now = now.Add(time.Duration(mins) * time.Minute)
			res := lifecycle.Tick(session, now)
			session = res.Session
			for _, note := range res.SystemNotes {
				msg := chat.Append(lifecycle.SystemMessage(session.ID, note, now))
				fmt.Printf("  system: %s\n", msg.Content)
			}
			if res.RatingPrompt {
				prompted = true
			}
			if prompted && session.Rating == nil {
				prompted = askRating(reader, &session)
			}
			switch session.Status {
			case domain.StatusScheduled:
				fmt.Printf("starts in %s\n", lifecycle.FormatCountdown(lifecycle.TimeToStart(session, now)))
			case domain.StatusLive:
				fmt.Printf("live, %s remaining\n", lifecycle.FormatCountdown(lifecycle.TimeRemaining(session, now)))
			}
		default:
			fmt.Println("unknown command")
		}
	}
}

// askRating imita el modal de calificación; devuelve true si el aviso
// queda pendiente (skip es reversible).
func askRating(reader *bufio.Reader, session *domain.Session) bool {
	fmt.Print("Rate your session 1-5 (or skip): ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "skip") {
		fmt.Println("rating skipped, you can still rate later")
		return true
	}
	rating, err := strconv.Atoi(line)
	if err != nil || rating < 1 || rating > 5 {
		fmt.Println("invalid rating")
		return true
	}
	session.Rating = &rating
	fmt.Println("thanks for the feedback!")
	return false
}

func askInt(reader *bufio.Reader, label string, fallback int) int {
	fmt.Printf("%s [%d]: ", label, fallback)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return fallback
	}
	return n
}
