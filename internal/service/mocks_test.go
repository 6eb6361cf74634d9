package service

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"mentorhub/internal/domain"
	"mentorhub/internal/repository"
)

// Mocks compartidos por los tests de servicios.

type memSessionRepo struct {
	mu        sync.Mutex
	sessions  map[string]domain.Session
	updateErr error
	updates   int
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *memSessionRepo) Create(_ context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *memSessionRepo) GetByID(_ context.Context, id string) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, pgx.ErrNoRows
	}
	return s, nil
}

func (r *memSessionRepo) ListByUserID(_ context.Context, userID string) ([]domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Session
	for _, s := range r.sessions {
		if s.UserID == userID || s.MentorID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSessionRepo) ListActive(_ context.Context) ([]domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Session
	for _, s := range r.sessions {
		if s.Status == domain.StatusScheduled || s.Status == domain.StatusLive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSessionRepo) UpdateStatus(_ context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.sessions[session.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = session.Status
	stored.StartedAt = session.StartedAt
	stored.EndedAt = session.EndedAt
	r.sessions[session.ID] = stored
	r.updates++
	return nil
}

func (r *memSessionRepo) SetRating(_ context.Context, id string, rating int, feedback string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return false, pgx.ErrNoRows
	}
	if s.Status != domain.StatusCompleted || s.Rating != nil {
		return false, nil
	}
	s.Rating = &rating
	s.Feedback = feedback
	r.sessions[id] = s
	return true, nil
}

type memMessageRepo struct {
	mu        sync.Mutex
	messages  map[string][]domain.Message
	appendErr error
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{messages: make(map[string][]domain.Message)}
}

func (r *memMessageRepo) Append(_ context.Context, message domain.Message) (domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return domain.Message{}, r.appendErr
	}
	message.Seq = int64(len(r.messages[message.SessionID]) + 1)
	r.messages[message.SessionID] = append(r.messages[message.SessionID], message)
	return message, nil
}

func (r *memMessageRepo) ListBySessionID(_ context.Context, sessionID string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Message, len(r.messages[sessionID]))
	copy(out, r.messages[sessionID])
	return out, nil
}

type memMentorRepo struct {
	mu          sync.Mutex
	mentors     map[string]domain.MentorProfile
	lastRatings map[string][]int
}

func newMemMentorRepo() *memMentorRepo {
	return &memMentorRepo{
		mentors:     make(map[string]domain.MentorProfile),
		lastRatings: make(map[string][]int),
	}
}

func (r *memMentorRepo) Create(_ context.Context, profile domain.MentorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mentors[profile.ID.String()] = profile
	return nil
}

func (r *memMentorRepo) GetByID(_ context.Context, id string) (domain.MentorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mentors[id]
	if !ok {
		return domain.MentorProfile{}, pgx.ErrNoRows
	}
	return m, nil
}

func (r *memMentorRepo) Browse(_ context.Context, _ repository.MentorFilter) ([]domain.MentorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.MentorProfile
	for _, m := range r.mentors {
		out = append(out, m)
	}
	return out, nil
}

func (r *memMentorRepo) ListSimilar(_ context.Context, id string, _ int) ([]domain.MentorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.MentorProfile
	for key, m := range r.mentors {
		if key != id {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMentorRepo) ApplyRating(_ context.Context, id string, rating int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastRatings[id] = append(r.lastRatings[id], rating)
	return nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (r *memUserRepo) GetByAuthSubject(_ context.Context, provider, subject string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.AuthProvider == provider && u.AuthSubject == subject {
			return u, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (r *memUserRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = passwordHash
	r.users[id] = u
	return nil
}

type memSettingsRepo struct {
	mu    sync.Mutex
	items map[string]domain.UserSettings
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{items: make(map[string]domain.UserSettings)}
}

func (r *memSettingsRepo) Get(_ context.Context, userID string) (domain.UserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[userID]
	if !ok {
		return domain.UserSettings{}, pgx.ErrNoRows
	}
	return s, nil
}

func (r *memSettingsRepo) Upsert(_ context.Context, settings domain.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[settings.UserID] = settings
	return nil
}
