package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// PromptStore guarda qué sesiones tienen el aviso de calificación
// pendiente. Descartar el aviso es reversible: solo un submit exitoso
// lo cierra de forma definitiva.
type PromptStore interface {
	MarkPending(ctx context.Context, sessionID string) error
	Pending(ctx context.Context, sessionID string) (bool, error)
	Dismiss(ctx context.Context, sessionID string) error
}

type memoryPromptStore struct {
	mu      sync.Mutex
	pending map[string]bool
}

func NewMemoryPromptStore() PromptStore {
	return &memoryPromptStore{pending: make(map[string]bool)}
}

func (s *memoryPromptStore) MarkPending(_ context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[sessionID] = true
	return nil
}

func (s *memoryPromptStore) Pending(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[sessionID], nil
}

func (s *memoryPromptStore) Dismiss(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, sessionID)
	return nil
}

type redisPromptStore struct {
	client redisKVClient
	prefix string
	ttl    time.Duration
}

// NewRedisPromptStore comparte el flag entre instancias del API, de
// modo que el cliente vea el aviso sin importar a qué réplica llegue.
func NewRedisPromptStore(client *redis.Client) PromptStore {
	if client == nil {
		return nil
	}
	return &redisPromptStore{
		client: client,
		prefix: "rating:prompt:",
		ttl:    30 * 24 * time.Hour,
	}
}

func (s *redisPromptStore) MarkPending(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return s.client.Set(ctx, s.prefix+sessionID, "1", s.ttl).Err()
}

func (s *redisPromptStore) Pending(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	n, err := s.client.Exists(ctx, s.prefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisPromptStore) Dismiss(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}
