package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mentorhub/internal/domain"
	"mentorhub/internal/repository"
)

// UserService coordina registro y autenticación de cuentas.
type UserService struct {
	logger       *zap.Logger
	users        repository.UserRepository
	settings     repository.SettingsRepository
	loginLimiter LoginRateLimiter
}

func NewUserService(
	logger *zap.Logger,
	users repository.UserRepository,
	settings repository.SettingsRepository,
	loginLimiter LoginRateLimiter,
) *UserService {
	if loginLimiter == nil {
		loginLimiter = NewLoginRateLimiter(loginWindow, 5)
	}
	return &UserService{
		logger:       logger,
		users:        users,
		settings:     settings,
		loginLimiter: loginLimiter,
	}
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrOAuthInvalid       = errors.New("oauth data invalid")
	ErrRateLimited        = errors.New("rate limited")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password too short")
)

const (
	loginWindow       = 10 * time.Minute
	minPasswordLength = 8
)

// SignupInput son los datos del formulario de registro.
type SignupInput struct {
	Email       string
	DisplayName string
	Password    string
	Role        string
}

// Signup da de alta un usuario local con contraseña bcrypt y crea su
// configuración por defecto.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (domain.User, error) {
	if s == nil || s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr := normalizeEmail(input.Email)
	if emailAddr == "" {
		return domain.User{}, ErrInvalidEmail
	}
	password := strings.TrimSpace(input.Password)
	if len(password) < minPasswordLength {
		return domain.User{}, ErrWeakPassword
	}
	role := normalizeRole(input.Role)

	if _, err := s.users.GetByEmail(ctx, emailAddr); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Role:         role,
		AuthProvider: "local",
		PasswordHash: string(hashBytes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	if s.settings != nil {
		if err := s.settings.Upsert(ctx, domain.DefaultUserSettings(user.ID)); err != nil {
			s.logger.Warn("default settings create failed", zap.Error(err), zap.String("user_id", user.ID))
		}
	}

	return user, nil
}

// Authenticate valida credenciales locales, con rate limit por email.
func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s == nil || s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if s.loginLimiter != nil && !s.loginLimiter.Allow(emailAddr) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// OAuthInput son los datos verificados que entrega el callback OAuth.
type OAuthInput struct {
	Provider    string
	Subject     string
	Email       string
	DisplayName string
	Avatar      string
}

// UpsertOAuthUser crea o recupera el usuario asociado a una identidad
// OAuth (hoy solo google).
func (s *UserService) UpsertOAuthUser(ctx context.Context, input OAuthInput) (domain.User, error) {
	if s == nil || s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	provider := strings.ToLower(strings.TrimSpace(input.Provider))
	subject := strings.TrimSpace(input.Subject)
	if provider != "google" || subject == "" {
		return domain.User{}, ErrOAuthInvalid
	}

	user, err := s.users.GetByAuthSubject(ctx, provider, subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	emailAddr := normalizeEmail(input.Email)
	if emailAddr == "" {
		return domain.User{}, ErrOAuthInvalid
	}

	now := time.Now().UTC()
	user = domain.User{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Avatar:       strings.TrimSpace(input.Avatar),
		Role:         domain.RoleSeeker,
		AuthProvider: provider,
		AuthSubject:  subject,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	if s.settings != nil {
		if err := s.settings.Upsert(ctx, domain.DefaultUserSettings(user.ID)); err != nil {
			s.logger.Warn("default settings create failed", zap.Error(err), zap.String("user_id", user.ID))
		}
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	if s == nil || s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}
	user, err := s.users.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, ErrUserNotFound
	}
	return user, err
}

func normalizeEmail(emailAddr string) string {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if emailAddr == "" || !strings.Contains(emailAddr, "@") {
		return ""
	}
	return emailAddr
}

func normalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case domain.RoleMentor:
		return domain.RoleMentor
	case domain.RoleBoth:
		return domain.RoleBoth
	default:
		return domain.RoleSeeker
	}
}

// LoginRateLimiter limita intentos de login por clave.
type LoginRateLimiter interface {
	Allow(key string) bool
}

type memoryLoginRateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	history map[string][]time.Time
}

// NewLoginRateLimiter crea un rate limiter en memoria.
func NewLoginRateLimiter(window time.Duration, max int) LoginRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &memoryLoginRateLimiter{
		window:  window,
		max:     max,
		history: make(map[string][]time.Time),
	}
}

func (l *memoryLoginRateLimiter) Allow(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	now := time.Now().UTC()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.history[key][:0]
	for _, t := range l.history[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) >= l.max {
		l.history[key] = recent
		return false
	}
	l.history[key] = append(recent, now)
	return true
}
