package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"mentorhub/internal/domain"
	"mentorhub/internal/repository"
)

var ErrSettingsServiceNotConfigured = errors.New("settings service not configured")

// SettingsService maneja la configuración de cuenta y el cambio de
// contraseña.
type SettingsService struct {
	settings repository.SettingsRepository
	users    repository.UserRepository
}

func NewSettingsService(settings repository.SettingsRepository, users repository.UserRepository) *SettingsService {
	return &SettingsService{settings: settings, users: users}
}

// Get devuelve la configuración del usuario; si nunca guardó nada,
// devuelve los defaults sin persistirlos.
func (s *SettingsService) Get(ctx context.Context, userID string) (domain.UserSettings, error) {
	if s == nil || s.settings == nil {
		return domain.UserSettings{}, ErrSettingsServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	settings, err := s.settings.Get(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DefaultUserSettings(userID), nil
	}
	return settings, err
}

// Update reemplaza la configuración completa del usuario.
func (s *SettingsService) Update(ctx context.Context, userID string, settings domain.UserSettings) (domain.UserSettings, error) {
	if s == nil || s.settings == nil {
		return domain.UserSettings{}, ErrSettingsServiceNotConfigured
	}
	settings.UserID = strings.TrimSpace(userID)
	if settings.UserID == "" {
		return domain.UserSettings{}, ErrInvalidCredentials
	}
	if err := s.settings.Upsert(ctx, settings); err != nil {
		return domain.UserSettings{}, err
	}
	return settings, nil
}

// ChangePassword verifica la contraseña actual antes de reemplazarla.
func (s *SettingsService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if s == nil || s.users == nil {
		return ErrSettingsServiceNotConfigured
	}
	next = strings.TrimSpace(next)
	if len(next) < minPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.users.GetByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if user.PasswordHash == "" {
		// Cuentas OAuth no tienen contraseña local que cambiar.
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(current))); err != nil {
		return ErrInvalidCredentials
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, user.ID, string(hashBytes))
}
