package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"mentorhub/internal/domain"
)

func TestSettingsService_GetReturnsDefaults(t *testing.T) {
	svc := NewSettingsService(newMemSettingsRepo(), newMemUserRepo())

	got, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := domain.DefaultUserSettings("u1")
	if got.UserID != want.UserID {
		t.Fatalf("expected defaults for u1, got %+v", got)
	}
	if got.Notifications != want.Notifications {
		t.Fatalf("expected default notifications, got %+v", got.Notifications)
	}
}

func TestSettingsService_UpdateRoundTrip(t *testing.T) {
	settings := newMemSettingsRepo()
	svc := NewSettingsService(settings, newMemUserRepo())

	in := domain.DefaultUserSettings("u1")
	in.Notifications.Push = false
	in.Preferences.Timezone = "America/Bogota"

	if _, err := svc.Update(context.Background(), "u1", in); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Notifications.Push {
		t.Fatal("expected push notifications disabled after update")
	}
	if got.Preferences.Timezone != "America/Bogota" {
		t.Fatalf("expected timezone persisted, got %q", got.Preferences.Timezone)
	}
}

func TestSettingsService_ChangePassword(t *testing.T) {
	users := newMemUserRepo()
	userSvc := NewUserService(zap.NewNop(), users, newMemSettingsRepo(), NewLoginRateLimiter(time.Minute, 100))
	svc := NewSettingsService(newMemSettingsRepo(), users)

	user, err := userSvc.Signup(context.Background(), SignupInput{Email: "leo@example.com", Password: "oldpassword"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "wrongpass", "newpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong current: expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "oldpassword", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak next: expected ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "oldpassword", "newpassword"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := userSvc.Authenticate(context.Background(), "leo@example.com", "newpassword"); err != nil {
		t.Fatalf("Authenticate with new password: %v", err)
	}
	if _, err := userSvc.Authenticate(context.Background(), "leo@example.com", "oldpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should fail, got %v", err)
	}
}

func TestSettingsService_ChangePasswordOAuthAccount(t *testing.T) {
	users := newMemUserRepo()
	userSvc := NewUserService(zap.NewNop(), users, newMemSettingsRepo(), NewLoginRateLimiter(time.Minute, 100))
	svc := NewSettingsService(newMemSettingsRepo(), users)

	user, err := userSvc.UpsertOAuthUser(context.Background(), OAuthInput{
		Provider: "google", Subject: "sub-1", Email: "leo@example.com",
	})
	if err != nil {
		t.Fatalf("UpsertOAuthUser: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "", "newpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for oauth account, got %v", err)
	}
}
