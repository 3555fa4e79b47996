package services

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/internetqa/internetqa/internal/config"
	"github.com/internetqa/internetqa/internal/models"
)

func newTestAuthService(t *testing.T) AuthService {
	return NewAuthService(config.SiteConfig{
		Username: "tomsmith",
		Password: "SuperSecretPassword!",
	}, zaptest.NewLogger(t))
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "valid credentials",
			username: "tomsmith",
			password: "SuperSecretPassword!",
		},
		{
			name:     "invalid username",
			username: "invaliduser",
			password: "SuperSecretPassword!",
			wantErr:  models.ErrInvalidUsername,
		},
		{
			name:     "invalid password",
			username: "tomsmith",
			password: "wrongpassword",
			wantErr:  models.ErrInvalidPassword,
		},
		{
			name:     "both invalid reports username",
			username: "invaliduser",
			password: "wrongpassword",
			wantErr:  models.ErrInvalidUsername,
		},
		{
			name:     "empty credentials",
			username: "",
			password: "",
			wantErr:  models.ErrInvalidUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestAuthService(t)
			session, err := service.Login(tt.username, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected error %v, got %v", tt.wantErr, err)
				}
				if session != nil {
					t.Error("Expected no session on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if session.ID == "" {
				t.Error("Session ID should not be empty")
			}
		})
	}
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	service := newTestAuthService(t)

	session, err := service.Login("tomsmith", "SuperSecretPassword!")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	got, err := service.Session(session.ID)
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if got.Username != "tomsmith" {
		t.Errorf("Expected username tomsmith, got %s", got.Username)
	}

	if err := service.Logout(session.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := service.Session(session.ID); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after logout, got %v", err)
	}
	if err := service.Logout(session.ID); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second logout, got %v", err)
	}
}
