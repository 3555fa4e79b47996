package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated login on the demo site
type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// Domain errors
var (
	ErrInvalidUsername = errors.New("username is invalid")
	ErrInvalidPassword = errors.New("password is invalid")
	ErrSessionNotFound = errors.New("session not found")
)

// NewSession creates a session for username
func NewSession(username string) (*Session, error) {
	if username == "" {
		return nil, ErrInvalidUsername
	}
	return &Session{
		ID:        uuid.New().String(),
		Username:  username,
		CreatedAt: time.Now(),
	}, nil
}
