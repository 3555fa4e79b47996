package services

import (
	"sync"

	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/config"
	"github.com/internetqa/internetqa/internal/models"
)

// AuthService checks credentials and tracks logged in sessions
type AuthService interface {
	Login(username, password string) (*models.Session, error)
	Session(id string) (*models.Session, error)
	Logout(id string) error
}

// AuthServiceImpl implements AuthService with one configured account and
// sessions held in memory
type AuthServiceImpl struct {
	username string
	password string
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewAuthService creates an auth service accepting site's credentials
func NewAuthService(site config.SiteConfig, logger *zap.Logger) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthServiceImpl{
		username: site.Username,
		password: site.Password,
		logger:   logger,
		sessions: make(map[string]*models.Session),
	}
}

// Login returns a new session for valid credentials. The username is
// checked first, so a wrong username with a wrong password reports the
// username.
func (s *AuthServiceImpl) Login(username, password string) (*models.Session, error) {
	if username != s.username {
		return nil, models.ErrInvalidUsername
	}
	if password != s.password {
		return nil, models.ErrInvalidPassword
	}

	session, err := models.NewSession(username)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("User logged in.", zap.String("username", username), zap.String("session_id", session.ID))
	return session, nil
}

// Session looks up a live session
func (s *AuthServiceImpl) Session(id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return session, nil
}

// Logout ends a session
func (s *AuthServiceImpl) Logout(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return models.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}
