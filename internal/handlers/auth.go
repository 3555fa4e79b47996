package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/models"
	"github.com/internetqa/internetqa/internal/services"
)

const sessionCookie = "rack.session"

// Flash texts of the form authentication example
const (
	MsgLoggedIn        = "You logged into a secure area!"
	MsgLoggedOut       = "You logged out of the secure area!"
	MsgLoginRequired   = "You must login to view the secure area!"
	MsgInvalidUsername = "Your username is invalid!"
	MsgInvalidPassword = "Your password is invalid!"
)

// AuthHandler serves the login form, the secure area and logout
type AuthHandler struct {
	login       *template.Template
	secure      *template.Template
	authService services.AuthService
	hint        Credentials
	logger      *zap.Logger
}

// Credentials are printed on the login page as a hint
type Credentials struct {
	Username string
	Password string
}

type loginData struct {
	Credentials
	Flash *Flash
}

type secureData struct {
	Username string
	Flash    *Flash
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(loginTemplate, secureTemplate string, authService services.AuthService, hint Credentials, logger *zap.Logger) (*AuthHandler, error) {
	login, err := template.ParseFiles(loginTemplate)
	if err != nil {
		return nil, err
	}
	secure, err := template.ParseFiles(secureTemplate)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AuthHandler{
		login:       login,
		secure:      secure,
		authService: authService,
		hint:        hint,
		logger:      logger,
	}, nil
}

// Login handles GET /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	render(w, h.login, loginData{Credentials: h.hint, Flash: popFlash(w, r)}, h.logger)
}

// Authenticate handles POST /authenticate
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	session, err := h.authService.Login(r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		h.logger.Info("Login rejected.", zap.String("username", r.PostFormValue("username")), zap.Error(err))
		setFlash(w, "error", loginErrorMessage(err))
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
	})
	setFlash(w, "success", MsgLoggedIn)
	http.Redirect(w, r, "/secure", http.StatusFound)
}

// Secure handles GET /secure
func (h *AuthHandler) Secure(w http.ResponseWriter, r *http.Request) {
	session, ok := h.currentSession(r)
	if !ok {
		setFlash(w, "error", MsgLoginRequired)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	render(w, h.secure, secureData{Username: session.Username, Flash: popFlash(w, r)}, h.logger)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := h.currentSession(r); ok {
		if err := h.authService.Logout(session.ID); err != nil {
			h.logger.Warn("Logout failed.", zap.String("session_id", session.ID), zap.Error(err))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	setFlash(w, "success", MsgLoggedOut)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AuthHandler) currentSession(r *http.Request) (*models.Session, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	session, err := h.authService.Session(cookie.Value)
	if err != nil {
		return nil, false
	}
	return session, true
}

func loginErrorMessage(err error) string {
	if errors.Is(err, models.ErrInvalidPassword) {
		return MsgInvalidPassword
	}
	return MsgInvalidUsername
}
