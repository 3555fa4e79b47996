package cli

import (
	"fmt"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/config"
	"github.com/internetqa/internetqa/internal/handlers"
	"github.com/internetqa/internetqa/internal/services"
)

// BuildServerDependencies wires services and handlers of the replica.
// Templates are read from templatesDir.
func BuildServerDependencies(serverCfg config.ServerConfig, site config.SiteConfig, uploadRepo services.UploadRepository, templatesDir string, logger *zap.Logger) (ServerDependencies, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	deps := ServerDependencies{
		ServerConfig:  serverCfg,
		Logger:        logger,
		HealthHandler: handlers.HealthHandler{},
	}
	tmpl := func(name string) string {
		return filepath.Join(templatesDir, name)
	}

	// Create service layer
	authService := services.NewAuthService(site, logger)
	uploadService := services.NewUploadService(uploadRepo)

	auth, err := handlers.NewAuthHandler(tmpl("login.html"), tmpl("secure.html"), authService,
		handlers.Credentials{Username: site.Username, Password: site.Password}, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create auth handler: %w", err)
	}
	deps.LoginHandler = http.HandlerFunc(auth.Login)
	deps.AuthenticateHandler = http.HandlerFunc(auth.Authenticate)
	deps.SecureHandler = http.HandlerFunc(auth.Secure)
	deps.LogoutHandler = http.HandlerFunc(auth.Logout)

	staticPages := []struct {
		template string
		target   *http.Handler
	}{
		{"index.html", &deps.IndexHandler},
		{"javascript_alerts.html", &deps.AlertsHandler},
		{"add_remove_elements.html", &deps.AddRemoveHandler},
		{"checkboxes.html", &deps.CheckboxesHandler},
		{"dropdown.html", &deps.DropdownHandler},
	}
	for _, page := range staticPages {
		handler, err := handlers.NewPageHandler(tmpl(page.template), nil, logger)
		if err != nil {
			return deps, fmt.Errorf("failed to create %s handler: %w", page.template, err)
		}
		*page.target = handler
	}

	upload, err := handlers.NewUploadHandler(tmpl("upload.html"), tmpl("uploaded.html"), uploadService, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create upload handler: %w", err)
	}
	deps.UploadHandler = upload

	return deps, nil
}
