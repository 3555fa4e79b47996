package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/config"
)

// ServerDependencies holds all dependencies needed for the replica server
type ServerDependencies struct {
	ServerConfig config.ServerConfig
	Logger       *zap.Logger

	IndexHandler        http.Handler
	LoginHandler        http.Handler
	AuthenticateHandler http.Handler
	SecureHandler       http.Handler
	LogoutHandler       http.Handler
	AlertsHandler       http.Handler
	AddRemoveHandler    http.Handler
	CheckboxesHandler   http.Handler
	DropdownHandler     http.Handler
	UploadHandler       http.Handler
	HealthHandler       http.Handler
}

// RunServe starts the replica server and blocks until SIGINT or SIGTERM
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, deps.Logger)
}

// NewRouter maps the replica's routes onto deps' handlers
func NewRouter(deps ServerDependencies) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/", deps.IndexHandler).Methods(http.MethodGet)
	r.Handle("/login", deps.LoginHandler).Methods(http.MethodGet)
	r.Handle("/authenticate", deps.AuthenticateHandler).Methods(http.MethodPost)
	r.Handle("/secure", deps.SecureHandler).Methods(http.MethodGet)
	r.Handle("/logout", deps.LogoutHandler).Methods(http.MethodGet)
	r.Handle("/javascript_alerts", deps.AlertsHandler).Methods(http.MethodGet)
	r.Handle("/add_remove_elements/", deps.AddRemoveHandler).Methods(http.MethodGet)
	r.Handle("/checkboxes", deps.CheckboxesHandler).Methods(http.MethodGet)
	r.Handle("/dropdown", deps.DropdownHandler).Methods(http.MethodGet)
	r.Handle("/upload", deps.UploadHandler).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/health", deps.HealthHandler).Methods(http.MethodGet)
	r.Use(requestLogger(deps.Logger))
	return r
}

func requestLogger(logger *zap.Logger) mux.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("Request served.",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening.", zap.String("addr", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error.", zap.Error(err))
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil, a channel is registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, logger *zap.Logger) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second, logger)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	logger.Info("Shutting down server.", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// outstanding requests did not finish in time
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logger.Info("Server stopped.")
	return nil
}
