package config

import (
	"errors"
	"fmt"
)

// ErrPostgresNotConfigured means no POSTGRES_* variable is set at all
var ErrPostgresNotConfigured = errors.New("postgres is not configured")

// PostgresConfig holds configuration for the upload store database
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	SSLMode  string
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables.
// It returns ErrPostgresNotConfigured when none of the variables are set so the
// replica can fall back to in-memory storage.
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
		SSLMode:  getenv("POSTGRES_SSLMODE"),
	}

	if config.User == "" && config.Password == "" && config.Database == "" && config.Host == "" {
		return nil, ErrPostgresNotConfigured
	}

	// Validate required fields
	if config.User == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required")
	}
	if config.Host == "" {
		return nil, fmt.Errorf("POSTGRES_HOSTNAME is required")
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Database, c.SSLMode)
}
