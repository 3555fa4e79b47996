// Package logging builds the zap loggers used across the suite.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/internetqa/internetqa/internal/config"
)

// New builds a logger from cfg. "json" selects the production encoder,
// anything else the human readable console encoder.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Level, err)
	}

	var zcfg zap.Config
	switch cfg.Format {
	case "json":
		zcfg = zap.NewProductionConfig()
	case "console", "":
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.Format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
