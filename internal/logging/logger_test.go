package logging

import (
	"testing"

	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		wantErr bool
	}{
		{name: "console debug", cfg: config.LogConfig{Level: "debug", Format: "console"}},
		{name: "json warn", cfg: config.LogConfig{Level: "warn", Format: "json"}},
		{name: "bad level", cfg: config.LogConfig{Level: "loud", Format: "json"}, wantErr: true},
		{name: "bad format", cfg: config.LogConfig{Level: "info", Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.cfg.Level == "warn" && logger.Core().Enabled(zap.InfoLevel) {
				t.Error("info should be disabled at warn level")
			}
			if tt.cfg.Level == "debug" && !logger.Core().Enabled(zap.DebugLevel) {
				t.Error("debug should be enabled at debug level")
			}
		})
	}
}
