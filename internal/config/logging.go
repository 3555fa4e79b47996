package config

// LogConfig selects the logger level and encoding
type LogConfig struct {
	Level  string
	Format string
}

// LoadLogConfig loads logging configuration from environment variables
func LoadLogConfig(getenv func(string) string) LogConfig {
	config := LogConfig{
		Level:  getenv("LOG_LEVEL"),
		Format: getenv("LOG_FORMAT"),
	}
	if config.Level == "" {
		config.Level = "info"
	}
	if config.Format == "" {
		config.Format = "console"
	}
	return config
}
