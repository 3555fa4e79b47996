package config

import (
	"fmt"
	"strconv"
	"time"
)

// Supported browser drivers
const (
	DriverPlaywright = "playwright"
	DriverChromedp   = "chromedp"
)

// BrowserConfig holds browser launch and page settings
type BrowserConfig struct {
	Driver            string
	Headless          bool
	SlowMo            time.Duration
	ViewportWidth     int
	ViewportHeight    int
	DefaultTimeout    time.Duration
	IgnoreHTTPSErrors bool
	// ScreenshotDir receives a screenshot of every failed smoke scenario.
	// Empty disables them.
	ScreenshotDir string
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (BrowserConfig, error) {
	config := BrowserConfig{
		Driver:            getenv("BROWSER_DRIVER"),
		Headless:          true,
		ViewportWidth:     1280,
		ViewportHeight:    720,
		DefaultTimeout:    30 * time.Second,
		IgnoreHTTPSErrors: true,
		ScreenshotDir:     getenv("SCREENSHOT_DIR"),
	}

	if config.Driver == "" {
		config.Driver = DriverPlaywright
	}
	if config.Driver != DriverPlaywright && config.Driver != DriverChromedp {
		return BrowserConfig{}, fmt.Errorf("BROWSER_DRIVER must be %q or %q, got %q", DriverPlaywright, DriverChromedp, config.Driver)
	}

	var err error
	if config.Headless, err = parseBool(getenv, "HEADLESS", config.Headless); err != nil {
		return BrowserConfig{}, err
	}
	if config.IgnoreHTTPSErrors, err = parseBool(getenv, "IGNORE_HTTPS_ERRORS", config.IgnoreHTTPSErrors); err != nil {
		return BrowserConfig{}, err
	}
	if config.ViewportWidth, err = parseInt(getenv, "VIEWPORT_WIDTH", config.ViewportWidth); err != nil {
		return BrowserConfig{}, err
	}
	if config.ViewportHeight, err = parseInt(getenv, "VIEWPORT_HEIGHT", config.ViewportHeight); err != nil {
		return BrowserConfig{}, err
	}

	slowMo, err := parseInt(getenv, "SLOW_MO", 0)
	if err != nil {
		return BrowserConfig{}, err
	}
	config.SlowMo = time.Duration(slowMo) * time.Millisecond

	timeout, err := parseInt(getenv, "DEFAULT_TIMEOUT", int(config.DefaultTimeout/time.Millisecond))
	if err != nil {
		return BrowserConfig{}, err
	}
	if timeout <= 0 {
		return BrowserConfig{}, fmt.Errorf("DEFAULT_TIMEOUT must be positive, got %d", timeout)
	}
	config.DefaultTimeout = time.Duration(timeout) * time.Millisecond

	return config, nil
}

// TimeoutMillis returns the default timeout in the unit playwright expects
func (c BrowserConfig) TimeoutMillis() float64 {
	return float64(c.DefaultTimeout / time.Millisecond)
}

func parseBool(getenv func(string) string, key string, def bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return v, nil
}

func parseInt(getenv func(string) string, key string, def int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
	}
	return v, nil
}
