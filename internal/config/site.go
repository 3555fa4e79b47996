package config

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public demo site the suite was written against
const DefaultBaseURL = "https://the-internet.herokuapp.com"

// SiteConfig holds the target site and the credentials it accepts
type SiteConfig struct {
	BaseURL  string
	Username string
	Password string
}

// LoadSiteConfig loads site configuration from environment variables
func LoadSiteConfig(getenv func(string) string) (SiteConfig, error) {
	config := SiteConfig{
		BaseURL:  getenv("BASE_URL"),
		Username: getenv("SITE_USERNAME"),
		Password: getenv("SITE_PASSWORD"),
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Username == "" {
		config.Username = "tomsmith"
	}
	if config.Password == "" {
		config.Password = "SuperSecretPassword!"
	}

	u, err := url.Parse(config.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return SiteConfig{}, fmt.Errorf("BASE_URL must be an absolute URL, got %q", config.BaseURL)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return config, nil
}

// URL joins path onto the base URL
func (c SiteConfig) URL(path string) string {
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return c.BaseURL
	}
	return c.BaseURL + "/" + path
}
