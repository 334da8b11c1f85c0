package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the backend the client talks to when nothing is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout covers slow meme generation.
	DefaultTimeout = 30 * time.Second
)

// APIConfig configures the backend API client.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// Normalize trims the base URL and fills zero values with defaults.
func (c *APIConfig) Normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks that the API configuration is usable.
// Returns an error describing the first validation failure, or nil if valid.
func (c *APIConfig) Validate() error {
	c.Normalize()

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("api: invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api: base_url %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api: base_url %q has no host", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("api: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Clone creates a copy of the API configuration.
func (c *APIConfig) Clone() *APIConfig {
	return &APIConfig{
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		UserAgent: c.UserAgent,
	}
}
