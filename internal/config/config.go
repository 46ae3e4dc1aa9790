// Package config assembles the runtime settings of the luckyadmin client.
//
// Sources are overlaid in a fixed order, later sources winning:
//
//	defaults -> JSON file (-c/-config) -> environment (.env honored) -> flags
//
// The JSON file path itself comes from the command line, which is why flags
// are read in two passes (see internal/flagx).
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config holds the runtime settings of the client.
//
// RequestTimeoutSeconds is kept as an integer so JSON, environment and flag
// layers can share one representation; use RequestTimeout for the Duration.
type Config struct {
	APIBaseURL            string `env:"LUCKYADMIN_API_URL"`
	RequestTimeoutSeconds int    `env:"LUCKYADMIN_TIMEOUT_SECONDS"`
	TokenFile             string `env:"LUCKYADMIN_TOKEN_FILE"`
	DownloadDir           string `env:"LUCKYADMIN_DOWNLOAD_DIR"`
	LogLevel              string `env:"LUCKYADMIN_LOG_LEVEL"`
	PageLimit             int    `env:"LUCKYADMIN_PAGE_LIMIT"`
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeoutSeconds = 15
	c.TokenFile = defaultTokenFile()
	c.DownloadDir = "downloads"
	c.LogLevel = "info"
	c.PageLimit = 10
}

// RequestTimeout returns the per-request timeout as a Duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate reports the first configuration problem found, or nil.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api base url %q is not an absolute URL", c.APIBaseURL)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request timeout must be positive, got %d", c.RequestTimeoutSeconds)
	}
	if c.PageLimit < 1 || c.PageLimit > 100 {
		return fmt.Errorf("page limit must be between 1 and 100, got %d", c.PageLimit)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// LoadConfig builds the effective configuration from all sources.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultTokenFile places the persisted token under the user's config
// directory, falling back to the working directory when that is unknown.
func defaultTokenFile() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".luckyadmin_token"
	}
	return filepath.Join(base, "luckyadmin", "token")
}
