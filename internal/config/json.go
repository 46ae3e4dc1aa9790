package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/drawlabs/luckyadmin/internal/flagx"
)

// jsonConfig is the DTO for the optional JSON config file. Zero values mean
// "not set" and leave the corresponding Config field untouched, so a file
// may specify any subset of the settings.
type jsonConfig struct {
	APIBaseURL            string `json:"api_url"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	TokenFile             string `json:"token_file"`
	DownloadDir           string `json:"download_dir"`
	LogLevel              string `json:"log_level"`
	PageLimit             int    `json:"page_limit"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// A missing flag means no file is read; a named but unreadable or malformed
// file is an error.
func parseJSON(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeoutSeconds != 0 {
		cfg.RequestTimeoutSeconds = jc.RequestTimeoutSeconds
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.PageLimit != 0 {
		cfg.PageLimit = jc.PageLimit
	}
	return nil
}
