package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration for the sync layer
type Config struct {
	// Local store configuration
	StorePath string

	// Remote origin configuration
	OriginURL   string
	HTTPTimeout time.Duration
}

const (
	defaultHTTPTimeout = 15 * time.Second
	defaultStoreFile   = "nephrolog.db"
)

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to on-device defaults
func LoadConfig() (*Config, error) {
	cfg := &Config{
		StorePath: os.Getenv("NEPHROSYNC_DB_PATH"),
		OriginURL: os.Getenv("NEPHROSYNC_ORIGIN_URL"),
	}

	if cfg.StorePath == "" {
		path, err := defaultStorePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve default store path: %w", err)
		}
		cfg.StorePath = path
	}

	cfg.HTTPTimeout = defaultHTTPTimeout
	if raw := os.Getenv("NEPHROSYNC_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid NEPHROSYNC_HTTP_TIMEOUT %q: %w", raw, err)
		}
		cfg.HTTPTimeout = d
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// defaultStorePath places the sqlite file under the user's config directory,
// next to the rest of the app's on-device state.
func defaultStorePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "nephrolog")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultStoreFile), nil
}
