package config

import (
	"fmt"
	"net/url"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable
func ValidateConfig(cfg *Config) error {
	if cfg.StorePath == "" {
		return ValidationError{Field: "StorePath", Message: "store path must not be empty"}
	}

	if cfg.OriginURL != "" {
		u, err := url.Parse(cfg.OriginURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ValidationError{Field: "OriginURL", Message: fmt.Sprintf("invalid origin URL %q", cfg.OriginURL)}
		}
	}

	if cfg.HTTPTimeout <= 0 {
		return ValidationError{Field: "HTTPTimeout", Message: "timeout must be positive"}
	}

	return nil
}
