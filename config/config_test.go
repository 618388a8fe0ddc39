package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvironment(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sync.db")
	t.Setenv("NEPHROSYNC_DB_PATH", dbPath)
	t.Setenv("NEPHROSYNC_ORIGIN_URL", "https://api.example.com")
	t.Setenv("NEPHROSYNC_HTTP_TIMEOUT", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, dbPath, cfg.StorePath)
	assert.Equal(t, "https://api.example.com", cfg.OriginURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("NEPHROSYNC_DB_PATH", filepath.Join(t.TempDir(), "sync.db"))
	t.Setenv("NEPHROSYNC_ORIGIN_URL", "")
	t.Setenv("NEPHROSYNC_HTTP_TIMEOUT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Empty(t, cfg.OriginURL, "an unset origin keeps the layer cache-only")
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	t.Setenv("NEPHROSYNC_DB_PATH", filepath.Join(t.TempDir(), "sync.db"))
	t.Setenv("NEPHROSYNC_HTTP_TIMEOUT", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{StorePath: "/tmp/sync.db", OriginURL: "https://api.example.com", HTTPTimeout: time.Second},
		},
		{
			name:    "empty store path",
			cfg:     Config{OriginURL: "https://api.example.com", HTTPTimeout: time.Second},
			wantErr: "StorePath",
		},
		{
			name:    "origin without scheme",
			cfg:     Config{StorePath: "/tmp/sync.db", OriginURL: "api.example.com", HTTPTimeout: time.Second},
			wantErr: "OriginURL",
		},
		{
			name:    "zero timeout",
			cfg:     Config{StorePath: "/tmp/sync.db", OriginURL: "https://api.example.com"},
			wantErr: "HTTPTimeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(&tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Field)
		})
	}
}
