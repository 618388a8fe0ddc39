package testhelpers

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nephrolog/nephrolog-sync/config"
	"github.com/nephrolog/nephrolog-sync/internal/database"
)

// NewTestDB opens a migrated sqlite store in a per-test temp directory.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		StorePath:   filepath.Join(t.TempDir(), "sync.db"),
		HTTPTimeout: time.Second,
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}
