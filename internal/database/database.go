package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nephrolog/nephrolog-sync/config"
	"github.com/nephrolog/nephrolog-sync/internal/models"
)

// Open opens the on-device sqlite store.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.StorePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error accessing store connection: %w", err)
	}
	// sqlite: a single writer connection avoids SQLITE_BUSY under
	// concurrent access.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging store: %w", err)
	}

	return db, nil
}

// Migrate creates or updates one table per cached entity type.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.Goal{},
		&models.Food{},
		&models.FoodItem{},
		&models.Recommendation{},
		&models.QuantitySample{},
		&models.ServiceResponse{},
	)
}
