// Package nephrosync wires the sync layer together: one sqlite-backed
// entity store, the per-domain repositories and the cache-aside services
// the UI talks to.
package nephrosync

import (
	"gorm.io/gorm"

	"github.com/nephrolog/nephrolog-sync/config"
	"github.com/nephrolog/nephrolog-sync/internal/database"
	"github.com/nephrolog/nephrolog-sync/internal/logging"
	"github.com/nephrolog/nephrolog-sync/internal/origin"
	"github.com/nephrolog/nephrolog-sync/internal/repository"
	"github.com/nephrolog/nephrolog-sync/internal/service"
)

// Layer is the assembled sync layer. Consumers hold one Layer for the
// lifetime of the app and reach every domain operation through it.
type Layer struct {
	Auth            *service.AuthService
	Profile         *service.ProfileService
	Goals           *service.GoalService
	Food            *service.FoodService
	Recommendations *service.RecommendationService
	Samples         *service.SampleService

	Responses *repository.ServiceResponseCache

	db *gorm.DB
}

// Open loads configuration from the environment and assembles the layer.
func Open(sensor service.DeviceSensor) (*Layer, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, sensor)
}

// New assembles the layer against an explicit configuration. The sensor may
// be nil on devices without health integration.
func New(cfg *config.Config, sensor service.DeviceSensor) (*Layer, error) {
	logging.Setup()

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	accounts := repository.NewAccountRepository(db)
	profiles := repository.NewProfileRepository(db)
	goals := repository.NewGoalRepository(db)
	foods := repository.NewFoodRepository(db)
	recommendations := repository.NewRecommendationRepository(db)
	samples := repository.NewQuantitySampleRepository(db)
	responses := repository.NewServiceResponseCache(db)

	remote := origin.NewClient(cfg, responses)

	return &Layer{
		Auth:            service.NewAuthService(accounts, profiles, goals, foods, recommendations, samples, remote),
		Profile:         service.NewProfileService(profiles, remote, sensor),
		Goals:           service.NewGoalService(goals, remote),
		Food:            service.NewFoodService(foods, remote),
		Recommendations: service.NewRecommendationService(recommendations, remote),
		Samples:         service.NewSampleService(samples, sensor),
		Responses:       responses,
		db:              db,
	}, nil
}

// Close releases the underlying store connection.
func (l *Layer) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
