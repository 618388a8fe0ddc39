package service

import (
	"context"
	"time"

	"github.com/nephrolog/nephrolog-sync/internal/models"
)

// LoginResult is what the origin returns for a successful login or
// registration: the canonical account and profile plus a session token.
type LoginResult struct {
	Account *models.Account
	Profile *models.Profile
	Token   string
}

// Origin is the authoritative remote data source. Any implementation
// satisfying the operation set (the bundled HTTP client, or a mock) is
// substitutable without changing orchestrator logic.
type Origin interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, email, password string, profile *models.Profile) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	SaveProfile(ctx context.Context, token string, profile *models.Profile) (*models.Profile, error)
	FetchGoals(ctx context.Context, token string) ([]*models.Goal, error)
	FetchFood(ctx context.Context, token string, day time.Time) ([]*models.Food, error)
	FetchRecommendations(ctx context.Context, token string, kinds []models.RecommendationKind) ([]*models.Recommendation, error)
	FetchCategories(ctx context.Context, token string) (map[string]string, error)
}

// DeviceSensor integrates health measurements recorded by the device. The
// orchestrator only calls it to assemble derived reads; sensor data never
// decides the freshness of cached entities.
type DeviceSensor interface {
	TodayValue(ctx context.Context, sampleType models.SampleType) (float64, bool, error)
	Range(ctx context.Context, sampleType models.SampleType, start, end time.Time) ([]*models.QuantitySample, error)
	HasAnyData(ctx context.Context, sampleType models.SampleType) (bool, error)
	Save(ctx context.Context, sample *models.QuantitySample) error
}
