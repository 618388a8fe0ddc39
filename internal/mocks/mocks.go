// Package mocks provides hand-written fakes for the orchestrator's external
// collaborators. Call counters make origin-traffic assertions cheap.
package mocks

import (
	"context"
	"time"

	"github.com/nephrolog/nephrolog-sync/internal/apperrors"
	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/service"
)

// MockOrigin is a configurable fake origin. Unset functions return an
// OriginError so tests fail loudly when an unexpected call happens.
type MockOrigin struct {
	LoginFn                func(ctx context.Context, email, password string) (*service.LoginResult, error)
	RegisterFn             func(ctx context.Context, email, password string, profile *models.Profile) (*service.LoginResult, error)
	LogoutFn               func(ctx context.Context, token string) error
	SaveProfileFn          func(ctx context.Context, token string, profile *models.Profile) (*models.Profile, error)
	FetchGoalsFn           func(ctx context.Context, token string) ([]*models.Goal, error)
	FetchFoodFn            func(ctx context.Context, token string, day time.Time) ([]*models.Food, error)
	FetchRecommendationsFn func(ctx context.Context, token string, kinds []models.RecommendationKind) ([]*models.Recommendation, error)
	FetchCategoriesFn      func(ctx context.Context, token string) (map[string]string, error)

	LoginCalls                int
	RegisterCalls             int
	LogoutCalls               int
	SaveProfileCalls          int
	FetchGoalsCalls           int
	FetchFoodCalls            int
	FetchRecommendationsCalls int
	FetchCategoriesCalls      int
}

var _ service.Origin = (*MockOrigin)(nil)

func (m *MockOrigin) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	m.LoginCalls++
	if m.LoginFn == nil {
		return nil, unexpected("login")
	}
	return m.LoginFn(ctx, email, password)
}

func (m *MockOrigin) Register(ctx context.Context, email, password string, profile *models.Profile) (*service.LoginResult, error) {
	m.RegisterCalls++
	if m.RegisterFn == nil {
		return nil, unexpected("register")
	}
	return m.RegisterFn(ctx, email, password, profile)
}

func (m *MockOrigin) Logout(ctx context.Context, token string) error {
	m.LogoutCalls++
	if m.LogoutFn == nil {
		return nil
	}
	return m.LogoutFn(ctx, token)
}

func (m *MockOrigin) SaveProfile(ctx context.Context, token string, profile *models.Profile) (*models.Profile, error) {
	m.SaveProfileCalls++
	if m.SaveProfileFn == nil {
		return nil, unexpected("saveProfile")
	}
	return m.SaveProfileFn(ctx, token, profile)
}

func (m *MockOrigin) FetchGoals(ctx context.Context, token string) ([]*models.Goal, error) {
	m.FetchGoalsCalls++
	if m.FetchGoalsFn == nil {
		return nil, unexpected("fetchGoals")
	}
	return m.FetchGoalsFn(ctx, token)
}

func (m *MockOrigin) FetchFood(ctx context.Context, token string, day time.Time) ([]*models.Food, error) {
	m.FetchFoodCalls++
	if m.FetchFoodFn == nil {
		return nil, unexpected("fetchFood")
	}
	return m.FetchFoodFn(ctx, token, day)
}

func (m *MockOrigin) FetchRecommendations(ctx context.Context, token string, kinds []models.RecommendationKind) ([]*models.Recommendation, error) {
	m.FetchRecommendationsCalls++
	if m.FetchRecommendationsFn == nil {
		return nil, unexpected("fetchRecommendations")
	}
	return m.FetchRecommendationsFn(ctx, token, kinds)
}

func (m *MockOrigin) FetchCategories(ctx context.Context, token string) (map[string]string, error) {
	m.FetchCategoriesCalls++
	if m.FetchCategoriesFn == nil {
		return map[string]string{}, nil
	}
	return m.FetchCategoriesFn(ctx, token)
}

func unexpected(op string) error {
	return &apperrors.OriginError{Op: op, Message: "unexpected origin call"}
}

// MockDeviceSensor is a configurable fake device-sensor collaborator.
type MockDeviceSensor struct {
	TodayValueFn func(ctx context.Context, sampleType models.SampleType) (float64, bool, error)
	RangeFn      func(ctx context.Context, sampleType models.SampleType, start, end time.Time) ([]*models.QuantitySample, error)
	HasAnyDataFn func(ctx context.Context, sampleType models.SampleType) (bool, error)
	SaveFn       func(ctx context.Context, sample *models.QuantitySample) error

	TodayValueCalls int
	RangeCalls      int
	HasAnyDataCalls int
	SaveCalls       int
}

var _ service.DeviceSensor = (*MockDeviceSensor)(nil)

func (m *MockDeviceSensor) TodayValue(ctx context.Context, sampleType models.SampleType) (float64, bool, error) {
	m.TodayValueCalls++
	if m.TodayValueFn == nil {
		return 0, false, nil
	}
	return m.TodayValueFn(ctx, sampleType)
}

func (m *MockDeviceSensor) Range(ctx context.Context, sampleType models.SampleType, start, end time.Time) ([]*models.QuantitySample, error) {
	m.RangeCalls++
	if m.RangeFn == nil {
		return nil, nil
	}
	return m.RangeFn(ctx, sampleType, start, end)
}

func (m *MockDeviceSensor) HasAnyData(ctx context.Context, sampleType models.SampleType) (bool, error) {
	m.HasAnyDataCalls++
	if m.HasAnyDataFn == nil {
		return false, nil
	}
	return m.HasAnyDataFn(ctx, sampleType)
}

func (m *MockDeviceSensor) Save(ctx context.Context, sample *models.QuantitySample) error {
	m.SaveCalls++
	if m.SaveFn == nil {
		return nil
	}
	return m.SaveFn(ctx, sample)
}
