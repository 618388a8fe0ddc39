package service

import (
	"context"
	"time"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/repository"
	"github.com/nephrolog/nephrolog-sync/internal/store"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// FoodService serves food-intake records cache-aside, delegating the
// child persistence ordering to the repository's relation resolving.
type FoodService struct {
	foods  *repository.FoodRepository
	origin Origin
}

func NewFoodService(foods *repository.FoodRepository, origin Origin) *FoodService {
	return &FoodService{foods: foods, origin: origin}
}

// GetForDay returns the user's food records for one day, populating the
// cache from the origin when the day's records are absent.
func (s *FoodService) GetForDay(ctx context.Context, uc types.UserContext, day time.Time, override *time.Duration) ([]*models.Food, error) {
	cached, err := s.foods.GetForUser(ctx, uc, &day)
	if err != nil {
		return nil, err
	}
	if !store.IsExpired(cached, override) {
		return cached, nil
	}

	fetched, err := s.origin.FetchFood(ctx, uc.Token, day)
	if err != nil {
		return nil, err
	}
	for _, food := range fetched {
		if _, err := s.foods.SaveWithItems(ctx, uc, food); err != nil {
			return nil, err
		}
	}
	return s.foods.GetForUser(ctx, uc, &day)
}

// GetAll returns every cached food record for the user.
func (s *FoodService) GetAll(ctx context.Context, uc types.UserContext) ([]*models.Food, error) {
	return s.foods.GetForUser(ctx, uc, nil)
}

// Save persists a food record and its full child list. Food is cache-only
// once created: no origin call is involved.
func (s *FoodService) Save(ctx context.Context, uc types.UserContext, food *models.Food) (*models.Food, error) {
	return s.foods.SaveWithItems(ctx, uc, food)
}

func (s *FoodService) Delete(ctx context.Context, uc types.UserContext, food *models.Food) error {
	return s.foods.Delete(ctx, uc, []*models.Food{food})
}
