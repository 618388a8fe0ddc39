package service

import (
	"context"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/repository"
	"github.com/nephrolog/nephrolog-sync/internal/store"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// RecommendationService serves recommendation content cache-aside. The
// category names are a derived field fetched fresh from the origin on every
// read and merged in, never cached.
type RecommendationService struct {
	recommendations *repository.RecommendationRepository
	origin          Origin
}

func NewRecommendationService(recommendations *repository.RecommendationRepository, origin Origin) *RecommendationService {
	return &RecommendationService{recommendations: recommendations, origin: origin}
}

// GetFood returns food-suggestion and unsafe-food recommendations.
func (s *RecommendationService) GetFood(ctx context.Context, uc types.UserContext) ([]*models.Recommendation, error) {
	return s.get(ctx, uc,
		[]models.RecommendationKind{models.RecommendationFoodSuggestion, models.RecommendationUnsafeFood},
		s.recommendations.GetFood,
	)
}

// GetDrug returns drug-consumption and drug-interaction recommendations.
func (s *RecommendationService) GetDrug(ctx context.Context, uc types.UserContext) ([]*models.Recommendation, error) {
	return s.get(ctx, uc,
		[]models.RecommendationKind{models.RecommendationDrugConsumption, models.RecommendationDrugInteraction},
		s.recommendations.GetDrug,
	)
}

func (s *RecommendationService) get(
	ctx context.Context,
	uc types.UserContext,
	kinds []models.RecommendationKind,
	query func(context.Context, types.UserContext) ([]*models.Recommendation, error),
) ([]*models.Recommendation, error) {
	cached, err := query(ctx, uc)
	if err != nil {
		return nil, err
	}
	if store.IsExpired(cached, nil) {
		fetched, err := s.origin.FetchRecommendations(ctx, uc.Token, kinds)
		if err != nil {
			return nil, err
		}
		for _, rec := range fetched {
			rec.SetOwner(uc.UserID)
		}
		if _, err := s.recommendations.Upsert(ctx, fetched); err != nil {
			return nil, err
		}
		cached, err = query(ctx, uc)
		if err != nil {
			return nil, err
		}
	}

	categories, err := s.origin.FetchCategories(ctx, uc.Token)
	if err != nil {
		return nil, err
	}
	for _, rec := range cached {
		rec.Category = categories[string(rec.Kind)]
	}
	return cached, nil
}

func (s *RecommendationService) RemoveFood(ctx context.Context, uc types.UserContext) error {
	return s.recommendations.RemoveFood(ctx, uc)
}

func (s *RecommendationService) RemoveDrug(ctx context.Context, uc types.UserContext) error {
	return s.recommendations.RemoveDrug(ctx, uc)
}
