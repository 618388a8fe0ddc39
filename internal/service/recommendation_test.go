package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nephrolog/nephrolog-sync/internal/mocks"
	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/repository"
	"github.com/nephrolog/nephrolog-sync/internal/service"
	"github.com/nephrolog/nephrolog-sync/internal/testhelpers"
)

func newRecommendationService(t *testing.T) (*service.RecommendationService, *mocks.MockOrigin) {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	repo := repository.NewRecommendationRepository(db)
	origin := &mocks.MockOrigin{}
	return service.NewRecommendationService(repo, origin), origin
}

func TestGetFoodRecommendationsCacheAside(t *testing.T) {
	svc, origin := newRecommendationService(t)
	origin.FetchRecommendationsFn = func(ctx context.Context, token string, kinds []models.RecommendationKind) ([]*models.Recommendation, error) {
		assert.ElementsMatch(t, kinds, []models.RecommendationKind{
			models.RecommendationFoodSuggestion, models.RecommendationUnsafeFood,
		})
		return []*models.Recommendation{
			{CacheMeta: models.CacheMeta{ID: "r1"}, Title: "eat apples", Kind: models.RecommendationFoodSuggestion},
			{CacheMeta: models.CacheMeta{ID: "r2"}, Title: "avoid starfruit", Kind: models.RecommendationUnsafeFood},
		}, nil
	}

	recs, err := svc.GetFood(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, origin.FetchRecommendationsCalls)

	recs, err = svc.GetFood(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, origin.FetchRecommendationsCalls)
}

func TestCategoriesFetchedFreshOnEveryRead(t *testing.T) {
	svc, origin := newRecommendationService(t)
	origin.FetchRecommendationsFn = func(ctx context.Context, token string, kinds []models.RecommendationKind) ([]*models.Recommendation, error) {
		return []*models.Recommendation{
			{CacheMeta: models.CacheMeta{ID: "r1"}, Title: "eat apples", Kind: models.RecommendationFoodSuggestion},
		}, nil
	}
	category := "Fruit"
	origin.FetchCategoriesFn = func(ctx context.Context, token string) (map[string]string, error) {
		return map[string]string{string(models.RecommendationFoodSuggestion): category}, nil
	}

	recs, err := svc.GetFood(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Fruit", recs[0].Category)
	assert.Equal(t, 1, origin.FetchCategoriesCalls)

	// Category names come from the origin even when the content is cached.
	category = "Renamed"
	recs, err = svc.GetFood(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", recs[0].Category)
	assert.Equal(t, 2, origin.FetchCategoriesCalls)
	assert.Equal(t, 1, origin.FetchRecommendationsCalls)
}

func TestDrugRecommendationsSeparateFromFood(t *testing.T) {
	svc, origin := newRecommendationService(t)
	origin.FetchRecommendationsFn = func(ctx context.Context, token string, kinds []models.RecommendationKind) ([]*models.Recommendation, error) {
		out := make([]*models.Recommendation, len(kinds))
		for i, kind := range kinds {
			out[i] = &models.Recommendation{
				CacheMeta: models.CacheMeta{ID: string(kind)},
				Title:     string(kind),
				Kind:      kind,
			}
		}
		return out, nil
	}

	food, err := svc.GetFood(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, food, 2)

	// The drug family is its own cache population.
	drugs, err := svc.GetDrug(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, drugs, 2)
	assert.Equal(t, 2, origin.FetchRecommendationsCalls)
	for _, rec := range drugs {
		assert.Contains(t, []models.RecommendationKind{
			models.RecommendationDrugConsumption, models.RecommendationDrugInteraction,
		}, rec.Kind)
	}
}

func TestRemoveFoodForcesRefetch(t *testing.T) {
	svc, origin := newRecommendationService(t)
	origin.FetchRecommendationsFn = func(ctx context.Context, token string, kinds []models.RecommendationKind) ([]*models.Recommendation, error) {
		return []*models.Recommendation{
			{CacheMeta: models.CacheMeta{ID: "r1"}, Title: "eat apples", Kind: models.RecommendationFoodSuggestion},
		}, nil
	}

	_, err := svc.GetFood(context.Background(), user)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveFood(context.Background(), user))

	_, err = svc.GetFood(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 2, origin.FetchRecommendationsCalls)
}
