package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/store"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// Kind pairs backing the two recommendation query families.
var (
	foodKinds = []models.RecommendationKind{
		models.RecommendationFoodSuggestion,
		models.RecommendationUnsafeFood,
	}
	drugKinds = []models.RecommendationKind{
		models.RecommendationDrugConsumption,
		models.RecommendationDrugInteraction,
	}
)

// RecommendationRepository stores origin-authored recommendations, queried
// by kind pairs scoped to the user (global rows have an empty user scope).
type RecommendationRepository struct {
	store *store.Store[models.Recommendation, *models.Recommendation]
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{store: store.New[models.Recommendation, *models.Recommendation](db)}
}

// GetFood returns food-suggestion and unsafe-food recommendations.
func (r *RecommendationRepository) GetFood(ctx context.Context, uc types.UserContext) ([]*models.Recommendation, error) {
	return r.getByKinds(ctx, uc, foodKinds)
}

// GetDrug returns drug-consumption and drug-interaction recommendations.
func (r *RecommendationRepository) GetDrug(ctx context.Context, uc types.UserContext) ([]*models.Recommendation, error) {
	return r.getByKinds(ctx, uc, drugKinds)
}

func (r *RecommendationRepository) getByKinds(ctx context.Context, uc types.UserContext, kinds []models.RecommendationKind) ([]*models.Recommendation, error) {
	return r.store.Query(ctx, store.QueryOptions{
		Where: []store.Condition{
			store.Where("kind IN ?", kinds),
			store.Where("user_id = ? OR user_id = ''", uc.UserID),
		},
		Order: "created_at ASC",
	})
}

func (r *RecommendationRepository) Insert(ctx context.Context, recs []*models.Recommendation) ([]*models.Recommendation, error) {
	return r.store.Insert(ctx, recs)
}

func (r *RecommendationRepository) Upsert(ctx context.Context, recs []*models.Recommendation) ([]*models.Recommendation, error) {
	return r.store.Upsert(ctx, recs)
}

func (r *RecommendationRepository) RemoveFood(ctx context.Context, uc types.UserContext) error {
	return r.removeByKinds(ctx, uc, foodKinds)
}

func (r *RecommendationRepository) RemoveDrug(ctx context.Context, uc types.UserContext) error {
	return r.removeByKinds(ctx, uc, drugKinds)
}

func (r *RecommendationRepository) removeByKinds(ctx context.Context, uc types.UserContext, kinds []models.RecommendationKind) error {
	return r.store.RemoveAll(ctx,
		store.Where("kind IN ?", kinds),
		store.Where("user_id = ? OR user_id = ''", uc.UserID),
	)
}

// RemoveAllForUser clears the user's recommendation rows, leaving global
// rows in place.
func (r *RecommendationRepository) RemoveAllForUser(ctx context.Context, uc types.UserContext) error {
	return r.store.RemoveAll(ctx, store.Where("user_id = ?", uc.UserID))
}
