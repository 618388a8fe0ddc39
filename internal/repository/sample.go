package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/store"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// QuantitySampleRepository stores timestamped scalar measurements.
type QuantitySampleRepository struct {
	store *store.Store[models.QuantitySample, *models.QuantitySample]
}

func NewQuantitySampleRepository(db *gorm.DB) *QuantitySampleRepository {
	return &QuantitySampleRepository{store: store.New[models.QuantitySample, *models.QuantitySample](db)}
}

// GetRange returns the user's samples of one type inside [start, end),
// ascending by creation time.
func (r *QuantitySampleRepository) GetRange(ctx context.Context, uc types.UserContext, sampleType models.SampleType, start, end time.Time) ([]*models.QuantitySample, error) {
	return r.store.Query(ctx, store.QueryOptions{
		Where: []store.Condition{
			store.Where("user_id = ?", uc.UserID),
			store.Where("type = ?", sampleType),
			store.Where("created_at >= ? AND created_at < ?", start, end),
		},
		Order: "created_at ASC",
	})
}

func (r *QuantitySampleRepository) Insert(ctx context.Context, samples []*models.QuantitySample) ([]*models.QuantitySample, error) {
	return r.store.Insert(ctx, samples)
}

func (r *QuantitySampleRepository) RemoveAllForUser(ctx context.Context, uc types.UserContext) error {
	return r.store.RemoveAll(ctx, store.Where("user_id = ?", uc.UserID))
}
