package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/store"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// GoalRepository stores per-user goals ordered by their persisted sort index.
type GoalRepository struct {
	store *store.Store[models.Goal, *models.Goal]
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{store: store.New[models.Goal, *models.Goal](db)}
}

// GetAllForUser returns the user's goals in display order.
func (r *GoalRepository) GetAllForUser(ctx context.Context, uc types.UserContext) ([]*models.Goal, error) {
	return r.store.Query(ctx, store.QueryOptions{
		Where: []store.Condition{store.Where("user_id = ?", uc.UserID)},
		Order: "sort_index ASC",
	})
}

func (r *GoalRepository) Insert(ctx context.Context, goals []*models.Goal) ([]*models.Goal, error) {
	return r.store.Insert(ctx, goals)
}

func (r *GoalRepository) Update(ctx context.Context, goals []*models.Goal) error {
	return r.store.Update(ctx, goals)
}

func (r *GoalRepository) Upsert(ctx context.Context, goals []*models.Goal) ([]*models.Goal, error) {
	return r.store.Upsert(ctx, goals)
}

func (r *GoalRepository) Delete(ctx context.Context, goals []*models.Goal) error {
	return r.store.Delete(ctx, goals)
}

func (r *GoalRepository) RemoveAllForUser(ctx context.Context, uc types.UserContext) error {
	return r.store.RemoveAll(ctx, store.Where("user_id = ?", uc.UserID))
}
