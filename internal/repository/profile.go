package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/store"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// ProfileRepository stores the single active profile per user.
type ProfileRepository struct {
	store *store.Store[models.Profile, *models.Profile]
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{store: store.New[models.Profile, *models.Profile](db)}
}

// GetForUser returns the user's cached profile, or nil when absent.
func (r *ProfileRepository) GetForUser(ctx context.Context, uc types.UserContext) (*models.Profile, error) {
	profiles, err := r.store.Query(ctx, store.QueryOptions{
		Where: []store.Condition{store.Where("user_id = ?", uc.UserID)},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return profiles[0], nil
}

func (r *ProfileRepository) Insert(ctx context.Context, profiles []*models.Profile) ([]*models.Profile, error) {
	return r.store.Insert(ctx, profiles)
}

func (r *ProfileRepository) Update(ctx context.Context, profiles []*models.Profile) error {
	return r.store.Update(ctx, profiles)
}

func (r *ProfileRepository) Upsert(ctx context.Context, profiles []*models.Profile) ([]*models.Profile, error) {
	return r.store.Upsert(ctx, profiles)
}

func (r *ProfileRepository) RemoveAllForUser(ctx context.Context, uc types.UserContext) error {
	return r.store.RemoveAll(ctx, store.Where("user_id = ?", uc.UserID))
}
