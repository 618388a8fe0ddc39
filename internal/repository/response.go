package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/store"
)

// ServiceResponseCache stores raw HTTP responses keyed by URL as a fallback
// cache independent of the typed entities.
type ServiceResponseCache struct {
	store *store.Store[models.ServiceResponse, *models.ServiceResponse]
}

func NewServiceResponseCache(db *gorm.DB) *ServiceResponseCache {
	return &ServiceResponseCache{store: store.New[models.ServiceResponse, *models.ServiceResponse](db)}
}

// GetByURL returns the most recently stored response for the URL, or nil.
func (r *ServiceResponseCache) GetByURL(ctx context.Context, url string) (*models.ServiceResponse, error) {
	responses, err := r.store.Query(ctx, store.QueryOptions{
		Where: []store.Condition{store.Where("url = ?", url)},
		Order: "retrieval_date DESC, created_at DESC",
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, nil
	}
	return responses[0], nil
}

// Put stores a response, replacing the previous entry for the same URL.
func (r *ServiceResponseCache) Put(ctx context.Context, resp *models.ServiceResponse) (*models.ServiceResponse, error) {
	existing, err := r.GetByURL(ctx, resp.URL)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		resp.ID = existing.ID
	}
	saved, err := r.store.Upsert(ctx, []*models.ServiceResponse{resp})
	if err != nil {
		return nil, err
	}
	return saved[0], nil
}

// RemoveAll clears the raw response cache.
func (r *ServiceResponseCache) RemoveAll(ctx context.Context) error {
	return r.store.RemoveAll(ctx)
}
