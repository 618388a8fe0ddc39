// Package repository holds the per-domain specializations of the generic
// entity store: each repository adds the scoped query shapes one entity
// type needs and nothing else.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/store"
)

// AccountRepository stores cached credential records.
type AccountRepository struct {
	store *store.Store[models.Account, *models.Account]
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{store: store.New[models.Account, *models.Account](db)}
}

// GetAll returns every cached account, used for local credential matching.
func (r *AccountRepository) GetAll(ctx context.Context) ([]*models.Account, error) {
	return r.store.Query(ctx, store.QueryOptions{})
}

// GetMostRecentlyUsed returns the account with the newest retrieval date,
// or nil when none is cached.
func (r *AccountRepository) GetMostRecentlyUsed(ctx context.Context) (*models.Account, error) {
	accounts, err := r.store.Query(ctx, store.QueryOptions{
		Order: "retrieval_date DESC",
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return accounts[0], nil
}

func (r *AccountRepository) Insert(ctx context.Context, accounts []*models.Account) ([]*models.Account, error) {
	return r.store.Insert(ctx, accounts)
}

func (r *AccountRepository) Update(ctx context.Context, accounts []*models.Account) error {
	return r.store.Update(ctx, accounts)
}

func (r *AccountRepository) Upsert(ctx context.Context, accounts []*models.Account) ([]*models.Account, error) {
	return r.store.Upsert(ctx, accounts)
}

func (r *AccountRepository) Delete(ctx context.Context, accounts []*models.Account) error {
	return r.store.Delete(ctx, accounts)
}
