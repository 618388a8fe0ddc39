package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nephrolog/nephrolog-sync/internal/apperrors"
	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/store"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// FoodRepository stores food-intake records together with their owned
// FoodItem children. It is the relation resolver: children are persisted
// and re-attached before the parent, and a save always replaces the
// parent's full child set.
type FoodRepository struct {
	db    *gorm.DB
	foods *store.Store[models.Food, *models.Food]
	items *store.Store[models.FoodItem, *models.FoodItem]
}

func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{
		db:    db,
		foods: store.New[models.Food, *models.Food](db),
		items: store.New[models.FoodItem, *models.FoodItem](db),
	}
}

// GetForUser returns the user's food records, filtered to the inclusive
// day window [startOfDay(date), startOfDay(date)+24h) when a date is given.
// Children are resolved and ordered by creation time.
func (r *FoodRepository) GetForUser(ctx context.Context, uc types.UserContext, date *time.Time) ([]*models.Food, error) {
	conds := []store.Condition{store.Where("user_id = ?", uc.UserID)}
	if date != nil {
		start := startOfDay(*date)
		conds = append(conds, store.Where("date >= ? AND date < ?", start, start.Add(24*time.Hour)))
	}

	foods, err := r.foods.Query(ctx, store.QueryOptions{
		Where: conds,
		Order: "date ASC, created_at ASC",
	})
	if err != nil {
		return nil, err
	}
	if err := r.LoadItems(ctx, foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// LoadItems attaches each food's children, ordered by creation time so the
// child ordering is deterministic regardless of storage iteration order.
func (r *FoodRepository) LoadItems(ctx context.Context, foods []*models.Food) error {
	if len(foods) == 0 {
		return nil
	}
	ids := make([]string, 0, len(foods))
	for _, f := range foods {
		f.Items = nil
		ids = append(ids, f.ID)
	}

	items, err := r.items.Query(ctx, store.QueryOptions{
		Where: []store.Condition{store.Where("food_id IN ?", ids)},
		Order: "created_at ASC",
	})
	if err != nil {
		return err
	}

	byParent := make(map[string][]*models.FoodItem, len(foods))
	for _, item := range items {
		byParent[item.FoodID] = append(byParent[item.FoodID], item)
	}
	for _, f := range foods {
		f.Items = byParent[f.ID]
	}
	return nil
}

// SaveWithItems persists a food record and its full child list. Children
// persist first and must be durably visible before the parent write begins;
// the parent's child association is then fully replaced, never merged.
func (r *FoodRepository) SaveWithItems(ctx context.Context, uc types.UserContext, food *models.Food) (*models.Food, error) {
	children := food.Items
	for _, item := range children {
		item.SetOwner(uc.UserID)
	}
	persisted, err := r.items.Upsert(ctx, children)
	if err != nil {
		return nil, err
	}

	// Re-query by the persisted ids to attach store-native handles.
	var attached []*models.FoodItem
	if len(persisted) > 0 {
		ids := make([]string, 0, len(persisted))
		for _, item := range persisted {
			ids = append(ids, item.ID)
		}
		attached, err = r.items.Query(ctx, store.QueryOptions{
			Where: []store.Condition{store.Where("id IN ?", ids)},
			Order: "created_at ASC",
		})
		if err != nil {
			return nil, err
		}
	}

	food.Items = nil
	food.SetOwner(uc.UserID)
	saved, err := r.foods.Upsert(ctx, []*models.Food{food})
	if err != nil {
		return nil, err
	}
	parent := saved[0]

	assoc := r.db.WithContext(ctx).Model(parent).Association("Items")
	if len(attached) == 0 {
		if err := assoc.Clear(); err != nil {
			return nil, &apperrors.StorageError{Op: "relate", Err: err}
		}
	} else {
		if err := assoc.Replace(attached); err != nil {
			return nil, &apperrors.StorageError{Op: "relate", Err: err}
		}
	}

	if err := r.LoadItems(ctx, []*models.Food{parent}); err != nil {
		return nil, err
	}
	return parent, nil
}

func (r *FoodRepository) Insert(ctx context.Context, foods []*models.Food) ([]*models.Food, error) {
	return r.foods.Insert(ctx, foods)
}

func (r *FoodRepository) Delete(ctx context.Context, uc types.UserContext, foods []*models.Food) error {
	for _, f := range foods {
		if f.ID == "" {
			continue
		}
		if err := r.items.RemoveAll(ctx, store.Where("food_id = ?", f.ID)); err != nil {
			return err
		}
	}
	return r.foods.Delete(ctx, foods)
}

// RemoveAllForUser clears the user's food records and their children.
func (r *FoodRepository) RemoveAllForUser(ctx context.Context, uc types.UserContext) error {
	if err := r.items.RemoveAll(ctx, store.Where("user_id = ?", uc.UserID)); err != nil {
		return err
	}
	return r.foods.RemoveAll(ctx, store.Where("user_id = ?", uc.UserID))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
