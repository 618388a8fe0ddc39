package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/repository"
	"github.com/nephrolog/nephrolog-sync/internal/testhelpers"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

var alice = types.UserContext{UserID: "alice"}

func TestSaveWithItemsPersistsChildrenBeforeParent(t *testing.T) {
	repo := repository.NewFoodRepository(testhelpers.NewTestDB(t))
	ctx := context.Background()

	food := &models.Food{
		Meal: models.MealLunch,
		Date: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
		Items: []*models.FoodItem{
			{Title: "rice", Amount: 150, Unit: "g", Kind: models.FoodItemMeal},
			{Title: "phosphate binder", Amount: 1, Unit: "tablet", Kind: models.FoodItemDrug},
		},
	}

	saved, err := repo.SaveWithItems(ctx, alice, food)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.Len(t, saved.Items, 2)
	for _, item := range saved.Items {
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, saved.ID, item.FoodID)
	}
}

func TestSaveWithItemsReplacesChildSet(t *testing.T) {
	repo := repository.NewFoodRepository(testhelpers.NewTestDB(t))
	ctx := context.Background()

	food := &models.Food{
		Meal: models.MealDinner,
		Date: time.Date(2024, 1, 2, 19, 0, 0, 0, time.UTC),
		Items: []*models.FoodItem{
			{Title: "A", Kind: models.FoodItemMeal},
			{Title: "B", Kind: models.FoodItemMeal},
		},
	}
	saved, err := repo.SaveWithItems(ctx, alice, food)
	require.NoError(t, err)
	require.Len(t, saved.Items, 2)

	var keepA *models.FoodItem
	for _, item := range saved.Items {
		if item.Title == "A" {
			keepA = item
		}
	}
	require.NotNil(t, keepA)

	saved.Items = []*models.FoodItem{keepA}
	resaved, err := repo.SaveWithItems(ctx, alice, saved)
	require.NoError(t, err)

	// B is detached, not merged: exactly one child remains associated.
	require.Len(t, resaved.Items, 1)
	assert.Equal(t, "A", resaved.Items[0].Title)
}

func TestGetForUserDayWindow(t *testing.T) {
	repo := repository.NewFoodRepository(testhelpers.NewTestDB(t))
	ctx := context.Background()

	days := []time.Time{
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC),
	}
	for _, d := range days {
		_, err := repo.SaveWithItems(ctx, alice, &models.Food{Meal: models.MealBreakfast, Date: d})
		require.NoError(t, err)
	}

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	foods, err := repo.GetForUser(ctx, alice, &day)
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.True(t, foods[0].Date.Before(foods[1].Date))
}

func TestLoadItemsOrdersChildrenByCreation(t *testing.T) {
	repo := repository.NewFoodRepository(testhelpers.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	food := &models.Food{
		Meal: models.MealSnack,
		Date: base,
		Items: []*models.FoodItem{
			{CacheMeta: models.CacheMeta{CreatedAt: base.Add(2 * time.Minute)}, Title: "second"},
			{CacheMeta: models.CacheMeta{CreatedAt: base.Add(time.Minute)}, Title: "first"},
		},
	}
	saved, err := repo.SaveWithItems(ctx, alice, food)
	require.NoError(t, err)

	require.Len(t, saved.Items, 2)
	assert.Equal(t, "first", saved.Items[0].Title)
	assert.Equal(t, "second", saved.Items[1].Title)
}

func TestFoodUserScoping(t *testing.T) {
	repo := repository.NewFoodRepository(testhelpers.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.SaveWithItems(ctx, alice, &models.Food{Meal: models.MealLunch, Date: time.Now()})
	require.NoError(t, err)

	other, err := repo.GetForUser(ctx, types.UserContext{UserID: "bob"}, nil)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRemoveAllForUserClearsChildren(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := repository.NewFoodRepository(db)
	ctx := context.Background()

	_, err := repo.SaveWithItems(ctx, alice, &models.Food{
		Meal:  models.MealLunch,
		Date:  time.Now(),
		Items: []*models.FoodItem{{Title: "soup"}},
	})
	require.NoError(t, err)

	require.NoError(t, repo.RemoveAllForUser(ctx, alice))

	foods, err := repo.GetForUser(ctx, alice, nil)
	require.NoError(t, err)
	assert.Empty(t, foods)

	var itemCount int64
	require.NoError(t, db.Model(&models.FoodItem{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}
