package models

import (
	"time"

	"gorm.io/datatypes"
)

// Food is a food-intake record for one meal of one day. It exclusively owns
// its FoodItem children; a save always replaces the full child set.
type Food struct {
	CacheMeta
	Meal      MealOfDay                   `gorm:"size:20" json:"meal"`
	Date      time.Time                   `gorm:"index" json:"date"`
	ImageRefs datatypes.JSONSlice[string] `json:"image_refs"`
	Items     []*FoodItem                 `gorm:"foreignKey:FoodID" json:"items"`
}

// FoodItem is a single consumed item belonging to exactly one Food.
type FoodItem struct {
	CacheMeta
	FoodID string       `gorm:"type:varchar(36);index" json:"food_id"`
	Title  string       `gorm:"size:255;not null" json:"title"`
	Amount float64      `json:"amount"`
	Unit   string       `gorm:"size:50" json:"unit"`
	Kind   FoodItemKind `gorm:"size:20" json:"kind"`
}
