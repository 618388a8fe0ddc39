package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMealOfDay(t *testing.T) {
	assert.Equal(t, MealBreakfast, ParseMealOfDay("breakfast"))
	assert.Equal(t, MealSnack, ParseMealOfDay("snack"))
	assert.Equal(t, MealUnknown, ParseMealOfDay("brunch"))
	assert.Equal(t, MealUnknown, ParseMealOfDay(""))
}

func TestParseFoodItemKind(t *testing.T) {
	assert.Equal(t, FoodItemMeal, ParseFoodItemKind("meal"))
	assert.Equal(t, FoodItemDrug, ParseFoodItemKind("drug"))
	assert.Equal(t, FoodItemUnknown, ParseFoodItemKind("supplement"))
}

func TestParseRecommendationKind(t *testing.T) {
	assert.Equal(t, RecommendationFoodSuggestion, ParseRecommendationKind("food_suggestion"))
	assert.Equal(t, RecommendationDrugInteraction, ParseRecommendationKind("drug_interaction"))
	assert.Equal(t, RecommendationUnknown, ParseRecommendationKind("exercise"))
}

func TestParseSampleType(t *testing.T) {
	assert.Equal(t, SampleWeight, ParseSampleType("weight"))
	assert.Equal(t, SampleWater, ParseSampleType("water_intake"))
	assert.Equal(t, SampleUnknown, ParseSampleType("steps"))
}
