package models

// Closed tag sets for category-style fields read from the origin. Each
// family keeps an explicit Unknown variant so unrecognized remote values
// round-trip without failing.

// MealOfDay identifies which meal a Food record belongs to.
type MealOfDay string

const (
	MealBreakfast MealOfDay = "breakfast"
	MealLunch     MealOfDay = "lunch"
	MealDinner    MealOfDay = "dinner"
	MealSnack     MealOfDay = "snack"
	MealUnknown   MealOfDay = "unknown"
)

// ParseMealOfDay maps a raw tag to its variant, falling back to MealUnknown.
func ParseMealOfDay(raw string) MealOfDay {
	switch MealOfDay(raw) {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return MealOfDay(raw)
	default:
		return MealUnknown
	}
}

// FoodItemKind distinguishes meal entries from drug entries inside a Food.
type FoodItemKind string

const (
	FoodItemMeal    FoodItemKind = "meal"
	FoodItemDrug    FoodItemKind = "drug"
	FoodItemUnknown FoodItemKind = "unknown"
)

func ParseFoodItemKind(raw string) FoodItemKind {
	switch FoodItemKind(raw) {
	case FoodItemMeal, FoodItemDrug:
		return FoodItemKind(raw)
	default:
		return FoodItemUnknown
	}
}

// RecommendationKind groups recommendations into the type families the
// repositories query by.
type RecommendationKind string

const (
	RecommendationFoodSuggestion  RecommendationKind = "food_suggestion"
	RecommendationUnsafeFood      RecommendationKind = "unsafe_food"
	RecommendationDrugConsumption RecommendationKind = "drug_consumption"
	RecommendationDrugInteraction RecommendationKind = "drug_interaction"
	RecommendationUnknown         RecommendationKind = "unknown"
)

func ParseRecommendationKind(raw string) RecommendationKind {
	switch RecommendationKind(raw) {
	case RecommendationFoodSuggestion, RecommendationUnsafeFood,
		RecommendationDrugConsumption, RecommendationDrugInteraction:
		return RecommendationKind(raw)
	default:
		return RecommendationUnknown
	}
}

// SampleType tags a QuantitySample measurement.
type SampleType string

const (
	SampleWeight    SampleType = "weight"
	SampleSystolic  SampleType = "blood_pressure_systolic"
	SampleDiastolic SampleType = "blood_pressure_diastolic"
	SampleWater     SampleType = "water_intake"
	SampleUnknown   SampleType = "unknown"
)

func ParseSampleType(raw string) SampleType {
	switch SampleType(raw) {
	case SampleWeight, SampleSystolic, SampleDiastolic, SampleWater:
		return SampleType(raw)
	default:
		return SampleUnknown
	}
}
