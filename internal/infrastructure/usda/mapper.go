package usda

import (
	"github.com/nutrimatch/backend/internal/domain"
)

// USDA Nutrient IDs for the values a reference food carries
const (
	NutrientIDEnergy       = 1008 // Calories (kcal)
	NutrientIDProtein      = 1003 // Protein (g)
	NutrientIDCarbohydrate = 1005 // Carbohydrates (g)
	NutrientIDTotalFat     = 1004 // Total Fat (g)
	NutrientIDWater        = 1051 // Water (g)
)

// MapToReferenceFood converts a USDA food (values per 100 g) into a
// reference entry under the given key. Negative values are clamped to zero.
func MapToReferenceFood(key string, usdaFood *domain.USDAFood) domain.ReferenceFood {
	return domain.ReferenceFood{
		Key:      key,
		Name:     usdaFood.Description,
		Calories: nonNegative(FindNutrientValue(usdaFood.Nutrients, NutrientIDEnergy)),
		Carbs:    nonNegative(FindNutrientValue(usdaFood.Nutrients, NutrientIDCarbohydrate)),
		Proteins: nonNegative(FindNutrientValue(usdaFood.Nutrients, NutrientIDProtein)),
		Fats:     nonNegative(FindNutrientValue(usdaFood.Nutrients, NutrientIDTotalFat)),
		Water:    nonNegative(FindNutrientValue(usdaFood.Nutrients, NutrientIDWater)),
	}
}

// FirstWithEnergy returns the first food that reports an energy value
func FirstWithEnergy(foods []domain.USDAFood) (*domain.USDAFood, bool) {
	for i := range foods {
		if FindNutrientValue(foods[i].Nutrients, NutrientIDEnergy) > 0 {
			return &foods[i], true
		}
	}
	return nil, false
}

// FindNutrientValue finds a specific nutrient value by ID
func FindNutrientValue(nutrients []domain.USDANutrient, nutrientID int) float64 {
	for _, nutrient := range nutrients {
		if nutrient.NutrientID == nutrientID {
			return nutrient.Value
		}
	}
	return 0.0
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
