package usecase

import (
	"fmt"
	"math"

	"github.com/nutrimatch/backend/internal/domain"
	"github.com/nutrimatch/backend/internal/reference"
)

// Estimator turns descriptions into food and activity estimates.
// It owns a private copy of the reference tables and holds no other state,
// so it is safe for concurrent use.
type Estimator struct {
	foods        []domain.ReferenceFood
	activities   []domain.ReferenceActivity
	foodKeys     []string
	activityKeys []string
	messages     domain.Messages
	matcher      *MatchingService
	extractor    *QuantityExtractor
}

// NewEstimator validates the tables and builds an estimator over a copy of them
func NewEstimator(tables *domain.ReferenceTables, matcher *MatchingService) (*Estimator, error) {
	if err := reference.Validate(tables); err != nil {
		return nil, err
	}
	if matcher == nil {
		matcher = NewMatchingService(MatchConfig{})
	}

	e := &Estimator{
		foods:      append([]domain.ReferenceFood(nil), tables.Foods...),
		activities: append([]domain.ReferenceActivity(nil), tables.Activities...),
		messages:   reference.FillMessages(tables.Messages),
		matcher:    matcher,
		extractor:  NewQuantityExtractor(tables.Portions),
	}

	e.foodKeys = make([]string, len(e.foods))
	for i, f := range e.foods {
		e.foodKeys[i] = f.Key
	}
	e.activityKeys = make([]string, len(e.activities))
	for i, a := range e.activities {
		e.activityKeys[i] = a.Key
	}

	return e, nil
}

// EstimateFood matches a food description and scales it to the described mass.
// It returns the estimate and its confidence, or domain.ErrNotRecognized.
func (e *Estimator) EstimateFood(description string) (*domain.FoodEstimate, int, error) {
	match, err := e.matcher.FindBestMatch(description, e.foodKeys)
	if err != nil {
		return nil, 0, err
	}
	if match.Index < 0 || match.Index >= len(e.foods) {
		return nil, 0, fmt.Errorf("food match index %d out of range", match.Index)
	}

	food := e.foods[match.Index]
	grams := e.extractor.ExtractMass(description, food.Key)

	return ScaleFood(food, grams), Confidence(match.Score, FoodConfidenceCap), nil
}

// EstimateActivity matches an activity description and computes the calories
// burned for the described duration at the profile's body weight.
func (e *Estimator) EstimateActivity(description string, profile *domain.UserProfile) (*domain.ActivityEstimate, int, error) {
	match, err := e.matcher.FindBestMatch(description, e.activityKeys)
	if err != nil {
		return nil, 0, err
	}
	if match.Index < 0 || match.Index >= len(e.activities) {
		return nil, 0, fmt.Errorf("activity match index %d out of range", match.Index)
	}

	activity := e.activities[match.Index]
	minutes := e.extractor.ExtractDuration(description, activity.Family)

	return &domain.ActivityEstimate{
		Name:              activity.Name,
		CaloriesBurned:    CaloriesBurned(activity, profile.BodyWeight(), minutes),
		DurationInMinutes: minutes,
	}, Confidence(match.Score, ActivityConfidenceCap), nil
}

// Foods returns a copy of the food table in its fixed order
func (e *Estimator) Foods() []domain.ReferenceFood {
	return append([]domain.ReferenceFood(nil), e.foods...)
}

// Activities returns a copy of the activity table in its fixed order
func (e *Estimator) Activities() []domain.ReferenceActivity {
	return append([]domain.ReferenceActivity(nil), e.activities...)
}

// Messages returns the localized user-facing texts
func (e *Estimator) Messages() domain.Messages {
	return e.messages
}

// ScaleFood scales per-100 g reference values to the given mass.
// Carbs, proteins and fats keep one decimal; calories and water are whole.
func ScaleFood(food domain.ReferenceFood, grams float64) *domain.FoodEstimate {
	scale := func(per100 float64) float64 {
		return per100 * grams / domain.ReferenceMassGrams
	}
	return &domain.FoodEstimate{
		Name:     food.Name,
		Weight:   grams,
		Calories: roundTo(scale(food.Calories), 0),
		Carbs:    roundTo(scale(food.Carbs), 1),
		Proteins: roundTo(scale(food.Proteins), 1),
		Fats:     roundTo(scale(food.Fats), 1),
		Water:    roundTo(scale(food.Water), 0),
	}
}

// maxCaloriesBurned is the largest burn CaloriesBurned reports
const maxCaloriesBurned = math.MaxInt32

// CaloriesBurned scales the 70 kg hourly rate by body weight and duration.
// The result is clamped to [0, maxCaloriesBurned].
func CaloriesBurned(activity domain.ReferenceActivity, weightKg float64, minutes int) int {
	if weightKg <= 0 || math.IsNaN(weightKg) {
		weightKg = domain.ReferenceBodyWeightKg
	}
	perHour := activity.CaloriesPerHour * (weightKg / domain.ReferenceBodyWeightKg)
	burned := math.Round(perHour * float64(minutes) / 60)
	switch {
	case math.IsNaN(burned) || burned <= 0:
		return 0
	case burned >= maxCaloriesBurned:
		return maxCaloriesBurned
	}
	return int(burned)
}

// roundTo rounds half away from zero to the given number of decimals
func roundTo(v float64, decimals int) float64 {
	if decimals == 0 {
		return math.Round(v)
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
