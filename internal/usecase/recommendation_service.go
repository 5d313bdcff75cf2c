package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/nutrimatch/backend/internal/domain"
	"github.com/nutrimatch/backend/internal/observability"
)

const (
	maxSuggestions           = 3
	MinActivityMinutes       = 15
	maxSuggestedPortionGrams = 100.0
)

// RecommendationService suggests reference items that fit a budget.
// Diet suggestions filter single foods by their per-100 g values; they do not
// search for the best combination of foods.
type RecommendationService struct {
	estimator *Estimator
}

// NewRecommendationService creates a recommendation service over an estimator's tables
func NewRecommendationService(estimator *Estimator) *RecommendationService {
	return &RecommendationService{estimator: estimator}
}

// GetDietaryRecommendations lists up to three foods whose per-100 g values all
// fit the remaining allowance, in table order.
func (s *RecommendationService) GetDietaryRecommendations(
	ctx context.Context,
	remaining domain.Allowance,
	profile *domain.UserProfile,
) (text string) {
	messages := s.estimator.Messages()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[RECOMMEND] Diet recommendations panic: %v", r)
			text = messages.DietFailed
		}
	}()

	var suggestions []string
	for _, food := range s.estimator.Foods() {
		if food.Calories > remaining.Calories ||
			food.Carbs > remaining.Carbs ||
			food.Proteins > remaining.Proteins ||
			food.Fats > remaining.Fats {
			continue
		}

		grams := maxSuggestedPortionGrams
		if food.Calories > 0 {
			grams = math.Min(maxSuggestedPortionGrams, remaining.Calories/food.Calories*domain.ReferenceMassGrams)
		}
		suggestions = append(suggestions, fmt.Sprintf("%s (%dg)", food.Name, int(math.Round(grams))))

		if len(suggestions) == maxSuggestions {
			break
		}
	}

	observability.RecordRecommendation("diet", len(suggestions))

	if len(suggestions) == 0 {
		return messages.DietFallback
	}

	header := fmt.Sprintf(messages.DietHeader, formatNumber(remaining.Calories))
	return header + "\n\n" + strings.Join(suggestions, "\n")
}

// GetActivitySuggestions lists the calories the first three activities burn
// in the available time. Level and goals are accepted for the caller's
// convenience and do not influence the result.
func (s *RecommendationService) GetActivitySuggestions(
	ctx context.Context,
	currentLevel string,
	goals string,
	availableMinutes int,
	profile *domain.UserProfile,
) (text string) {
	messages := s.estimator.Messages()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[RECOMMEND] Activity suggestions panic: %v", r)
			text = messages.ActivityFailed
		}
	}()

	if availableMinutes < MinActivityMinutes {
		observability.RecordRecommendation("activity", 0)
		return messages.ActivityFallback
	}

	weight := profile.BodyWeight()
	var suggestions []string
	for _, activity := range s.estimator.Activities() {
		burned := CaloriesBurned(activity, weight, availableMinutes)
		suggestions = append(suggestions, fmt.Sprintf("%s: %d kcal in %d min", activity.Name, burned, availableMinutes))
		if len(suggestions) == maxSuggestions {
			break
		}
	}

	observability.RecordRecommendation("activity", len(suggestions))

	if len(suggestions) == 0 {
		return messages.ActivityFallback
	}

	header := fmt.Sprintf(messages.ActivityHeader, availableMinutes)
	return header + "\n\n" + strings.Join(suggestions, "\n")
}

// formatNumber prints integers without a decimal part and other values
// with the shortest exact representation.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
