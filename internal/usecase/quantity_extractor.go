package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/nutrimatch/backend/internal/domain"
)

// Default quantities used when a description states none
const (
	DefaultPortionGrams    = 100.0
	DefaultDurationMinutes = 30
	WalkingDurationMinutes = 45
)

// Compiled regex patterns for quantity extraction
var (
	// Matches masses like "200g", "150 gr", "1,5 grammi"
	massPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:grammi|grammo|gr|g)\b`)

	// Matches durations like "45 minuti", "30min", "1 minuto"
	durationPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:minuti|minuto|min)\b`)
)

// familyDurations are the default minutes per keyword family
var familyDurations = map[domain.ActivityFamily]int{
	domain.FamilyRunning:   DefaultDurationMinutes,
	domain.FamilyBallSport: DefaultDurationMinutes,
	domain.FamilyWalking:   WalkingDurationMinutes,
	domain.FamilyOther:     DefaultDurationMinutes,
}

// QuantityExtractor reads mass and duration hints out of a description.
// Both extractions are total: they always return a positive value.
type QuantityExtractor struct {
	portions map[string]float64
}

// NewQuantityExtractor creates an extractor backed by a portion table
func NewQuantityExtractor(portions map[string]float64) *QuantityExtractor {
	copied := make(map[string]float64, len(portions))
	for k, v := range portions {
		copied[k] = v
	}
	return &QuantityExtractor{portions: copied}
}

// ExtractMass returns the grams stated in the description, or the default
// portion of foodKey, or DefaultPortionGrams.
func (e *QuantityExtractor) ExtractMass(description, foodKey string) float64 {
	if grams, ok := parseQuantity(massPattern, description); ok && grams > 0 {
		return grams
	}
	return e.DefaultPortion(foodKey)
}

// DefaultPortion returns the portion table entry for a food key
func (e *QuantityExtractor) DefaultPortion(foodKey string) float64 {
	if grams, ok := e.portions[foodKey]; ok && grams > 0 {
		return grams
	}
	return DefaultPortionGrams
}

// ExtractDuration returns the minutes stated in the description, or the
// default of the activity's keyword family.
func (e *QuantityExtractor) ExtractDuration(description string, family domain.ActivityFamily) int {
	if minutes, ok := parseQuantity(durationPattern, description); ok {
		if rounded := math.Round(minutes); rounded > 0 && rounded <= math.MaxInt32 {
			return int(rounded)
		}
	}
	return DefaultDuration(family)
}

// DefaultDuration returns the default minutes for a keyword family
func DefaultDuration(family domain.ActivityFamily) int {
	if minutes, ok := familyDurations[family]; ok {
		return minutes
	}
	return DefaultDurationMinutes
}

// parseQuantity returns the number captured by the first pattern match.
// A comma decimal separator is accepted.
func parseQuantity(pattern *regexp.Regexp, description string) (float64, bool) {
	match := pattern.FindStringSubmatch(strings.ToLower(description))
	if match == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.Replace(match[1], ",", ".", 1), 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, false
	}
	return value, true
}
