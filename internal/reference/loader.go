package reference

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"

	"github.com/nutrimatch/backend/internal/domain"
)

// Load reads reference tables from a YAML or JSON file.
// An empty path returns the built-in tables. Messages missing from the
// file are taken from DefaultMessages.
func Load(path string) (*domain.ReferenceTables, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading reference file: %w", err)
	}

	var tables domain.ReferenceTables
	if err := v.Unmarshal(&tables); err != nil {
		return nil, fmt.Errorf("unable to decode reference file: %w", err)
	}

	normalize(&tables)

	if err := Validate(&tables); err != nil {
		return nil, err
	}

	log.Printf("[REFERENCE] Loaded %s: %d foods, %d portions, %d activities",
		path, len(tables.Foods), len(tables.Portions), len(tables.Activities))

	return &tables, nil
}

// normalize lowercases keys and fills in defaults the file left out
func normalize(t *domain.ReferenceTables) {
	for i := range t.Foods {
		t.Foods[i].Key = strings.ToLower(strings.TrimSpace(t.Foods[i].Key))
	}
	for i := range t.Activities {
		a := &t.Activities[i]
		a.Key = strings.ToLower(strings.TrimSpace(a.Key))
		if a.Family == "" {
			a.Family = domain.FamilyOther
		}
	}
	if t.Portions == nil {
		t.Portions = map[string]float64{}
	}
	t.Messages = FillMessages(t.Messages)
}

// FillMessages replaces blank messages with their DefaultMessages value
func FillMessages(m domain.Messages) domain.Messages {
	defaults := DefaultMessages()
	pick := func(s, d string) string {
		if strings.TrimSpace(s) == "" {
			return d
		}
		return s
	}
	return domain.Messages{
		FoodNotRecognized:     pick(m.FoodNotRecognized, defaults.FoodNotRecognized),
		ActivityNotRecognized: pick(m.ActivityNotRecognized, defaults.ActivityNotRecognized),
		AnalysisFailed:        pick(m.AnalysisFailed, defaults.AnalysisFailed),
		DietHeader:            pick(m.DietHeader, defaults.DietHeader),
		DietFallback:          pick(m.DietFallback, defaults.DietFallback),
		DietFailed:            pick(m.DietFailed, defaults.DietFailed),
		ActivityHeader:        pick(m.ActivityHeader, defaults.ActivityHeader),
		ActivityFallback:      pick(m.ActivityFallback, defaults.ActivityFallback),
		ActivityFailed:        pick(m.ActivityFailed, defaults.ActivityFailed),
	}
}

// Validate checks that the tables can be matched against.
// Keys must be non-empty, lowercase and unique within their table. Nutrient
// values must be non-negative and portions positive.
func Validate(t *domain.ReferenceTables) error {
	if t == nil {
		return fmt.Errorf("%w: nil tables", domain.ErrInvalidReference)
	}
	if len(t.Foods) == 0 && len(t.Activities) == 0 {
		return fmt.Errorf("%w: no foods and no activities", domain.ErrInvalidReference)
	}

	seen := make(map[string]bool)
	for _, f := range t.Foods {
		if err := checkKey(f.Key, seen); err != nil {
			return fmt.Errorf("%w: food %w", domain.ErrInvalidReference, err)
		}
		if f.Name == "" {
			return fmt.Errorf("%w: food %q has no name", domain.ErrInvalidReference, f.Key)
		}
		if f.Calories < 0 || f.Carbs < 0 || f.Proteins < 0 || f.Fats < 0 || f.Water < 0 {
			return fmt.Errorf("%w: food %q has negative values", domain.ErrInvalidReference, f.Key)
		}
	}

	for key, grams := range t.Portions {
		if !seen[key] {
			return fmt.Errorf("%w: portion %q has no food", domain.ErrInvalidReference, key)
		}
		if grams <= 0 {
			return fmt.Errorf("%w: portion %q must be positive", domain.ErrInvalidReference, key)
		}
	}

	seen = make(map[string]bool)
	for _, a := range t.Activities {
		if err := checkKey(a.Key, seen); err != nil {
			return fmt.Errorf("%w: activity %w", domain.ErrInvalidReference, err)
		}
		if a.Name == "" {
			return fmt.Errorf("%w: activity %q has no name", domain.ErrInvalidReference, a.Key)
		}
		if a.CaloriesPerHour < 0 {
			return fmt.Errorf("%w: activity %q has negative burn rate", domain.ErrInvalidReference, a.Key)
		}
		if !a.Intensity.Valid() {
			return fmt.Errorf("%w: activity %q has unknown intensity %q", domain.ErrInvalidReference, a.Key, a.Intensity)
		}
		if !a.Family.Valid() {
			return fmt.Errorf("%w: activity %q has unknown family %q", domain.ErrInvalidReference, a.Key, a.Family)
		}
	}

	if err := checkHeader(t.Messages.DietHeader, 's'); err != nil {
		return fmt.Errorf("%w: diet_header %w", domain.ErrInvalidReference, err)
	}
	if err := checkHeader(t.Messages.ActivityHeader, 'd'); err != nil {
		return fmt.Errorf("%w: activity_header %w", domain.ErrInvalidReference, err)
	}

	return nil
}

// checkHeader requires a recommendation header to carry exactly one verb,
// and that verb to be want. Blank headers are replaced by FillMessages.
func checkHeader(format string, want rune) error {
	if strings.TrimSpace(format) == "" {
		return nil
	}

	var verbs []rune
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' {
			continue
		}
		if i+1 == len(runes) {
			return fmt.Errorf("%q ends with a bare %%", format)
		}
		i++
		if runes[i] != '%' {
			verbs = append(verbs, runes[i])
		}
	}

	if len(verbs) != 1 || verbs[0] != want {
		return fmt.Errorf("%q must contain exactly one %%%c", format, want)
	}
	return nil
}

func checkKey(key string, seen map[string]bool) error {
	switch {
	case key == "":
		return fmt.Errorf("empty key")
	case key != strings.ToLower(strings.TrimSpace(key)):
		return fmt.Errorf("key %q must be lowercase and trimmed", key)
	case seen[key]:
		return fmt.Errorf("duplicate key %q", key)
	}
	seen[key] = true
	return nil
}
