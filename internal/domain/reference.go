package domain

// Intensity is the effort tier of a reference activity
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Valid reports whether the intensity is one of the known tiers
func (i Intensity) Valid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}

// ActivityFamily groups activities that share a default duration
type ActivityFamily string

const (
	FamilyRunning   ActivityFamily = "running"
	FamilyBallSport ActivityFamily = "ball_sport"
	FamilyWalking   ActivityFamily = "walking"
	FamilyOther     ActivityFamily = "other"
)

// Valid reports whether the family is one of the known keyword families
func (f ActivityFamily) Valid() bool {
	switch f {
	case FamilyRunning, FamilyBallSport, FamilyWalking, FamilyOther:
		return true
	}
	return false
}

// ReferenceMassGrams is the mass all food reference values are expressed for
const ReferenceMassGrams = 100.0

// ReferenceBodyWeightKg is the body mass activity burn rates are expressed for
const ReferenceBodyWeightKg = 70.0

// ReferenceFood holds nutrition values per 100 g of a food
type ReferenceFood struct {
	Key      string  `mapstructure:"key" yaml:"key" json:"key"`
	Name     string  `mapstructure:"name" yaml:"name" json:"name"`
	Calories float64 `mapstructure:"calories" yaml:"calories" json:"calories"`
	Carbs    float64 `mapstructure:"carbs" yaml:"carbs" json:"carbs"`
	Proteins float64 `mapstructure:"proteins" yaml:"proteins" json:"proteins"`
	Fats     float64 `mapstructure:"fats" yaml:"fats" json:"fats"`
	Water    float64 `mapstructure:"water" yaml:"water" json:"water"`
}

// ReferenceActivity holds the hourly burn rate of an activity at 70 kg
type ReferenceActivity struct {
	Key             string         `mapstructure:"key" yaml:"key" json:"key"`
	Name            string         `mapstructure:"name" yaml:"name" json:"name"`
	CaloriesPerHour float64        `mapstructure:"calories_per_hour" yaml:"calories_per_hour" json:"caloriesPerHour"`
	Intensity       Intensity      `mapstructure:"intensity" yaml:"intensity" json:"intensity"`
	Family          ActivityFamily `mapstructure:"family" yaml:"family" json:"family"`
}

// Messages are the user-facing texts returned by the estimator.
// They are localized per reference table.
type Messages struct {
	FoodNotRecognized     string `mapstructure:"food_not_recognized" yaml:"food_not_recognized"`
	ActivityNotRecognized string `mapstructure:"activity_not_recognized" yaml:"activity_not_recognized"`
	AnalysisFailed        string `mapstructure:"analysis_failed" yaml:"analysis_failed"`
	DietHeader            string `mapstructure:"diet_header" yaml:"diet_header"`
	DietFallback          string `mapstructure:"diet_fallback" yaml:"diet_fallback"`
	DietFailed            string `mapstructure:"diet_failed" yaml:"diet_failed"`
	ActivityHeader        string `mapstructure:"activity_header" yaml:"activity_header"`
	ActivityFallback      string `mapstructure:"activity_fallback" yaml:"activity_fallback"`
	ActivityFailed        string `mapstructure:"activity_failed" yaml:"activity_failed"`
}

// ReferenceTables is the immutable ground truth used for matching.
// Foods and Activities are ordered; the order decides score ties.
type ReferenceTables struct {
	Foods      []ReferenceFood     `mapstructure:"foods" yaml:"foods"`
	Portions   map[string]float64  `mapstructure:"portions" yaml:"portions"`
	Activities []ReferenceActivity `mapstructure:"activities" yaml:"activities"`
	Messages   Messages            `mapstructure:"messages" yaml:"messages"`
}
