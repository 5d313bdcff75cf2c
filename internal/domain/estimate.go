package domain

import (
	"encoding/json"
	"fmt"
)

// ItemType discriminates the estimate variants
type ItemType string

const (
	ItemTypeFood     ItemType = "food"
	ItemTypeActivity ItemType = "activity"
)

// Estimate is either a *FoodEstimate or an *ActivityEstimate.
// The interface is sealed; switch on the concrete type or on ItemType().
type Estimate interface {
	ItemType() ItemType
	isEstimate()
}

// FoodEstimate is the nutrition content of a described food portion
type FoodEstimate struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"` // grams
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Proteins float64 `json:"proteins"`
	Fats     float64 `json:"fats"`
	Water    float64 `json:"water"`
}

// ActivityEstimate is the energy spent on a described activity
type ActivityEstimate struct {
	Name              string `json:"name"`
	CaloriesBurned    int    `json:"caloriesBurned"`
	DurationInMinutes int    `json:"durationInMinutes"`
}

func (*FoodEstimate) ItemType() ItemType     { return ItemTypeFood }
func (*ActivityEstimate) ItemType() ItemType { return ItemTypeActivity }

func (*FoodEstimate) isEstimate()     {}
func (*ActivityEstimate) isEstimate() {}

// MarshalJSON adds the itemType tag
func (e *FoodEstimate) MarshalJSON() ([]byte, error) {
	type plain FoodEstimate
	return json.Marshal(struct {
		ItemType ItemType `json:"itemType"`
		*plain
	}{ItemTypeFood, (*plain)(e)})
}

// MarshalJSON adds the itemType tag
func (e *ActivityEstimate) MarshalJSON() ([]byte, error) {
	type plain ActivityEstimate
	return json.Marshal(struct {
		ItemType ItemType `json:"itemType"`
		*plain
	}{ItemTypeActivity, (*plain)(e)})
}

// DecodeEstimate decodes a JSON object carrying an itemType tag
func DecodeEstimate(data []byte) (Estimate, error) {
	var tag struct {
		ItemType ItemType `json:"itemType"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var est Estimate
	switch tag.ItemType {
	case ItemTypeFood:
		est = &FoodEstimate{}
	case ItemTypeActivity:
		est = &ActivityEstimate{}
	default:
		return nil, fmt.Errorf("%w: unknown itemType %q", ErrInvalidRequest, tag.ItemType)
	}

	if err := json.Unmarshal(data, est); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return est, nil
}

// UserProfile is supplied by the caller. Only Weight is read by the estimator.
type UserProfile struct {
	ID                string  `json:"id,omitempty"`
	Gender            string  `json:"gender,omitempty"`
	Age               int     `json:"age,omitempty"`
	Weight            float64 `json:"weight,omitempty"` // kg
	Height            float64 `json:"height,omitempty"` // cm
	CalorieDeficit    int     `json:"calorieDeficit,omitempty"`
	CarbPercentage    int     `json:"carbPercentage,omitempty"`
	ProteinPercentage int     `json:"proteinPercentage,omitempty"`
	FatPercentage     int     `json:"fatPercentage,omitempty"`
	Goals             string  `json:"goals,omitempty"`
}

// BodyWeight returns the profile weight, or the 70 kg reference mass when
// the profile is absent or carries no usable weight.
func (p *UserProfile) BodyWeight() float64 {
	if p == nil || p.Weight <= 0 {
		return ReferenceBodyWeightKg
	}
	return p.Weight
}

// AnalysisResult is the outcome of analyzing a description.
// On failure Data is nil and Error carries a message fit for display.
type AnalysisResult struct {
	Success    bool     `json:"success"`
	Data       Estimate `json:"data,omitempty"`
	Error      string   `json:"error,omitempty"`
	Confidence int      `json:"confidence,omitempty"`
}

// Allowance is a daily nutrition budget (or what is left of it)
type Allowance struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Proteins float64 `json:"proteins"`
	Fats     float64 `json:"fats"`
}
