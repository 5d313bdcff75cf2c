package domain

import "time"

// DiaryEntry is an accepted estimate recorded for a user
type DiaryEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Estimate  Estimate  `json:"estimate"`
	LoggedAt  time.Time `json:"loggedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// DailySummary totals the diary entries of one user on one day
type DailySummary struct {
	UserID         string  `json:"userId"`
	Date           string  `json:"date"` // YYYY-MM-DD
	Entries        int     `json:"entries"`
	Calories       float64 `json:"calories"`
	Carbs          float64 `json:"carbs"`
	Proteins       float64 `json:"proteins"`
	Fats           float64 `json:"fats"`
	Water          float64 `json:"water"`
	CaloriesBurned int     `json:"caloriesBurned"`
	ActiveMinutes  int     `json:"activeMinutes"`
}
