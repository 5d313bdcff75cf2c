// Package reference builds the immutable tables the estimator matches against.
package reference

import "github.com/nutrimatch/backend/internal/domain"

// DefaultMessages are the Italian user-facing texts
func DefaultMessages() domain.Messages {
	return domain.Messages{
		FoodNotRecognized:     "Cibo non riconosciuto. Prova a descrivere più dettagliatamente.",
		ActivityNotRecognized: "Attività non riconosciuta. Prova a descrivere più dettagliatamente.",
		AnalysisFailed:        "Errore durante l'analisi",
		DietHeader:            "Suggerimenti per %s kcal rimanenti:",
		DietFallback:          "Per le calorie rimanenti, prova con porzioni più piccole o cibi meno calorici.",
		DietFailed:            "Impossibile generare raccomandazioni al momento.",
		ActivityHeader:        "Suggerimenti attività per %d minuti:",
		ActivityFallback:      "Prova ad aumentare il tempo disponibile per l'attività fisica.",
		ActivityFailed:        "Impossibile generare suggerimenti al momento.",
	}
}

// Default returns a fresh copy of the built-in Italian tables
func Default() *domain.ReferenceTables {
	return &domain.ReferenceTables{
		Foods: []domain.ReferenceFood{
			{Key: "mela", Name: "Mela", Calories: 52, Carbs: 14, Proteins: 0.3, Fats: 0.2, Water: 85},
			{Key: "banana", Name: "Banana", Calories: 89, Carbs: 23, Proteins: 1.1, Fats: 0.3, Water: 75},
			{Key: "pasta", Name: "Pasta", Calories: 131, Carbs: 25, Proteins: 5, Fats: 1.1, Water: 62},
			{Key: "pane", Name: "Pane", Calories: 265, Carbs: 49, Proteins: 9, Fats: 3.2, Water: 35},
			{Key: "riso", Name: "Riso", Calories: 130, Carbs: 28, Proteins: 2.7, Fats: 0.3, Water: 68},
			{Key: "pollo", Name: "Pollo", Calories: 165, Carbs: 0, Proteins: 31, Fats: 3.6, Water: 65},
			{Key: "tonno", Name: "Tonno", Calories: 144, Carbs: 0, Proteins: 30, Fats: 1, Water: 68},
			{Key: "uova", Name: "Uova", Calories: 155, Carbs: 1.1, Proteins: 13, Fats: 11, Water: 75},
			{Key: "latte", Name: "Latte", Calories: 42, Carbs: 5, Proteins: 3.4, Fats: 1, Water: 88},
			{Key: "yogurt", Name: "Yogurt", Calories: 59, Carbs: 3.6, Proteins: 10, Fats: 0.4, Water: 85},
			{Key: "formaggio", Name: "Formaggio", Calories: 113, Carbs: 0.4, Proteins: 7, Fats: 9, Water: 82},
			{Key: "insalata", Name: "Insalata", Calories: 15, Carbs: 3, Proteins: 1.4, Fats: 0.2, Water: 95},
			{Key: "pomodoro", Name: "Pomodoro", Calories: 18, Carbs: 4, Proteins: 0.9, Fats: 0.2, Water: 94},
			{Key: "carota", Name: "Carota", Calories: 41, Carbs: 10, Proteins: 0.9, Fats: 0.2, Water: 88},
			{Key: "patata", Name: "Patata", Calories: 77, Carbs: 17, Proteins: 2, Fats: 0.1, Water: 79},
			{Key: "cipolla", Name: "Cipolla", Calories: 40, Carbs: 9, Proteins: 1.1, Fats: 0.1, Water: 89},
			{Key: "aglio", Name: "Aglio", Calories: 149, Carbs: 33, Proteins: 6.4, Fats: 0.5, Water: 59},
			{Key: "olio", Name: "Olio d'oliva", Calories: 884, Carbs: 0, Proteins: 0, Fats: 100, Water: 0},
			{Key: "burro", Name: "Burro", Calories: 717, Carbs: 0.1, Proteins: 0.9, Fats: 81, Water: 18},
			{Key: "zucchero", Name: "Zucchero", Calories: 387, Carbs: 100, Proteins: 0, Fats: 0, Water: 0},
		},
		// zucchero has no common portion and falls back to 100 g
		Portions: map[string]float64{
			"mela": 182, "banana": 118, "pasta": 100, "pane": 30, "riso": 100,
			"pollo": 100, "tonno": 100, "uova": 50, "latte": 240, "yogurt": 170,
			"formaggio": 30, "insalata": 100, "pomodoro": 100, "carota": 100,
			"patata": 150, "cipolla": 100, "aglio": 10, "olio": 15, "burro": 15,
		},
		Activities: []domain.ReferenceActivity{
			{Key: "corsa", Name: "Corsa", CaloriesPerHour: 600, Intensity: domain.IntensityHigh, Family: domain.FamilyRunning},
			{Key: "camminata", Name: "Camminata", CaloriesPerHour: 300, Intensity: domain.IntensityLow, Family: domain.FamilyWalking},
			{Key: "passeggiata", Name: "Passeggiata", CaloriesPerHour: 250, Intensity: domain.IntensityLow, Family: domain.FamilyWalking},
			{Key: "nuoto", Name: "Nuoto", CaloriesPerHour: 500, Intensity: domain.IntensityMedium, Family: domain.FamilyOther},
			{Key: "ciclismo", Name: "Ciclismo", CaloriesPerHour: 400, Intensity: domain.IntensityMedium, Family: domain.FamilyOther},
			{Key: "palestra", Name: "Allenamento in palestra", CaloriesPerHour: 450, Intensity: domain.IntensityMedium, Family: domain.FamilyOther},
			{Key: "pesi", Name: "Allenamento pesi", CaloriesPerHour: 350, Intensity: domain.IntensityMedium, Family: domain.FamilyOther},
			{Key: "yoga", Name: "Yoga", CaloriesPerHour: 200, Intensity: domain.IntensityLow, Family: domain.FamilyOther},
			{Key: "pilates", Name: "Pilates", CaloriesPerHour: 250, Intensity: domain.IntensityLow, Family: domain.FamilyOther},
			{Key: "calcio", Name: "Calcio", CaloriesPerHour: 600, Intensity: domain.IntensityHigh, Family: domain.FamilyBallSport},
			{Key: "tennis", Name: "Tennis", CaloriesPerHour: 500, Intensity: domain.IntensityHigh, Family: domain.FamilyBallSport},
			{Key: "basketball", Name: "Basketball", CaloriesPerHour: 550, Intensity: domain.IntensityHigh, Family: domain.FamilyBallSport},
			{Key: "danza", Name: "Danza", CaloriesPerHour: 400, Intensity: domain.IntensityMedium, Family: domain.FamilyOther},
			{Key: "arrampicata", Name: "Arrampicata", CaloriesPerHour: 500, Intensity: domain.IntensityHigh, Family: domain.FamilyOther},
			{Key: "boxe", Name: "Boxe", CaloriesPerHour: 700, Intensity: domain.IntensityHigh, Family: domain.FamilyOther},
		},
		Messages: DefaultMessages(),
	}
}
