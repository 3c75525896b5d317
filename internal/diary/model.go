package diary

import (
	"time"
)

// Exercise is a single planned exercise within a plan day.
// It has no identity beyond its position in the day.
type Exercise struct {
	Name       string `json:"name"`
	TargetSets int    `json:"targetSets"`
	TargetReps string `json:"targetReps"`
}

type NutritionGoals struct {
	Calories     float64 `json:"calories"`
	ProteinGrams float64 `json:"proteinGrams"`
	CarbGrams    float64 `json:"carbGrams"`
	FatGrams     float64 `json:"fatGrams"`
}

// UserProfile is stored as a single document per user and always
// overwritten as a whole.
type UserProfile struct {
	WorkoutPlan    WorkoutPlan    `json:"workoutPlan"`
	NutritionGoals NutritionGoals `json:"nutritionGoals"`
}

func (p UserProfile) Clone() UserProfile {
	return UserProfile{
		WorkoutPlan:    p.WorkoutPlan.Clone(),
		NutritionGoals: p.NutritionGoals,
	}
}

// WorkoutLogEntry is one logged set. Entries are immutable once written.
// WorkoutDayLabel is a snapshot of the plan day label at logging time.
type WorkoutLogEntry struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	WorkoutDayLabel string    `json:"workoutDayLabel"`
	ExerciseName    string    `json:"exerciseName"`
	SetIndex        int       `json:"setIndex"`
	Weight          float64   `json:"weight"`
	Reps            float64   `json:"reps"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NutritionLogEntry is one logged food item. Calories are always
// derived from the macros when the entry is created.
type NutritionLogEntry struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	FoodName     string    `json:"foodName"`
	ProteinGrams float64   `json:"proteinGrams"`
	CarbGrams    float64   `json:"carbGrams"`
	FatGrams     float64   `json:"fatGrams"`
	Calories     float64   `json:"calories"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MacroTotals is a per-day (or per-selection) nutrition sum.
type MacroTotals struct {
	Calories     float64 `json:"calories"`
	ProteinGrams float64 `json:"proteinGrams"`
	CarbGrams    float64 `json:"carbGrams"`
	FatGrams     float64 `json:"fatGrams"`
}

func (t MacroTotals) Add(e NutritionLogEntry) MacroTotals {
	t.Calories += e.Calories
	t.ProteinGrams += e.ProteinGrams
	t.CarbGrams += e.CarbGrams
	t.FatGrams += e.FatGrams
	return t
}

// Calories returns the energy of the given macros, 4 kcal/g for protein
// and carbs, 9 kcal/g for fat.
func Calories(proteinGrams, carbGrams, fatGrams float64) float64 {
	return 4*proteinGrams + 4*carbGrams + 9*fatGrams
}
