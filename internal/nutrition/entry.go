package nutrition

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/trainingdiary/internal/diary"
)

// Input is a filled food form. Calories are never part of it.
type Input struct {
	FoodName     string  `json:"foodName"`
	ProteinGrams float64 `json:"proteinGrams"`
	CarbGrams    float64 `json:"carbGrams"`
	FatGrams     float64 `json:"fatGrams"`
	// Date defaults to the day of the submission.
	Date string `json:"date,omitempty"`
}

// NewEntry validates the input and derives the calories from the macros.
// A food needs a name and at least one non-zero macro.
func NewEntry(in Input, now time.Time) (diary.NutritionLogEntry, error) {
	name := strings.TrimSpace(in.FoodName)
	if name == "" {
		return diary.NutritionLogEntry{}, diary.NewValidationError("foodName", "food name is required")
	}
	if in.ProteinGrams < 0 || in.CarbGrams < 0 || in.FatGrams < 0 {
		return diary.NutritionLogEntry{}, diary.NewValidationError("macros", "macros cannot be negative")
	}
	if in.ProteinGrams == 0 && in.CarbGrams == 0 && in.FatGrams == 0 {
		return diary.NutritionLogEntry{}, diary.NewValidationError("macros", "fill in at least one macro")
	}

	date := diary.DateKey(now)
	if in.Date != "" {
		if _, err := diary.ParseDateKey(in.Date); err != nil {
			return diary.NutritionLogEntry{}, diary.NewValidationError("date", fmt.Sprintf("invalid date %q", in.Date))
		}
		date = in.Date
	}

	return diary.NutritionLogEntry{
		Date:         date,
		FoodName:     name,
		ProteinGrams: in.ProteinGrams,
		CarbGrams:    in.CarbGrams,
		FatGrams:     in.FatGrams,
		Calories:     diary.Calories(in.ProteinGrams, in.CarbGrams, in.FatGrams),
		CreatedAt:    now.UTC(),
	}, nil
}
