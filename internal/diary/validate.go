package diary

import (
	"fmt"
	"strings"
)

// Validate checks the structural constraints a profile must satisfy before
// it is written: at least one named plan day, named exercises with at
// least one set each, and non-negative goals.
func (p UserProfile) Validate() error {
	if p.WorkoutPlan.Len() == 0 {
		return NewValidationError("workoutPlan", "plan must have at least one day")
	}
	for _, day := range p.WorkoutPlan.days {
		if strings.TrimSpace(day.Label) == "" {
			return NewValidationError("workoutPlan", "day label cannot be empty")
		}
		for i, ex := range day.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				return NewValidationError("workoutPlan", fmt.Sprintf("%s: exercise %d has no name", day.Label, i+1))
			}
			if ex.TargetSets < 1 {
				return NewValidationError("workoutPlan", fmt.Sprintf("%s: %s needs at least one set", day.Label, ex.Name))
			}
		}
	}

	g := p.NutritionGoals
	if g.Calories < 0 || g.ProteinGrams < 0 || g.CarbGrams < 0 || g.FatGrams < 0 {
		return NewValidationError("nutritionGoals", "goals cannot be negative")
	}
	return nil
}
