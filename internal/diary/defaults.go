package diary

// CanonicalPlanDays is the day count of a full push/pull/legs A/B cycle.
const CanonicalPlanDays = 6

// DefaultProfile returns the profile written on first access.
// Every call returns a fresh value, so callers are free to modify it.
func DefaultProfile() UserProfile {
	return UserProfile{
		WorkoutPlan:    DefaultWorkoutPlan(),
		NutritionGoals: DefaultNutritionGoals(),
	}
}

func DefaultNutritionGoals() NutritionGoals {
	return NutritionGoals{
		Calories:     3200,
		ProteinGrams: 160,
		CarbGrams:    460,
		FatGrams:     80,
	}
}

func DefaultWorkoutPlan() WorkoutPlan {
	return NewWorkoutPlan(
		PlanDay{
			Label: "Push A (Chest/Shoulders)",
			Exercises: []Exercise{
				{Name: "Flat Bench Press (Barbell or Dumbbells)", TargetSets: 4, TargetReps: "6-10"},
				{Name: "Incline Press (Dumbbells)", TargetSets: 3, TargetReps: "8-12"},
				{Name: "Lateral Raise (Dumbbells)", TargetSets: 4, TargetReps: "10-15"},
				{Name: "Triceps Rope Pushdown (Cable)", TargetSets: 3, TargetReps: "10-15"},
			},
		},
		PlanDay{
			Label: "Pull A (Lats/Biceps)",
			Exercises: []Exercise{
				{Name: "Lat Pulldown (Cable, Front)", TargetSets: 4, TargetReps: "8-12"},
				{Name: "Hammer Curl (Dumbbells)", TargetSets: 3, TargetReps: "10-15"},
			},
		},
		PlanDay{
			Label: "Legs A (Quads)",
			Exercises: []Exercise{
				{Name: "Back Squat (or Hack Machine)", TargetSets: 4, TargetReps: "6-10"},
				{Name: "Standing Calf Raise (Machine)", TargetSets: 4, TargetReps: "10-15"},
			},
		},
		PlanDay{
			Label: "Push B (Shoulders/Triceps)",
			Exercises: []Exercise{
				{Name: "Shoulder Press (Dumbbells)", TargetSets: 4, TargetReps: "6-10"},
				{Name: "Single-Arm Overhead Triceps Extension (Dumbbell)", TargetSets: 3, TargetReps: "10-15"},
			},
		},
		PlanDay{
			Label: "Pull B (Back Thickness/Traps)",
			Exercises: []Exercise{
				{Name: "T-Bar Row", TargetSets: 4, TargetReps: "6-10"},
				{Name: "Reverse Curl (Cable or Barbell)", TargetSets: 3, TargetReps: "10-15"},
			},
		},
		PlanDay{
			Label: "Legs B (Hamstrings/Glutes)",
			Exercises: []Exercise{
				{Name: "Deadlift (or Stiff-Leg)", TargetSets: 4, TargetReps: "5-8"},
				{Name: "Seated Calf Raise (Machine)", TargetSets: 4, TargetReps: "12-20"},
			},
		},
	)
}
