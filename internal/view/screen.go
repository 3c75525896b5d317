package view

type Screen string

const (
	ScreenWorkoutEntry   Screen = "workout-entry"
	ScreenNutritionEntry Screen = "nutrition-entry"
	ScreenPlanView       Screen = "plan-view"
	ScreenHistory        Screen = "history"
	ScreenSettings       Screen = "settings"
)

// Screens in tab order.
var Screens = []Screen{
	ScreenWorkoutEntry,
	ScreenNutritionEntry,
	ScreenPlanView,
	ScreenHistory,
	ScreenSettings,
}

func (s Screen) Valid() bool {
	for _, known := range Screens {
		if s == known {
			return true
		}
	}
	return false
}

// ParseScreen falls back to the workout entry screen for unknown names.
func ParseScreen(name string) Screen {
	s := Screen(name)
	if !s.Valid() {
		return ScreenWorkoutEntry
	}
	return s
}
