package history

import (
	"github.com/2beens/trainingdiary/internal/diary"
)

// WorkoutDay holds all sets logged on one date, grouped per exercise.
type WorkoutDay struct {
	Date string `json:"date"`
	// Label comes from the first entry seen for the date. Entries of one
	// date are assumed to share it, this is not checked.
	Label     string                             `json:"workoutDayLabel"`
	Exercises map[string][]diary.WorkoutLogEntry `json:"exercises"`
	// ExerciseOrder lists the exercise names in first-seen order.
	ExerciseOrder []string `json:"exerciseOrder"`
}

// SetCount returns the number of sets logged on the day.
func (d WorkoutDay) SetCount() int {
	count := 0
	for _, sets := range d.Exercises {
		count += len(sets)
	}
	return count
}

// GroupWorkoutsByDate groups entries by date, then by exercise name,
// keeping the input order within each exercise.
func GroupWorkoutsByDate(entries []diary.WorkoutLogEntry) map[string]WorkoutDay {
	days := make(map[string]WorkoutDay)
	for _, e := range entries {
		day, ok := days[e.Date]
		if !ok {
			day = WorkoutDay{
				Date:      e.Date,
				Label:     e.WorkoutDayLabel,
				Exercises: make(map[string][]diary.WorkoutLogEntry),
			}
		}
		if _, seen := day.Exercises[e.ExerciseName]; !seen {
			day.ExerciseOrder = append(day.ExerciseOrder, e.ExerciseName)
		}
		day.Exercises[e.ExerciseName] = append(day.Exercises[e.ExerciseName], e)
		days[e.Date] = day
	}
	return days
}

// WorkoutHistory returns the grouped days, most recent first.
func WorkoutHistory(entries []diary.WorkoutLogEntry) []WorkoutDay {
	grouped := GroupWorkoutsByDate(entries)
	dates := make([]string, 0, len(grouped))
	for date := range grouped {
		dates = append(dates, date)
	}

	history := make([]WorkoutDay, 0, len(grouped))
	for _, date := range SortDatesDesc(dates) {
		history = append(history, grouped[date])
	}
	return history
}
