package workoutlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/trainingdiary/internal/diary"
)

// SetInput is one set slot of the workout form. Empty slots are zero.
type SetInput struct {
	Weight float64 `json:"weight"`
	Reps   float64 `json:"reps"`
}

// Submission is a filled workout form. Sets[i][j] is set j+1 of the i-th
// exercise of the selected plan day.
type Submission struct {
	DayLabel string       `json:"workoutDayLabel"`
	Sets     [][]SetInput `json:"sets"`
	// Date defaults to the day of the submission.
	Date string `json:"date,omitempty"`
}

// BuildEntries turns a submission into log entries, one per set slot that
// has both a positive weight and positive reps. Slots past the exercise's
// target sets are ignored.
func BuildEntries(plan diary.WorkoutPlan, sub Submission, now time.Time) ([]diary.WorkoutLogEntry, error) {
	label := strings.TrimSpace(sub.DayLabel)
	if label == "" {
		return nil, diary.NewValidationError("workoutDayLabel", "select a workout day")
	}

	exercises, ok := plan.Day(label)
	if !ok {
		return nil, diary.NewValidationError("workoutDayLabel", fmt.Sprintf("unknown workout day %q", label))
	}

	date := diary.DateKey(now)
	if sub.Date != "" {
		if _, err := diary.ParseDateKey(sub.Date); err != nil {
			return nil, diary.NewValidationError("date", fmt.Sprintf("invalid date %q", sub.Date))
		}
		date = sub.Date
	}

	var entries []diary.WorkoutLogEntry
	for exIndex, ex := range exercises {
		if exIndex >= len(sub.Sets) {
			break
		}
		slots := sub.Sets[exIndex]
		for i := 0; i < ex.TargetSets && i < len(slots); i++ {
			if slots[i].Weight <= 0 || slots[i].Reps <= 0 {
				continue
			}
			entries = append(entries, diary.WorkoutLogEntry{
				Date:            date,
				WorkoutDayLabel: label,
				ExerciseName:    ex.Name,
				SetIndex:        i + 1,
				Weight:          slots[i].Weight,
				Reps:            slots[i].Reps,
				CreatedAt:       now.UTC(),
			})
		}
	}

	if len(entries) == 0 {
		return nil, diary.NewValidationError("sets", "no sets filled")
	}

	return entries, nil
}
