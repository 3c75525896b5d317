package plan

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPlan means the AI response had no usable workout day at all.
var ErrEmptyPlan = errors.New("generated plan has no usable workout days")

// SchemaError means the AI response does not have the expected shape.
// It is fatal to the generation attempt only.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "invalid generated plan: " + e.Reason
}

// PartialPlanWarning is not an error: the plan is still usable, but it has
// fewer days than a full cycle or lost some exercise items, and the user
// should be told about it.
type PartialPlanWarning struct {
	Days             int `json:"days"`
	Expected         int `json:"expected"`
	SkippedExercises int `json:"skippedExercises,omitempty"`
}

func (w *PartialPlanWarning) Message() string {
	var problems []string
	if w.Days < w.Expected {
		problems = append(problems, fmt.Sprintf("has only %d of %d days", w.Days, w.Expected))
	}
	if w.SkippedExercises > 0 {
		problems = append(problems, fmt.Sprintf("dropped %d malformed exercises", w.SkippedExercises))
	}
	if len(problems) == 0 {
		return "generated plan is incomplete, review it before saving"
	}
	return "generated plan " + strings.Join(problems, " and ") + ", review it before saving"
}
