package plan

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/2beens/trainingdiary/internal/diary"
)

// Result is the normalized form of an AI plan response.
type Result struct {
	Plan           diary.WorkoutPlan    `json:"workoutPlan"`
	NutritionGoals diary.NutritionGoals `json:"nutritionGoals"`
	// Skipped counts the day entries dropped for a missing name or exercise list.
	Skipped int `json:"skipped"`
	// SkippedExercises counts exercise items that were not objects.
	SkippedExercises int                 `json:"skippedExercises"`
	Warning          *PartialPlanWarning `json:"warning,omitempty"`
}

// Normalize turns the AI response payload (days as an array) into the keyed
// plan shape. Malformed day entries are skipped, since the model output is
// not guaranteed to be structurally perfect. Normalize has no side effects.
func Normalize(payload []byte) (*Result, error) {
	if !gjson.ValidBytes(payload) {
		return nil, &SchemaError{Reason: "response is not valid JSON"}
	}

	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return nil, &SchemaError{Reason: "response is not a JSON object"}
	}

	goals := root.Get("nutritionGoals")
	if !goals.IsObject() {
		return nil, &SchemaError{Reason: "nutritionGoals missing"}
	}

	days := root.Get("workoutPlan")
	if !days.IsArray() {
		return nil, &SchemaError{Reason: "workoutPlan is not a list"}
	}

	res := &Result{
		NutritionGoals: normalizeGoals(goals),
	}
	for _, day := range days.Array() {
		name := day.Get("dayName")
		label := strings.TrimSpace(name.String())
		exercises := day.Get("exercises")
		if !truthy(name) || label == "" || !exercises.IsArray() {
			res.Skipped++
			continue
		}
		normalized, dropped := normalizeExercises(exercises)
		res.SkippedExercises += dropped
		res.Plan.Set(label, normalized)
	}

	n := res.Plan.Len()
	if n == 0 {
		return nil, ErrEmptyPlan
	}
	if n < diary.CanonicalPlanDays || res.SkippedExercises > 0 {
		res.Warning = &PartialPlanWarning{
			Days:             n,
			Expected:         diary.CanonicalPlanDays,
			SkippedExercises: res.SkippedExercises,
		}
	}

	return res, nil
}

// normalizeExercises keeps the order of the object items and reports how
// many other items were dropped.
func normalizeExercises(list gjson.Result) (exercises []diary.Exercise, dropped int) {
	exercises = make([]diary.Exercise, 0, len(list.Array()))
	for _, ex := range list.Array() {
		if !ex.IsObject() {
			dropped++
			continue
		}
		sets := int(ex.Get("series").Int())
		if sets < 1 {
			sets = 1
		}
		exercises = append(exercises, diary.Exercise{
			Name:       strings.TrimSpace(ex.Get("exercicio").String()),
			TargetSets: sets,
			TargetReps: strings.TrimSpace(ex.Get("reps").String()),
		})
	}
	return exercises, dropped
}

func normalizeGoals(goals gjson.Result) diary.NutritionGoals {
	return diary.NutritionGoals{
		Calories:     goalValue(goals, "calories", "calorias"),
		ProteinGrams: goalValue(goals, "proteinGrams", "proteinas"),
		CarbGrams:    goalValue(goals, "carbGrams", "carboidratos"),
		FatGrams:     goalValue(goals, "fatGrams", "gorduras"),
	}
}

// goalValue reads the first present key; negative or non-numeric values are 0.
func goalValue(goals gjson.Result, keys ...string) float64 {
	for _, key := range keys {
		v := goals.Get(key)
		if !v.Exists() {
			continue
		}
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return 0
		}
		return f
	}
	return 0
}

// truthy mirrors what a dynamic language would treat as a present value.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case gjson.String:
		return v.Str != ""
	default:
		return v.Exists()
	}
}
