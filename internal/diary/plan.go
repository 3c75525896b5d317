package diary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type PlanDay struct {
	Label     string     `json:"label"`
	Exercises []Exercise `json:"exercises"`
}

// WorkoutPlan maps a day label to its ordered exercises. Label order is
// kept as inserted, and the JSON form is an object whose keys follow that order.
// The zero value is an empty plan.
type WorkoutPlan struct {
	days []PlanDay
}

func NewWorkoutPlan(days ...PlanDay) WorkoutPlan {
	var p WorkoutPlan
	for _, d := range days {
		p.Set(d.Label, d.Exercises)
	}
	return p
}

func (p WorkoutPlan) Len() int {
	return len(p.days)
}

func (p WorkoutPlan) Labels() []string {
	labels := make([]string, 0, len(p.days))
	for _, d := range p.days {
		labels = append(labels, d.Label)
	}
	return labels
}

// Days returns a copy of the plan days in order.
func (p WorkoutPlan) Days() []PlanDay {
	return p.Clone().days
}

// Day returns a copy of the exercises planned for label.
func (p WorkoutPlan) Day(label string) ([]Exercise, bool) {
	i := p.index(label)
	if i < 0 {
		return nil, false
	}
	return cloneExercises(p.days[i].Exercises), true
}

// Set assigns exercises to label. An existing label keeps its position.
func (p *WorkoutPlan) Set(label string, exercises []Exercise) {
	exercises = cloneExercises(exercises)
	if i := p.index(label); i >= 0 {
		p.days[i].Exercises = exercises
		return
	}
	p.days = append(p.days, PlanDay{Label: label, Exercises: exercises})
}

func (p WorkoutPlan) Clone() WorkoutPlan {
	if len(p.days) == 0 {
		return WorkoutPlan{}
	}
	days := make([]PlanDay, len(p.days))
	for i, d := range p.days {
		days[i] = PlanDay{
			Label:     d.Label,
			Exercises: cloneExercises(d.Exercises),
		}
	}
	return WorkoutPlan{days: days}
}

func (p WorkoutPlan) index(label string) int {
	for i, d := range p.days {
		if d.Label == label {
			return i
		}
	}
	return -1
}

func cloneExercises(exercises []Exercise) []Exercise {
	if exercises == nil {
		return []Exercise{}
	}
	return append(make([]Exercise, 0, len(exercises)), exercises...)
}

func (p WorkoutPlan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range p.days {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(d.Label)
		if err != nil {
			return nil, err
		}
		exercises, err := json.Marshal(cloneExercises(d.Exercises))
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		buf.Write(exercises)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *WorkoutPlan) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("workout plan: %w", err)
	}
	if tok == nil {
		*p = WorkoutPlan{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("workout plan: expected a JSON object")
	}

	var plan WorkoutPlan
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("workout plan: %w", err)
		}
		label, ok := keyTok.(string)
		if !ok {
			return errors.New("workout plan: expected a day label")
		}
		var exercises []Exercise
		if err := dec.Decode(&exercises); err != nil {
			return fmt.Errorf("workout plan day %q: %w", label, err)
		}
		plan.Set(label, exercises)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("workout plan: %w", err)
	}

	*p = plan
	return nil
}
