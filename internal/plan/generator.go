package plan

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=generator_mocks_test.go -package=plan_test

type contentGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema map[string]any) (string, error)
}

// GenerateRequest carries the user's inputs for an AI-assisted plan.
type GenerateRequest struct {
	Goal       string `json:"goal"`
	Experience string `json:"experience"`
	Notes      string `json:"notes"`
}

// ResponseSchema is the structured-output schema sent with every prompt.
// Exercise fields use the keys the normalizer reads.
var ResponseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"nutritionGoals": map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				"calories":     map[string]any{"type": "NUMBER"},
				"proteinGrams": map[string]any{"type": "NUMBER"},
				"carbGrams":    map[string]any{"type": "NUMBER"},
				"fatGrams":     map[string]any{"type": "NUMBER"},
			},
			"required": []string{"calories", "proteinGrams", "carbGrams", "fatGrams"},
		},
		"workoutPlan": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"dayName": map[string]any{"type": "STRING"},
					"exercises": map[string]any{
						"type": "ARRAY",
						"items": map[string]any{
							"type": "OBJECT",
							"properties": map[string]any{
								"exercicio": map[string]any{"type": "STRING"},
								"series":    map[string]any{"type": "INTEGER"},
								"reps":      map[string]any{"type": "STRING"},
							},
							"required": []string{"exercicio", "series", "reps"},
						},
					},
				},
				"required": []string{"dayName", "exercises"},
			},
		},
	},
	"required": []string{"nutritionGoals", "workoutPlan"},
}

type Generator struct {
	ai contentGenerator
}

func NewGenerator(ai contentGenerator) *Generator {
	return &Generator{
		ai: ai,
	}
}

// Generate asks the AI service for a plan and normalizes the answer.
// The current profile is only used to enrich the prompt, it is never modified.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest, current *diary.UserProfile) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "plan.generator.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	prompt := BuildPrompt(req, current)
	text, err := g.ai.GenerateJSON(ctx, prompt, ResponseSchema)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	res, err := Normalize([]byte(text))
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("plan.days", res.Plan.Len()))
	span.SetAttributes(attribute.Int("plan.skipped", res.Skipped))
	span.SetAttributes(attribute.Int("plan.skipped_exercises", res.SkippedExercises))
	if res.Skipped > 0 || res.SkippedExercises > 0 {
		log.Warnf("generated plan: skipped %d malformed day entries and %d exercises", res.Skipped, res.SkippedExercises)
	}

	return res, nil
}

func BuildPrompt(req GenerateRequest, current *diary.UserProfile) string {
	var b strings.Builder
	b.WriteString("You are a strength coach and sports nutritionist. ")
	fmt.Fprintf(&b, "Create a %d-day push/pull/legs training split (two cycles, A and B) ", diary.CanonicalPlanDays)
	b.WriteString("and daily nutrition goals for the person described below.\n\n")

	goal := strings.TrimSpace(req.Goal)
	if goal == "" {
		goal = "hypertrophy"
	}
	fmt.Fprintf(&b, "Goal: %s\n", goal)
	if experience := strings.TrimSpace(req.Experience); experience != "" {
		fmt.Fprintf(&b, "Experience level: %s\n", experience)
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", notes)
	}
	if current != nil && current.WorkoutPlan.Len() > 0 {
		fmt.Fprintf(&b, "Current plan days: %s\n", strings.Join(current.WorkoutPlan.Labels(), "; "))
	}

	b.WriteString("\nRules:\n")
	b.WriteString("- workoutPlan is a list of days, each with a unique dayName and its exercises.\n")
	b.WriteString("- every exercise has exercicio (name), series (number of sets, integer >= 1) and reps (a range such as \"8-12\").\n")
	b.WriteString("- nutritionGoals has calories, proteinGrams, carbGrams and fatGrams per day.\n")
	b.WriteString("- answer with JSON only.\n")
	return b.String()
}
