package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/trainingdiary/internal/auth"
	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/plan"
	"github.com/2beens/trainingdiary/internal/respond"
	"github.com/2beens/trainingdiary/internal/telemetry/metrics"
	"github.com/2beens/trainingdiary/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profile_test

type profileStore interface {
	Get(ctx context.Context, userID string) (*diary.UserProfile, error)
	Save(ctx context.Context, userID string, profile diary.UserProfile) error
}

type planGenerator interface {
	Generate(ctx context.Context, req plan.GenerateRequest, current *diary.UserProfile) (*plan.Result, error)
}

// GenerateResponse is an AI draft. It is never saved by the generate call.
type GenerateResponse struct {
	Profile          diary.UserProfile `json:"profile"`
	Skipped          int               `json:"skipped"`
	SkippedExercises int               `json:"skippedExercises"`
	Warning          string            `json:"warning,omitempty"`
}

func NewGenerateResponse(res *plan.Result) GenerateResponse {
	resp := GenerateResponse{
		Profile: diary.UserProfile{
			WorkoutPlan:    res.Plan,
			NutritionGoals: res.NutritionGoals,
		},
		Skipped:          res.Skipped,
		SkippedExercises: res.SkippedExercises,
	}
	if res.Warning != nil {
		resp.Warning = res.Warning.Message()
	}
	return resp
}

type Handler struct {
	profiles  profileStore
	generator planGenerator
	metrics   *metrics.Manager
}

func NewHandler(profiles profileStore, generator planGenerator, metrics *metrics.Manager) *Handler {
	return &Handler{
		profiles:  profiles,
		generator: generator,
		metrics:   metrics,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, "get profile", auth.ErrNotLoggedIn)
		return
	}

	profile, err := h.profiles.Get(r.Context(), identity.UserID)
	if err != nil {
		respond.Error(w, "get profile", err)
		return
	}

	pkg.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, "save profile", auth.ErrNotLoggedIn)
		return
	}

	var profile diary.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "invalid profile", http.StatusBadRequest)
		return
	}

	if err := h.profiles.Save(r.Context(), identity.UserID, profile); err != nil {
		respond.Error(w, "save profile", err)
		return
	}

	log.Debugf("profile saved for user %s", identity.UserID)
	pkg.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, "generate plan", auth.ErrNotLoggedIn)
		return
	}

	var req plan.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid generate request", http.StatusBadRequest)
		return
	}

	current, err := h.profiles.Get(r.Context(), identity.UserID)
	if err != nil {
		respond.Error(w, "generate plan", err)
		return
	}

	res, err := Generate(r.Context(), h.generator, h.metrics, req, current)
	if err != nil {
		respond.Error(w, "generate plan", err)
		return
	}

	pkg.WriteJSON(w, NewGenerateResponse(res), http.StatusOK)
}

// Generate runs one AI generation and records its outcome.
func Generate(
	ctx context.Context,
	generator planGenerator,
	metricsManager *metrics.Manager,
	req plan.GenerateRequest,
	current *diary.UserProfile,
) (*plan.Result, error) {
	start := time.Now()
	res, err := generator.Generate(ctx, req, current)
	if metricsManager != nil {
		metricsManager.HistPlanGenDuration.Observe(time.Since(start).Seconds())
		outcome := "ok"
		switch {
		case err != nil:
			outcome = "failed"
		case res.Warning != nil:
			outcome = "partial"
		}
		metricsManager.CounterPlanGenerations.WithLabelValues(outcome).Inc()
	}
	return res, err
}
