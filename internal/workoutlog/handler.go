package workoutlog

import (
	"encoding/json"
	"net/http"

	"github.com/2beens/trainingdiary/internal/auth"
	"github.com/2beens/trainingdiary/internal/history"
	"github.com/2beens/trainingdiary/internal/respond"
	"github.com/2beens/trainingdiary/pkg"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, "save workout", auth.ErrNotLoggedIn)
		return
	}

	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "invalid workout submission", http.StatusBadRequest)
		return
	}

	entries, err := h.service.Save(r.Context(), identity.UserID, sub)
	if err != nil {
		respond.Error(w, "save workout", err)
		return
	}

	pkg.WriteJSON(w, entries, http.StatusCreated)
}

// HandleList returns the flat log, or the per-date history with ?grouped=true.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, "list workouts", auth.ErrNotLoggedIn)
		return
	}

	entries, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		respond.Error(w, "list workouts", err)
		return
	}

	if r.URL.Query().Get("grouped") == "true" {
		pkg.WriteJSON(w, history.WorkoutHistory(entries), http.StatusOK)
		return
	}
	pkg.WriteJSON(w, entries, http.StatusOK)
}
