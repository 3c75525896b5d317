package view

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/2beens/trainingdiary/internal/auth"
	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/plan"
	"github.com/2beens/trainingdiary/internal/respond"
	"github.com/2beens/trainingdiary/pkg"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{
		registry: registry,
	}
}

func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*Controller, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, "load app", auth.ErrNotLoggedIn)
		return nil, false
	}
	return h.registry.For(auth.TokenFromRequest(r), identity.UserID), true
}

func (h *Handler) HandleRender(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, c.Render(r.Context()), http.StatusOK)
}

func (h *Handler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	c.Navigate(mux.Vars(r)["screen"])
	pkg.WriteJSON(w, c.Render(r.Context()), http.StatusOK)
}

func (h *Handler) HandleSetDraft(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	var draft diary.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid settings draft", http.StatusBadRequest)
		return
	}

	c.SetDraft(draft)
	pkg.WriteJSON(w, c.Render(r.Context()), http.StatusOK)
}

// HandleSaveDraft answers with the rendered view either way, with the error
// status when the save failed.
func (h *Handler) HandleSaveDraft(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	status := http.StatusOK
	if err := c.SaveDraft(r.Context()); err != nil {
		status, _ = respond.Status("save settings", err)
	}
	pkg.WriteJSON(w, c.Render(r.Context()), status)
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	var req plan.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid generate request", http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	if _, err := c.Generate(r.Context(), req); err != nil {
		status, _ = respond.Status("generate plan", err)
	}
	pkg.WriteJSON(w, c.Render(r.Context()), status)
}
