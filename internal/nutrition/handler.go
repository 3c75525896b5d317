package nutrition

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/trainingdiary/internal/auth"
	"github.com/2beens/trainingdiary/internal/history"
	"github.com/2beens/trainingdiary/internal/respond"
	"github.com/2beens/trainingdiary/internal/telemetry/tracing"
	"github.com/2beens/trainingdiary/pkg"
)

type DeleteEntryResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.add")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		respond.Error(w, "add food", auth.ErrNotLoggedIn)
		return
	}

	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid food entry", http.StatusBadRequest)
		return
	}

	entry, err := h.service.Add(ctx, identity.UserID, in)
	if err != nil {
		respond.Error(w, "add food", err)
		return
	}

	pkg.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.delete")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		respond.Error(w, "remove food", auth.ErrNotLoggedIn)
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, identity.UserID, id); err != nil {
		respond.Error(w, "remove food", err)
		return
	}

	log.Debugf("nutrition entry %s removed by %s", id, identity.UserID)
	pkg.WriteJSON(w, DeleteEntryResponse{DeletedID: id}, http.StatusOK)
}

// HandleList returns the flat log, or the per-date totals with ?grouped=true.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.list")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		respond.Error(w, "list food", auth.ErrNotLoggedIn)
		return
	}

	entries, err := h.service.List(ctx, identity.UserID)
	if err != nil {
		respond.Error(w, "list food", err)
		return
	}

	if r.URL.Query().Get("grouped") == "true" {
		pkg.WriteJSON(w, history.NutritionHistory(entries), http.StatusOK)
		return
	}
	pkg.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.today")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		respond.Error(w, "nutrition summary", auth.ErrNotLoggedIn)
		return
	}

	summary, err := h.service.Today(ctx, identity.UserID)
	if err != nil {
		respond.Error(w, "nutrition summary", err)
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}
