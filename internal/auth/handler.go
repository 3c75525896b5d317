package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/trainingdiary/pkg"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func readCredentials(r *http.Request) (*credentials, error) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	creds, err := readCredentials(r)
	if err != nil {
		http.Error(w, "invalid sign up request", http.StatusBadRequest)
		return
	}

	session, err := h.service.SignUp(r.Context(), creds.Email, creds.Password)
	if err != nil {
		writeAuthError(w, "sign up", err)
		return
	}

	pkg.WriteJSON(w, session, http.StatusCreated)
}

func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	creds, err := readCredentials(r)
	if err != nil {
		http.Error(w, "invalid sign in request", http.StatusBadRequest)
		return
	}

	session, err := h.service.SignIn(r.Context(), creds.Email, creds.Password)
	if err != nil {
		writeAuthError(w, "sign in", err)
		return
	}

	pkg.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SignOut(r.Context(), TokenFromRequest(r)); err != nil {
		writeAuthError(w, "sign out", err)
		return
	}
	pkg.WriteTextResponseOK(w, "signed out")
}

type authState struct {
	User *Identity `json:"user"`
}

// HandleState reports the current auth state, a null user when signed out.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	identity, err := h.service.Identify(r.Context(), TokenFromRequest(r))
	if err != nil && !errors.Is(err, ErrNotLoggedIn) {
		log.Errorf("auth state: %s", err)
		http.Error(w, "auth state unavailable", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, authState{User: identity}, http.StatusOK)
}

func writeAuthError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrWeakPassword):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrNotLoggedIn):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		log.Errorf("%s: %s", action, err)
		http.Error(w, action+" failed, try again", http.StatusInternalServerError)
	}
}
