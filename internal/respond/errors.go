package respond

import (
	"context"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/trainingdiary/internal/auth"
	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/docstore"
	"github.com/2beens/trainingdiary/internal/gemini"
	"github.com/2beens/trainingdiary/internal/plan"
)

// Status maps an error to its http status and the message shown to the user.
func Status(action string, err error) (int, string) {
	var validationErr *diary.ValidationError
	var schemaErr *plan.SchemaError
	var apiErr *gemini.APIError
	var writeErr *docstore.WriteError
	var readErr *docstore.ReadError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.Is(err, auth.ErrNotLoggedIn):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, docstore.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.As(err, &schemaErr), errors.Is(err, plan.ErrEmptyPlan):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.As(err, &apiErr), errors.Is(err, gemini.ErrBlocked), errors.Is(err, gemini.ErrEmptyResponse):
		return http.StatusBadGateway, action + " failed: " + err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, action + " timed out, try again"
	case errors.As(err, &writeErr), errors.As(err, &readErr):
		return http.StatusInternalServerError, action + " failed, try again"
	default:
		return http.StatusInternalServerError, action + " failed, try again"
	}
}

// Error writes err as a plain text http error. Server side failures are logged.
func Error(w http.ResponseWriter, action string, err error) {
	status, msg := Status(action, err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %s", action, err)
	} else {
		log.Debugf("%s: %s", action, err)
	}
	http.Error(w, msg, status)
}
