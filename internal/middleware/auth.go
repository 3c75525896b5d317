package middleware

import (
	"context"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/trainingdiary/internal/auth"
	"github.com/2beens/trainingdiary/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type identifier interface {
	Identify(ctx context.Context, token string) (*auth.Identity, error)
}

type AuthMiddlewareHandler struct {
	identifier   identifier
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(identifier identifier) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		identifier: identifier,
		allowedPaths: map[string]bool{
			"/":        true,
			"/version": true,
			"/myip":    true,

			"/auth/signup":  true,
			"/auth/signin":  true,
			"/auth/signout": true,
			"/auth/state":   true,
		},
	}
}

// AuthCheck resolves the session token into an identity and puts it into the
// request context. Requests to protected paths without a valid session get 401.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token := auth.TokenFromRequest(r)
			if token == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "not logged in", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			identity, err := h.identifier.Identify(ctx, token)
			if errors.Is(err, auth.ErrNotLoggedIn) {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "not logged in", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-logged")
				return
			}
			if err != nil {
				log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
				http.Error(w, "session check failed", http.StatusInternalServerError)
				span.SetStatus(codes.Error, "check-logged-err")
				span.RecordError(err)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}
