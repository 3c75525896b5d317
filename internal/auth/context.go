package auth

import (
	"context"
	"net/http"
	"strings"
)

type identityCtxKey struct{}

const TokenHeader = "X-DIARY-TOKEN"

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*Identity)
	return identity, ok && identity != nil
}

// TokenFromRequest reads the session token from the Authorization bearer
// header, the token header, or (for websocket upgrades) the token query param.
func TokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	if token := r.Header.Get(TokenHeader); token != "" {
		return token
	}
	return r.URL.Query().Get("token")
}
