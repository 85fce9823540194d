package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/traveljournal/journal-server/internal/auth"
	domainerrors "github.com/traveljournal/journal-server/internal/errors"
	"github.com/traveljournal/journal-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// authStateKey is the context key for the caller's authentication state.
const authStateKey ctxKey = "authState"

// authState is what the middleware learned from the Authorization header.
type authState struct {
	principal auth.Principal
	err       error
}

// GetPrincipal returns the caller's principal. Requests without a valid
// token yield the anonymous principal.
func GetPrincipal(ctx context.Context) auth.Principal {
	state, ok := ctx.Value(authStateKey).(authState)
	if !ok {
		return auth.Anonymous()
	}
	return state.principal
}

// RequirePrincipal returns the caller's principal or a 401 error.
// An expired token is reported as such.
func RequirePrincipal(ctx context.Context) (auth.Principal, error) {
	state, ok := ctx.Value(authStateKey).(authState)
	if !ok || !state.principal.Authenticated {
		if ok && domainerrors.Is(state.err, domainerrors.ErrTokenExpired) {
			return auth.Anonymous(), state.err
		}
		return auth.Anonymous(), domainerrors.Unauthorized("Authentication required")
	}
	return state.principal, nil
}

func withAuthState(ctx context.Context, state authState) context.Context {
	return context.WithValue(ctx, authStateKey, state)
}

// authMiddleware validates Bearer tokens and stores the principal in context.
// Missing or invalid tokens continue as anonymous; handlers that need a
// caller use RequirePrincipal.
func authMiddleware(svc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok || svc == nil {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := svc.Authenticate(token)
			ctx := withAuthState(r.Context(), authState{principal: principal, err: err})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
