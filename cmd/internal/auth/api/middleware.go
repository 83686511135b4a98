package authapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"parley/cmd/security/token"
)

type claimsCtxKey struct{}

// ClaimsFromContext returns the verified session claims placed by
// RequireSession, if any.
func ClaimsFromContext(ctx context.Context) (token.Claims, bool) {
	c, ok := ctx.Value(claimsCtxKey{}).(token.Claims)
	return c, ok
}

// RequireSession wraps next with bearer-token verification.
//
// Missing or forged tokens yield 401 "token_invalid"; expired tokens
// yield 401 "token_expired" so clients can silently re-authenticate
// instead of treating the caller as hostile.
func RequireSession(tokens *token.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			WriteError(w, http.StatusUnauthorized, "token_invalid", "Missing bearer token.")
			return
		}

		claims, err := tokens.Verify(raw, time.Now().UTC())
		if err != nil {
			if errors.Is(err, token.ErrExpiredToken) {
				WriteError(w, http.StatusUnauthorized, "token_expired", "Session expired; sign in again.")
				return
			}
			WriteError(w, http.StatusUnauthorized, "token_invalid", "Invalid session token.")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), claimsCtxKey{}, claims)))
	}
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
