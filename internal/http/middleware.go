package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/waypoint-labs/waypoint/internal/domain"
	"github.com/waypoint-labs/waypoint/internal/service"
	"github.com/waypoint-labs/waypoint/pkg/httpx"
	"github.com/waypoint-labs/waypoint/pkg/slogx"
)

// TokenVerifier resolves a raw bearer token to a verified identity.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (domain.Identity, error)
}

// Authn extracts and verifies the bearer token on every request it wraps.
// On success the identity is attached to the request context; downstream
// handlers read it with httpx.UserIDFromContext / httpx.RoleFromContext.
//
// A token whose subject no longer exists is rejected with 404 rather than
// 401: the token itself is cryptographically fine, its user is gone.
func Authn(verifier TokenVerifier) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := httpx.BearerToken(r)
			if !ok {
				ErrMissingToken.Write(w)
				return
			}

			identity, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrExpiredToken):
					ErrExpiredToken.Write(w)
				case errors.Is(err, service.ErrUserNotFound):
					ErrUserNotFound.Write(w)
				case errors.Is(err, service.ErrInvalidToken):
					ErrInvalidToken.Write(w)
				default:
					slogx.FromContext(r.Context()).Error("token verification failed", "error", err)
					ErrServer.Write(w)
				}
				return
			}

			ctx := httpx.ContextWithIdentity(r.Context(), identity.UserID, string(identity.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
