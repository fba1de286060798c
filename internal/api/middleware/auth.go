package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/folioforge/folioforge/internal/api/response"
	"github.com/folioforge/folioforge/internal/auth"
)

const identityKey contextKey = "identity"

// Auth is middleware that extracts the bearer token from the Authorization
// header and resolves it to an Identity via the verifier. Every failure is
// terminal for the request; a missing signing secret is logged as a server
// fault but still surfaces as a generic 401, never as configuration detail.
func Auth(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			token, err := auth.ExtractToken(r.Header.Get("Authorization"))
			if err != nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", requestID)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrExpiredCredential):
					response.Err(w, http.StatusUnauthorized, "TOKEN_EXPIRED", "Token has expired, please log in again", requestID)
				case errors.Is(err, auth.ErrNotConfigured):
					slog.Error("token verification misconfigured", "error", err, "requestId", requestID)
					response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication failed", requestID)
				default:
					response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token", requestID)
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}

// WithIdentity injects an Identity into the context. Used by tests and
// non-HTTP entry points.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
