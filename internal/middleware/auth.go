package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/postboard/internal/auth"
	"github.com/hongminglow/postboard/internal/http/respond"
)

// Authenticator proves the identity behind a request.
type Authenticator interface {
	Authenticate(r *http.Request) (auth.Principal, error)
}

// RequireAuth rejects requests without a valid bearer token with 401 before
// next runs. On success the principal is available via auth.PrincipalFrom.
func RequireAuth(gate Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := gate.Authenticate(r)
			if err != nil {
				logger.Warn("authentication failed", "error", err, "method", r.Method, "path", r.URL.Path)
				respond.Error(w, http.StatusUnauthorized, authMessage(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "authorization header required"
	case errors.Is(err, auth.ErrExpiredToken):
		return "token expired"
	default:
		return "invalid token"
	}
}
