package http

import (
	"net/http"
	"strings"

	"fitcoach-backend/internal/domain"
	"fitcoach-backend/internal/logger"
	"fitcoach-backend/internal/security"
)

// AuthMiddleware verifies the bearer token and attaches the caller identity
// to the request context. Routes behind it never see an unauthenticated
// request.
func AuthMiddleware(verifier security.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				respondError(w, domain.ErrUnauthenticated)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.Debug("Token verification failed", "error", err)
				respondError(w, domain.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(security.WithIdentity(r.Context(), id)))
		})
	}
}
