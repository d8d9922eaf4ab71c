package security

import (
	"context"
	"errors"

	"fitcoach-backend/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified caller attached to a request by the auth
// middleware.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// TokenVerifier turns a bearer token into a caller identity. Production uses
// Firebase ID tokens; development and tests use the HMAC token manager.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type contextKey struct{}

// WithIdentity attaches the verified caller to the request context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext returns the verified caller, or ErrUnauthenticated if
// the request never passed the auth middleware.
func IdentityFromContext(ctx context.Context) (*Identity, error) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	if !ok || id == nil || id.UID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}
