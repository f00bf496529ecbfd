package auth

import (
	"context"

	"github.com/clefworks/scorebook/internal/catalog/domain"
)

// Identity is the request-scoped authenticated identity the gate attaches
// after a successful walk of the authorization chain. TokenID is the access
// token identifier, kept so logout can revoke the matching session entry.
type Identity struct {
	User    domain.User
	TokenID string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the authenticated identity, if the request
// passed the gate.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
