package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	IdentityKey contextKey = "identity"
)

// Identity is the live snapshot of the caller, re-read from the user store
// on every authenticated request.
type Identity struct {
	UserID     uuid.UUID
	Email      string
	Name       string
	Role       string
	IsVerified bool
	IsApproved bool
	IsAdmin    bool
}

func SetIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

func (i *Identity) IsAdministrator() bool {
	return i.Role == "admin" || i.IsAdmin
}
