package auth

import (
	"context"

	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/pkg/contextkeys"
)

// Identity is the authenticated caller. It is passed explicitly to every service operation.
type Identity struct {
	AccountID string
	Role      models.AccountRole
}

// Anonymous is the zero identity.
var Anonymous = Identity{}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

func (i Identity) Owns(accountID string) bool {
	return i.AccountID != "" && i.AccountID == accountID
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextkeys.IdentityContextKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextkeys.IdentityContextKey).(Identity)
	return id, ok
}
