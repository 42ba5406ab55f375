package auth

import (
	"context"

	"github.com/yigit/lmsadmin/internal/app/models"
)

// Source tells how a principal was authenticated
type Source string

const (
	SourceBearer  Source = "bearer"
	SourceSession Source = "session"
)

// Principal is the authenticated caller of a request
type Principal struct {
	UserID int64
	Email  string
	Role   models.RoleType
	Source Source

	// TokenID is the jti of a bearer token or the id of a session; with TokenExpiry
	// it is what logout writes to the RevocationStore
	TokenID     string
	TokenExpiry int64
}

// HasRole reports whether the principal holds one of roles
func (p Principal) HasRole(roles ...models.RoleType) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal stores p on ctx
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored on ctx
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
