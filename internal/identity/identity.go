// Package identity carries the authenticated principal through request
// contexts. It is deliberately free of dependencies so every module can read
// the current user without importing the auth module.
package identity

import "context"

// Identity describes the verified principal attached to a request.
type Identity struct {
	UserID  int64
	Role    string
	StoreID int64 // 0 means no store selected yet
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// IsAdmin reports whether the principal has the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == "admin"
}
