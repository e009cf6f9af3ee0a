// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, JWT token
// generation and validation, password hashing, and HTTP response writing.
package utils

import (
	"context"

	"github.com/nvalera/storefront-api/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// identityCtxKey is the key under which the verified caller identity is
// stored in the request context. The key is unexported so that only
// [WithIdentity] — called exclusively by the authentication middleware
// after successful token verification — can attach an identity.
var identityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying the verified caller identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// GetIdentityFromContext retrieves the verified caller identity from the
// context.
//
// Returns the identity and an ok flag:
//   - ok == true  — an identity was attached by the authentication middleware
//   - ok == false — the request was never verified
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey).(models.Identity)
	return identity, ok
}
