package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claim set issued by the account subsystem. It extends
// the registered claims (sub, iss, iat, exp) with the admin flag so that
// the authorization gate can evaluate role policy without a store lookup.
type Claims struct {
	jwt.RegisteredClaims

	// IsAdmin mirrors the account's stored isAdmin flag at issue time.
	IsAdmin bool `json:"isAdmin"`
}

// Token wraps a signed JWT together with the identity extracted from its
// verified claim set.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization; only the compact string form is
	// meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// Identity is the caller identity carried by the token claims.
	// Populated after successful verification.
	Identity Identity `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
