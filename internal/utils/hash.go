package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatchedHashAndPassword is returned by ComparePasswordAndHash when
// the supplied secret does not match the stored digest.
var ErrMismatchedHashAndPassword = errors.New("password does not match stored hash")

// HashPassword derives a bcrypt digest from the given raw secret using the
// supplied cost factor. Costs outside the valid bcrypt range fall back to
// the library default. The raw secret is never stored; only the digest is.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// ComparePasswordAndHash verifies the given cleartext secret against a
// stored bcrypt digest. bcrypt is a deliberately slow, salted comparison;
// a plain equality check is never used for secrets.
func ComparePasswordAndHash(password, digest string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
