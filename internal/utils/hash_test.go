package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Run("digest verifies against the original secret", func(t *testing.T) {
		digest, err := HashPassword("s3cret", bcrypt.MinCost)
		require.NoError(t, err)

		assert.NotEqual(t, "s3cret", digest)
		assert.NoError(t, ComparePasswordAndHash("s3cret", digest))
	})

	t.Run("same secret hashes to different digests", func(t *testing.T) {
		first, err := HashPassword("s3cret", bcrypt.MinCost)
		require.NoError(t, err)
		second, err := HashPassword("s3cret", bcrypt.MinCost)
		require.NoError(t, err)

		assert.NotEqual(t, first, second, "bcrypt salts every digest")
	})

	t.Run("out-of-range cost falls back to the library default", func(t *testing.T) {
		digest, err := HashPassword("s3cret", bcrypt.MaxCost+1)
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(digest))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, cost)
	})

	t.Run("empty secret is rejected", func(t *testing.T) {
		_, err := HashPassword("", bcrypt.MinCost)
		assert.Error(t, err)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	digest, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("mismatch returns the sentinel error", func(t *testing.T) {
		err := ComparePasswordAndHash("wrong", digest)
		assert.ErrorIs(t, err, ErrMismatchedHashAndPassword)
	})

	t.Run("garbage digest returns a non-sentinel error", func(t *testing.T) {
		err := ComparePasswordAndHash("s3cret", "not-a-bcrypt-digest")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMismatchedHashAndPassword)
	})
}
