package identity_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-errors"
	identity "github.com/goliatone/go-identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSecret(t *testing.T) {
	t.Run("produces a lowercase hex digest", func(t *testing.T) {
		digest, err := identity.HashSecret("password123")
		require.NoError(t, err)

		assert.Len(t, digest, 64)
		assert.Equal(t, strings.ToLower(digest), digest)
	})

	t.Run("is deterministic", func(t *testing.T) {
		first, err := identity.HashSecret("correct horse battery staple")
		require.NoError(t, err)

		second, err := identity.HashSecret("correct horse battery staple")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("different inputs produce different digests", func(t *testing.T) {
		first, err := identity.HashSecret("password123")
		require.NoError(t, err)

		second, err := identity.HashSecret("password124")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("known vector", func(t *testing.T) {
		digest, err := identity.HashSecret("admin")
		require.NoError(t, err)
		assert.Equal(t, "8c6976e5b5410415bde908bd4dee15dfb167a9c873fc4bb8a81f6f2ab448a918", digest)
	})

	t.Run("rejects the empty secret", func(t *testing.T) {
		_, err := identity.HashSecret("")
		require.Error(t, err)

		var richErr *errors.Error
		require.True(t, errors.As(err, &richErr))
		assert.Equal(t, errors.CategoryValidation, richErr.Category)
		assert.Equal(t, identity.TextCodeEmptySecret, richErr.TextCode)
	})
}
