package identity_test

import (
	"testing"

	"github.com/goliatone/go-errors"
	identity "github.com/goliatone/go-identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      *errors.Error
		category errors.Category
		textCode string
	}{
		{
			name:     "invalid credentials input",
			err:      identity.ErrInvalidCredentialsInput,
			category: errors.CategoryValidation,
			textCode: identity.TextCodeInvalidCredsInput,
		},
		{
			name:     "login not registered",
			err:      identity.ErrLoginNotRegistered,
			category: errors.CategoryAuth,
			textCode: identity.TextCodeLoginNotRegistered,
		},
		{
			name:     "empty secret",
			err:      identity.ErrNoEmptySecret,
			category: errors.CategoryValidation,
			textCode: identity.TextCodeEmptySecret,
		},
		{
			name:     "invalid signing config",
			err:      identity.ErrInvalidSigningConfig,
			category: errors.CategoryValidation,
			textCode: identity.TextCodeConfigInvalid,
		},
		{
			name:     "user not registered",
			err:      identity.ErrUserNotRegistered,
			category: errors.CategoryNotFound,
			textCode: identity.TextCodeUserNotRegistered,
		},
		{
			name:     "token expired",
			err:      identity.ErrTokenExpired,
			category: errors.CategoryAuth,
			textCode: identity.TextCodeTokenExpired,
		},
		{
			name:     "token malformed",
			err:      identity.ErrTokenMalformed,
			category: errors.CategoryAuth,
			textCode: identity.TextCodeTokenMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.textCode, tt.err.TextCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestLoginNotRegisteredHidesTheCause(t *testing.T) {
	// the message must not reveal whether the login exists
	assert.NotContains(t, identity.ErrLoginNotRegistered.Message, "login not found")
	assert.NotContains(t, identity.ErrLoginNotRegistered.Message, "password mismatch")
	assert.Equal(t, "invalid login or password", identity.ErrLoginNotRegistered.Message)
}

func TestErrorWrappingPreservesIdentity(t *testing.T) {
	wrapped := errors.Wrap(identity.ErrUserNotRegistered, errors.CategoryInternal, "loading account page")

	assert.True(t, errors.Is(wrapped, identity.ErrUserNotRegistered))

	var richErr *errors.Error
	require.True(t, errors.As(wrapped, &richErr))
}
