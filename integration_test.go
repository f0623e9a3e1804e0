package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-errors"
	identity "github.com/goliatone/go-identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises the whole credential flow against a real database: register,
// authenticate, verify the minted token, and decode it into a session.
func TestCredentialFlowIntegration(t *testing.T) {
	ctx := context.Background()

	db := newTestDB(t)
	manager := identity.NewRepositoryManager(db)
	directory := identity.NewDirectory(manager)

	auther, err := identity.NewAuthenticator(manager.Users(), testTokenConfig())
	require.NoError(t, err)

	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	auther = auther.WithClock(func() time.Time { return now })

	saved, err := directory.Save(ctx, &identity.User{
		Name:     "Lena Oxton",
		Email:    "lena@example.com",
		IsActive: true,
		Credential: &identity.Credential{
			Login:   "lena",
			Profile: identity.ProfileAdmin,
		},
		Notes: &identity.ProfileNotes{
			Interests: "flying",
		},
	}, "cavalry-123")
	require.NoError(t, err)

	resp, err := auther.Authenticate(ctx, "lena", "cavalry-123")
	require.NoError(t, err)

	assert.True(t, resp.Authenticated)
	assert.Equal(t, saved.ID.String(), resp.UserID)
	assert.Equal(t, identity.ProfileAdmin, resp.Profile)
	assert.Equal(t, "2026-06-01 09:00:00", resp.Created)
	assert.Equal(t, "2026-06-02 09:00:00", resp.Expiration)

	claims, err := auther.TokenService().Validate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, saved.ID.String(), claims.UserID)
	assert.Equal(t, claims.UserID, claims.UserHash)
	assert.Equal(t, identity.ProfileAdmin, claims.Role)

	session, err := identity.SessionFromToken(auther.TokenService(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "lena@example.com", session.GetEmail())
	assert.True(t, identity.HasUserUUID(session))

	t.Run("wrong password is rejected after the fact", func(t *testing.T) {
		_, err := auther.Authenticate(ctx, "lena", "cavalry-124")
		assert.True(t, errors.Is(err, identity.ErrLoginNotRegistered))
	})

	t.Run("query surfaces the registered user with relations", func(t *testing.T) {
		page, err := directory.Query(ctx, &identity.UserFilter{Login: "lena"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)

		record := page.Items[0]
		require.NotNil(t, record.Credential)
		assert.Equal(t, "lena", record.Credential.Login)
		require.NotNil(t, record.Notes)
		assert.Equal(t, "flying", record.Notes.Interests)
	})
}
