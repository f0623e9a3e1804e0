package identity_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-errors"
	identity "github.com/goliatone/go-identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *identity.Directory {
	t.Helper()

	db := newTestDB(t)
	return identity.NewDirectory(identity.NewRepositoryManager(db))
}

func TestDirectoryQuery(t *testing.T) {
	directory := newTestDirectory(t)
	ctx := context.Background()

	for _, s := range defaultSeeds() {
		record := &identity.User{Name: s.name, Email: s.email, IsActive: !s.inactive}
		if s.login != "" {
			record.Credential = &identity.Credential{Login: s.login, Profile: s.profile}
		}
		_, err := directory.Save(ctx, record, s.password)
		require.NoError(t, err)
	}

	t.Run("pages carry the total count of all matches", func(t *testing.T) {
		page, err := directory.Query(ctx, &identity.UserFilter{Page: 1, PageSize: 2})
		require.NoError(t, err)

		assert.Len(t, page.Items, 2)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 2, page.PageSize)
		assert.Equal(t, 4, page.Total)
	})

	t.Run("nil filters fall back to defaults", func(t *testing.T) {
		page, err := directory.Query(ctx, nil)
		require.NoError(t, err)

		assert.Equal(t, identity.DefaultPage, page.Page)
		assert.Equal(t, identity.DefaultPageSize, page.PageSize)
		assert.Len(t, page.Items, 4)
	})

	t.Run("filters narrow the page and the total together", func(t *testing.T) {
		page, err := directory.Query(ctx, &identity.UserFilter{Email: "acme.io"})
		require.NoError(t, err)

		assert.Len(t, page.Items, 2)
		assert.Equal(t, 2, page.Total)
	})
}

func TestDirectorySave(t *testing.T) {
	directory := newTestDirectory(t)
	ctx := context.Background()

	t.Run("registers a new user hashing the password", func(t *testing.T) {
		saved, err := directory.Save(ctx, &identity.User{
			Name:     "Iris West",
			Email:    "iris@example.com",
			IsActive: true,
			Credential: &identity.Credential{
				Login: "iris",
			},
		}, "pw-123456")
		require.NoError(t, err)
		require.NotNil(t, saved.Credential)

		digest, err := identity.HashSecret("pw-123456")
		require.NoError(t, err)
		assert.Equal(t, digest, saved.Credential.PasswordHash)
	})

	t.Run("updates an existing user when the id is set", func(t *testing.T) {
		existing, err := directory.Query(ctx, &identity.UserFilter{Email: "iris@example.com"})
		require.NoError(t, err)
		require.Len(t, existing.Items, 1)

		updated, err := directory.Save(ctx, &identity.User{
			ID:       existing.Items[0].ID,
			Name:     "Iris West-Allen",
			Email:    "iris@example.com",
			IsActive: true,
		}, "")
		require.NoError(t, err)
		assert.Equal(t, "Iris West-Allen", updated.Name)
	})

	t.Run("updates roll back fully when a late write fails", func(t *testing.T) {
		saved, err := directory.Save(ctx, &identity.User{
			Name:     "Kara Danvers",
			Email:    "kara@example.com",
			IsActive: true,
			Credential: &identity.Credential{
				Login: "kara",
			},
		}, "pw-654321")
		require.NoError(t, err)

		_, err = directory.Save(ctx, &identity.User{
			ID:       saved.ID,
			Name:     "Kara Zor-El",
			Email:    "kara@example.com",
			IsActive: true,
			Credential: &identity.Credential{
				Login: "iris",
			},
		}, "")
		require.Error(t, err, "login is already taken")

		stored, err := directory.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kara Danvers", stored.Name)
		require.NotNil(t, stored.Credential)
		assert.Equal(t, "kara", stored.Credential.Login)
	})

	t.Run("rejects a nil record", func(t *testing.T) {
		_, err := directory.Save(ctx, nil, "")
		require.Error(t, err)

		var richErr *errors.Error
		require.True(t, errors.As(err, &richErr))
		assert.Equal(t, errors.CategoryBadInput, richErr.Category)
	})
}

func TestDirectoryRemove(t *testing.T) {
	directory := newTestDirectory(t)
	ctx := context.Background()

	saved, err := directory.Save(ctx, &identity.User{
		Name:     "Jack Ryan",
		Email:    "jack@example.com",
		IsActive: true,
	}, "")
	require.NoError(t, err)

	t.Run("removes an existing user", func(t *testing.T) {
		require.NoError(t, directory.Remove(ctx, saved.ID))

		_, err := directory.GetByID(ctx, saved.ID)
		assert.True(t, errors.Is(err, identity.ErrUserNotRegistered))
	})

	t.Run("unknown ids report not registered", func(t *testing.T) {
		err := directory.Remove(ctx, uuid.New())
		assert.True(t, errors.Is(err, identity.ErrUserNotRegistered))
	})
}
