package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emansa3ed/jewelry-store/internal/domain/identity"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

func TestGormUserRepository(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u, err := identity.NewUser("Mona", "mona@example.com", "password1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u))

	t.Run("finds by id", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "mona@example.com", loaded.Email)
	})

	t.Run("finds by email case-insensitively", func(t *testing.T) {
		loaded, err := repo.FindByEmail(ctx, " MONA@example.com ")
		require.NoError(t, err)
		assert.Equal(t, u.ID, loaded.ID)
	})

	t.Run("reports existence by email", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "mona@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_AdminSurface(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	first, err := identity.NewUser("Mona", "mona@example.com", "password1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))
	second, err := identity.NewUser("Omar", "omar@example.com", "password1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	t.Run("lists and counts users", func(t *testing.T) {
		users, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 20, OrderBy: "email", OrderDir: "asc"})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "mona@example.com", users[0].Email)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("deletes a user", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, second.ID))

		_, err := repo.FindByID(ctx, second.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}
