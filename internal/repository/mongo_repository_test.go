package repository

import (
	"context"
	"testing"
	"time"

	apperrors "rateit/internal/errors"
	"rateit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoRepositories(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	ctx := context.Background()

	t.Run("users: seeds demo user into empty collection", func(t *testing.T) {
		tdb.ClearCollection(t, "users")
		repo := NewUserRepository(tdb.Database)

		user, err := repo.FindByName(ctx, "DEMO user")

		require.NoError(t, err)
		assert.Equal(t, "1", user.ID)
		assert.Equal(t, "demo123", user.Password)
	})

	t.Run("users: create, find ignoring case, duplicate rejected", func(t *testing.T) {
		tdb.ClearCollection(t, "users")
		repo := NewUserRepository(tdb.Database)

		user := &models.User{Name: "Alice", Password: "pw", CreatedAt: time.Now().UTC(), LastLogin: time.Now().UTC()}
		require.NoError(t, repo.Create(ctx, user))
		assert.NotEmpty(t, user.ID)

		found, err := repo.FindByName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		err = repo.Create(ctx, &models.User{Name: "ALICE", Password: "other"})
		assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
	})

	t.Run("users: create surfaces a failed name lookup", func(t *testing.T) {
		tdb.ClearCollection(t, "users")
		repo := NewUserRepository(tdb.Database)
		_, err := repo.FindAll(ctx)
		require.NoError(t, err)

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		err = repo.Create(canceled, &models.User{Name: "Bob", Password: "pw"})

		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorContains(t, err, "check existing user")
		assert.NotErrorIs(t, err, apperrors.ErrUserAlreadyExists)
	})

	t.Run("users: update last login", func(t *testing.T) {
		tdb.ClearCollection(t, "users")
		repo := NewUserRepository(tdb.Database)
		_, err := repo.FindAll(ctx)
		require.NoError(t, err)

		at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
		user, err := repo.UpdateLastLogin(ctx, "1", at)
		require.NoError(t, err)
		assert.True(t, at.Equal(user.LastLogin))

		_, err = repo.UpdateLastLogin(ctx, "missing", at)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("reviews: create and list in creation order", func(t *testing.T) {
		tdb.ClearCollection(t, "reviews")
		repo := NewReviewRepository(tdb.Database)

		first := newTestReview("r1")
		second := newTestReview("r2")
		second.CreatedAt = first.CreatedAt.Add(time.Second)
		require.NoError(t, repo.Create(ctx, second))
		require.NoError(t, repo.Create(ctx, first))

		reviews, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, "r1", reviews[0].ID)
		assert.Equal(t, "r2", reviews[1].ID)
	})

	t.Run("saved: toggle round trip", func(t *testing.T) {
		tdb.ClearCollection(t, "saved_lists")
		repo := NewSavedRepository(tdb.Database)

		saved, err := repo.FindByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, saved)

		saved, err = repo.Toggle(ctx, "u1", "r1")
		require.NoError(t, err)
		assert.Equal(t, []string{"r1"}, saved)

		saved, err = repo.Toggle(ctx, "u1", "r2")
		require.NoError(t, err)
		assert.Equal(t, []string{"r1", "r2"}, saved)

		saved, err = repo.Toggle(ctx, "u1", "r1")
		require.NoError(t, err)
		assert.Equal(t, []string{"r2"}, saved)
	})
}
