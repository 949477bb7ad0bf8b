package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rateit/internal/models"
	"rateit/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	ctx := context.Background()
	user := models.PublicUser{
		ID:        "1737367200000",
		Name:      "Alice",
		CreatedAt: time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC),
		LastLogin: time.Date(2025, 1, 21, 9, 30, 0, 0, time.UTC),
	}

	t.Run("empty session is logged out", func(t *testing.T) {
		s := NewSession(store.NewMemoryBackend())

		got, err := s.Get(ctx)

		require.NoError(t, err)
		assert.Nil(t, got)
		assert.False(t, s.IsLoggedIn(ctx))
		assert.Empty(t, s.Token(ctx))
	})

	t.Run("set, get, clear", func(t *testing.T) {
		s := NewSession(store.NewMemoryBackend())

		require.NoError(t, s.Set(ctx, user, "tok"))

		got, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, &user, got)
		assert.True(t, s.IsLoggedIn(ctx))
		assert.Equal(t, "tok", s.Token(ctx))

		require.NoError(t, s.Clear(ctx))
		assert.False(t, s.IsLoggedIn(ctx))
		assert.Empty(t, s.Token(ctx))

		// Clearing twice is fine
		assert.NoError(t, s.Clear(ctx))
	})

	t.Run("setting without a token drops the old one", func(t *testing.T) {
		s := NewSession(store.NewMemoryBackend())
		require.NoError(t, s.Set(ctx, user, "old"))

		require.NoError(t, s.Set(ctx, user, ""))

		assert.Empty(t, s.Token(ctx))
		assert.True(t, s.IsLoggedIn(ctx))
	})

	t.Run("corrupt record counts as logged out", func(t *testing.T) {
		backend := store.NewMemoryBackend()
		backend.SetRaw(UserKey, []byte("{not json"))
		s := NewSession(backend)

		got, err := s.Get(ctx)

		require.NoError(t, err)
		assert.Nil(t, got)
		assert.False(t, s.IsLoggedIn(ctx))
	})

	t.Run("file-backed session persists without a password", func(t *testing.T) {
		dir := t.TempDir()
		s, err := OpenSession(dir)
		require.NoError(t, err)
		require.NoError(t, s.Set(ctx, user, "tok"))

		data, err := os.ReadFile(filepath.Join(dir, UserKey+".json"))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "password")

		reopened, err := OpenSession(dir)
		require.NoError(t, err)
		got, err := reopened.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, &user, got)
		assert.Equal(t, "tok", reopened.Token(ctx))
	})
}
