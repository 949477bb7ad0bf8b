package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Items []string `json:"items"`
}

func TestNewFileBackend(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "Db")

		b, err := NewFileBackend(dir)

		require.NoError(t, err)
		assert.Equal(t, dir, b.Dir())
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestFileBackend_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ErrNotFound for missing document", func(t *testing.T) {
		b, err := NewFileBackend(t.TempDir())
		require.NoError(t, err)

		var doc testDoc
		err = b.Load(ctx, "missing", &doc)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns ErrCorrupt for empty file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.json"), nil, 0o644))
		b, err := NewFileBackend(dir)
		require.NoError(t, err)

		var doc testDoc
		err = b.Load(ctx, "empty", &doc)

		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("returns ErrCorrupt for malformed JSON", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"items": [`), 0o644))
		b, err := NewFileBackend(dir)
		require.NoError(t, err)

		var doc testDoc
		err = b.Load(ctx, "bad", &doc)

		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		b, err := NewFileBackend(t.TempDir())
		require.NoError(t, err)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		var doc testDoc
		err = b.Load(cancelled, "any", &doc)

		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestFileBackend_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips a document", func(t *testing.T) {
		b, err := NewFileBackend(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, b.Save(ctx, "doc", testDoc{Items: []string{"a", "b"}}))

		var doc testDoc
		require.NoError(t, b.Load(ctx, "doc", &doc))
		assert.Equal(t, []string{"a", "b"}, doc.Items)
	})

	t.Run("writes indented JSON to <name>.json", func(t *testing.T) {
		dir := t.TempDir()
		b, err := NewFileBackend(dir)
		require.NoError(t, err)

		require.NoError(t, b.Save(ctx, "saved", map[string][]string{"u1": {"r1"}}))

		data, err := os.ReadFile(filepath.Join(dir, "saved.json"))
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"u1\": [\n    \"r1\"\n  ]\n}", string(data))
	})

	t.Run("replaces previous content and leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		b, err := NewFileBackend(dir)
		require.NoError(t, err)

		require.NoError(t, b.Save(ctx, "doc", testDoc{Items: []string{"old", "older", "oldest"}}))
		require.NoError(t, b.Save(ctx, "doc", testDoc{Items: []string{"new"}}))

		var doc testDoc
		require.NoError(t, b.Load(ctx, "doc", &doc))
		assert.Equal(t, []string{"new"}, doc.Items)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "doc.json", entries[0].Name())
	})

	t.Run("heals a corrupt document", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), []byte("garbage"), 0o644))
		b, err := NewFileBackend(dir)
		require.NoError(t, err)

		require.NoError(t, b.Save(ctx, "doc", testDoc{Items: []string{}}))

		var doc testDoc
		assert.NoError(t, b.Load(ctx, "doc", &doc))
	})
}

func TestFileBackend_Delete(t *testing.T) {
	ctx := context.Background()
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, b.Save(ctx, "doc", testDoc{Items: []string{"a"}}))
	require.NoError(t, b.Delete(ctx, "doc"))

	var doc testDoc
	assert.ErrorIs(t, b.Load(ctx, "doc", &doc), ErrNotFound)

	// Missing documents are not an error
	assert.NoError(t, b.Delete(ctx, "doc"))
}
