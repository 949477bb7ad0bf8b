package thumbnail

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"testing"

	apperrors "rateit/internal/errors"
	"rateit/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localPath(t *testing.T, s *storage.LocalStorage, key string) string {
	t.Helper()
	p, err := s.Path(key)
	require.NoError(t, err)
	return p
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"png image", "assets/reviews/abc/image1.png", "assets/reviews/abc/thumbs/image1.jpg"},
		{"jpeg image", "assets/reviews/abc/image2.jpeg", "assets/reviews/abc/thumbs/image2.jpg"},
		{"no extension", "assets/reviews/abc/image3", "assets/reviews/abc/thumbs/image3.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KeyFor(tt.key))
		})
	}
}

func TestResizer_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("scales large image into bounds", func(t *testing.T) {
		local := storage.NewLocalStorage(t.TempDir())
		require.NoError(t, local.PutObject(ctx, "assets/reviews/r1/image1.png", bytes.NewReader(pngBytes(t, 1200, 600)), "image/png"))

		r := NewResizer(local)
		err := r.Generate(ctx, "assets/reviews/r1/image1.png", "assets/reviews/r1/thumbs/image1.jpg")
		require.NoError(t, err)

		f, err := os.Open(localPath(t, local, "assets/reviews/r1/thumbs/image1.jpg"))
		require.NoError(t, err)
		defer f.Close()

		cfg, err := jpeg.DecodeConfig(f)
		require.NoError(t, err)
		assert.Equal(t, 300, cfg.Width)
		assert.Equal(t, 150, cfg.Height)
	})

	t.Run("keeps small image size", func(t *testing.T) {
		local := storage.NewLocalStorage(t.TempDir())
		require.NoError(t, local.PutObject(ctx, "a/small.png", bytes.NewReader(pngBytes(t, 40, 20)), "image/png"))

		require.NoError(t, NewResizer(local).Generate(ctx, "a/small.png", "a/thumbs/small.jpg"))

		f, err := os.Open(localPath(t, local, "a/thumbs/small.jpg"))
		require.NoError(t, err)
		defer f.Close()

		cfg, err := jpeg.DecodeConfig(f)
		require.NoError(t, err)
		assert.Equal(t, 40, cfg.Width)
		assert.Equal(t, 20, cfg.Height)
	})

	t.Run("missing source", func(t *testing.T) {
		local := storage.NewLocalStorage(t.TempDir())

		err := NewResizer(local).Generate(ctx, "a/missing.png", "a/thumbs/missing.jpg")
		assert.ErrorIs(t, err, apperrors.ErrObjectNotFound)
	})

	t.Run("not an image", func(t *testing.T) {
		local := storage.NewLocalStorage(t.TempDir())
		require.NoError(t, local.PutObject(ctx, "a/clip.mp4", bytes.NewReader([]byte("not an image")), "video/mp4"))

		err := NewResizer(local).Generate(ctx, "a/clip.mp4", "a/thumbs/clip.jpg")
		assert.Error(t, err)
		_, statErr := os.Stat(localPath(t, local, "a/thumbs/clip.jpg"))
		assert.True(t, os.IsNotExist(statErr))
	})
}
