// Package thumbnail produces scaled-down JPEG previews of uploaded images.
package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"path"
	"strings"

	"rateit/internal/storage"

	"github.com/nfnt/resize"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks rateit/internal/thumbnail Service

const (
	// MaxWidth and MaxHeight bound the generated thumbnail, preserving aspect ratio.
	MaxWidth  = 300
	MaxHeight = 300
	// Quality is the JPEG quality of generated thumbnails.
	Quality = 80
)

// Service defines the interface for thumbnail generation.
type Service interface {
	// Generate reads the image stored at srcKey and writes its thumbnail to dstKey.
	Generate(ctx context.Context, srcKey, dstKey string) error
}

// Resizer generates thumbnails with nfnt/resize on top of a media storage.
type Resizer struct {
	storage storage.Storage
}

var _ Service = (*Resizer)(nil)

// NewResizer creates a new Resizer.
func NewResizer(s storage.Storage) *Resizer {
	return &Resizer{storage: s}
}

// Generate decodes the source image, scales it to fit MaxWidth x MaxHeight and stores it as JPEG.
func (r *Resizer) Generate(ctx context.Context, srcKey, dstKey string) error {
	rc, err := r.storage.GetObject(ctx, srcKey)
	if err != nil {
		return fmt.Errorf("open source image: %w", err)
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	thumb := resize.Thumbnail(MaxWidth, MaxHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: Quality}); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}

	if err := r.storage.PutObject(ctx, dstKey, &buf, "image/jpeg"); err != nil {
		return fmt.Errorf("store thumbnail: %w", err)
	}
	return nil
}

// KeyFor returns the thumbnail key for a media key:
// assets/reviews/<id>/image1.png -> assets/reviews/<id>/thumbs/image1.jpg
func KeyFor(mediaKey string) string {
	dir, file := path.Split(mediaKey)
	base := strings.TrimSuffix(file, path.Ext(file))
	return dir + "thumbs/" + base + ".jpg"
}
