package storage

import (
	"context"
	"io"
	"time"
)

// Storage defines the interface for media object storage.
// Keys are slash-separated paths relative to the storage root, e.g. assets/reviews/<id>/image1.jpg.
type Storage interface {
	// PutObject uploads an object, replacing any existing one under key.
	PutObject(ctx context.Context, key string, body io.Reader, contentType string) error
	// GetObject opens an object for reading. Returns ErrObjectNotFound if absent.
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
}

// Presigner is implemented by storages that can hand out direct download URLs.
type Presigner interface {
	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Ensure implementations satisfy the interfaces
var (
	_ Storage   = (*LocalStorage)(nil)
	_ Storage   = (*S3Client)(nil)
	_ Presigner = (*S3Client)(nil)
)
