// Package store provides whole-document persistence for the JSON stores.
package store

import (
	"context"
	"errors"
)

//go:generate mockgen -destination=mocks/mock_backend.go -package=mocks rateit/internal/store Backend

// ErrNotFound is returned by Load when the document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrCorrupt is returned by Load when the document exists but cannot be decoded.
var ErrCorrupt = errors.New("document is corrupt")

// Backend loads and saves named JSON documents as a whole.
type Backend interface {
	// Load decodes the named document into dest.
	// Returns ErrNotFound if it does not exist and ErrCorrupt if it is empty or malformed.
	Load(ctx context.Context, name string, dest interface{}) error
	// Save replaces the named document with v.
	Save(ctx context.Context, name string, v interface{}) error
	// Delete removes the named document. Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error
}

// Ensure backends implement Backend interface
var (
	_ Backend = (*FileBackend)(nil)
	_ Backend = (*MemoryBackend)(nil)
)
