package cache

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mock_cache.go -package=mocks rateit/internal/cache Cache

// Cache defines the interface for caching operations.
type Cache interface {
	// Set stores a value in cache with TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Get retrieves a value from cache. Returns false if key doesn't exist.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	// Delete removes a key from cache.
	Delete(ctx context.Context, key string) error
	// Version returns the counter stored at key, or 0 if it was never bumped.
	Version(ctx context.Context, key string) (int64, error)
	// Bump increments the counter at key and returns the new value.
	Bump(ctx context.Context, key string) (int64, error)
}

// Ensure implementations satisfy the Cache interface
var (
	_ Cache = (*Redis)(nil)
	_ Cache = Noop{}
)
