package cache

import (
	"context"
	"fmt"
)

// List caches are keyed by a version counter. Writers bump the counter, so a
// reader that loaded a snapshot before the write can only fill the old key.

// ReviewsVersionKey holds the version of the full review listing.
const ReviewsVersionKey = "reviews:version"

// ReviewsCacheKey is the cache key for the full review listing at version.
func ReviewsCacheKey(version int64) string {
	return fmt.Sprintf("reviews:all:v%d", version)
}

// SavedVersionKey holds the version of a user's saved list.
func SavedVersionKey(userID string) string {
	return fmt.Sprintf("saved-version:%s", userID)
}

// SavedCacheKey generates a cache key for a user's saved list at version.
func SavedCacheKey(userID string, version int64) string {
	return fmt.Sprintf("saved:%s:v%d", userID, version)
}

// Invalidate bumps the version at versionKey and drops the entry of the
// version it replaced.
func Invalidate(ctx context.Context, c Cache, versionKey string, keyFor func(int64) string) error {
	n, err := c.Bump(ctx, versionKey)
	if err != nil {
		return fmt.Errorf("bump %s: %w", versionKey, err)
	}
	return c.Delete(ctx, keyFor(n-1))
}
