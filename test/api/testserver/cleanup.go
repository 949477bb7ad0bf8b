//go:build api

package testserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// CleanupBetweenTests empties MongoDB, Redis and the media bucket.
// Call it at the start of each test function for isolation.
func (ts *TestServer) CleanupBetweenTests(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	// A thumbnail landing after ClearBucket would leak into the next test.
	require.Eventually(t, func() bool { return ts.ThumbnailsPending() == 0 },
		10*time.Second, 20*time.Millisecond, "thumbnail jobs still running")

	require.NoError(t, ts.MongoDB.CleanupCollections(ctx), "failed to cleanup MongoDB collections")
	require.NoError(t, ts.Redis.FlushDB(ctx), "failed to flush Redis")
	require.NoError(t, ts.MinIO.ClearBucket(ctx), "failed to clear MinIO bucket")
}

// CleanupRedis clears only the response cache.
func (ts *TestServer) CleanupRedis(t *testing.T) {
	t.Helper()
	require.NoError(t, ts.Redis.FlushDB(context.Background()), "failed to flush Redis")
}
