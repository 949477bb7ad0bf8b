package cache

import (
	"context"
	"time"
)

// Noop is a Cache that stores nothing. Used when no Redis is configured.
type Noop struct{}

// Set does nothing.
func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

// Get always misses.
func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

// Delete does nothing.
func (Noop) Delete(context.Context, string) error { return nil }

// Version is always 0.
func (Noop) Version(context.Context, string) (int64, error) { return 0, nil }

// Bump does nothing.
func (Noop) Bump(context.Context, string) (int64, error) { return 0, nil }
