package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryBackend keeps encoded documents in memory. Used by tests and local runs
// that should not touch the filesystem.
type MemoryBackend struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	saves int
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

// Load decodes the named document into dest.
func (b *MemoryBackend) Load(ctx context.Context, name string, dest interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	data, ok := b.docs[name]
	b.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if len(data) == 0 {
		return ErrCorrupt
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return nil
}

// Save encodes v and stores it under name.
func (b *MemoryBackend) Save(ctx context.Context, name string, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[name] = data
	b.saves++
	return nil
}

// Delete removes the named document.
func (b *MemoryBackend) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.docs, name)
	return nil
}

// SetRaw stores raw bytes under name, bypassing encoding. Useful for simulating corrupt files.
func (b *MemoryBackend) SetRaw(name string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[name] = data
}

// Raw returns the stored bytes for name.
func (b *MemoryBackend) Raw(name string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.docs[name]
	return data, ok
}

// Saves returns how many times Save has succeeded.
func (b *MemoryBackend) Saves() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.saves
}
