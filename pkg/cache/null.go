package cache

import (
	"context"
	"time"
)

// NullCache discards every write and misses every read, so each request
// renders fresh. It backs --no-cache runs and keeps callers free of
// nil checks.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always misses.
func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the image.
func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = NullCache{}
