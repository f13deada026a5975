// Package cache provides pluggable byte caches for rendered board images.
//
// Rendering a board is a pure function of position + configuration, so the
// encoded PNG can be cached under a key derived from those inputs. Three
// backends are provided:
//   - FileCache: XDG cache directory storage for CLI usage
//   - RedisCache: shared cache for the HTTP service
//   - NullCache: no-op cache for tests or --no-cache
package cache

import (
	"context"
	"time"
)

// Cache stores and retrieves opaque byte values under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// RenderKey builds a cache key for a rendered board image from the
// position identifier (canonical FEN) and the render parameters that
// affect the output bytes.
func RenderKey(fen string, params ...any) string {
	parts := append([]any{fen}, params...)
	return hashKey("render", parts...)
}
