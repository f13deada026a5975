package cache

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// expirySuffix names the sidecar file holding an entry's deadline.
const expirySuffix = ".expires"

// FileCache stores rendered images as plain files under a directory,
// one file per key. The payload is written as-is, so every cached board
// is a valid PNG on disk and can be opened directly. An entry's
// lifetime, when bounded, lives in a small sidecar next to it.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a cached image. Entries past their deadline are removed
// and reported as a miss.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	if c.expired(path) {
		c.remove(path)
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores an image. A zero ttl means the entry never expires; any
// other ttl sets a deadline, so a negative ttl stores an entry that is
// already past it and will never be served.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	if ttl == 0 {
		// Unbounded lifetime: drop any deadline left by a previous Set.
		if err := os.Remove(path + expirySuffix); err != nil && !os.IsNotExist(err) {
			return err
		}
	} else {
		stamp := strconv.FormatInt(time.Now().Add(ttl).UnixNano(), 10)
		if err := os.WriteFile(path+expirySuffix, []byte(stamp), 0644); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}

// Delete removes an entry and its deadline.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path := c.path(key)
	if err := os.Remove(path + expirySuffix); err != nil && !os.IsNotExist(err) {
		return err
	}
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// expired reports whether the entry at path is past its deadline. A
// missing sidecar means the entry never expires; an unreadable one
// counts as expired so the entry is re-rendered rather than served with
// an unknown lifetime.
func (c *FileCache) expired(path string) bool {
	raw, err := os.ReadFile(path + expirySuffix)
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		return true
	}
	nanos, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return true
	}
	return time.Now().After(time.Unix(0, nanos))
}

// remove drops an entry and its sidecar, ignoring errors: a removal
// race just means someone else evicted it first.
func (c *FileCache) remove(path string) {
	_ = os.Remove(path)
	_ = os.Remove(path + expirySuffix)
}

// path converts a cache key to a file path, sharding by the first two
// hash characters to keep directories small.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".png")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
