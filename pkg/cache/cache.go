// Package cache provides byte-oriented caching of network lookups, with
// file, Redis and no-op backends. It caches HTTP responses from the
// external metadata directories and nothing else; gathered metadata
// itself is never persisted.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache stores raw bytes under string keys with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit;
	// expired or missing entries are a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultDir returns the default on-disk cache location using the XDG
// standard (~/.cache/upmeta, or $XDG_CACHE_HOME/upmeta when set).
func DefaultDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "upmeta"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "upmeta"), nil
}
