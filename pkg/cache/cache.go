// Package cache provides keyed byte caching for derived artifacts.
//
// gridview uses it for rendered topology outputs (SVG, PNG, DOT) keyed by
// a content hash of the view state. Node positions themselves are never
// cached here: layout is session state, not a derived artifact.
//
// Three backends are provided: an in-memory cache, a Redis cache for
// shared deployments, and a null cache that disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores byte blobs under string keys with per-entry TTLs.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}
