// Package cache stores computed layouts and rendered artifacts.
//
// Entries are opaque byte slices addressed by string keys built by a
// [Keyer]. Three backends implement [Cache]:
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: one file per entry under the user cache directory (CLI)
//   - [RedisCache]: a shared Redis instance (server)
//
// A key is derived from the preset hash, so any change to a preset produces
// new keys and stale entries simply expire.
package cache

import (
	"context"
	"time"
)

// Entry lifetimes.
const (
	LayoutTTL   = 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
	PreviewTTL  = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the value of key. A missing or expired key is a miss,
	// reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
