// Package cache stores pipeline results between runs.
//
// Every backend implements [Cache]: a byte-oriented key/value store with
// per-entry expiry. [NullCache] disables caching, [FileCache] keeps entries
// under a local directory for CLI use, [SQLiteCache] keeps them in one
// database file, and [RedisCache] shares them between server instances.
//
// Keys come from a [Keyer] so that every caller derives the same key for the
// same input. [ScopedKeyer] prefixes keys to give a caller its own namespace.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized pipeline results.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
// Clear returns the number of entries removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Default lifetimes for cached results.
const (
	// TTLDocument bounds how long a fetched document is reused.
	TTLDocument = time.Hour

	// TTLLayout applies to computed layouts. Layouts are keyed by a hash of
	// their input, so they only expire to bound disk usage.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered SVG, PDF and PNG output.
	TTLArtifact = 7 * 24 * time.Hour
)
