// Package cache stores computed layouts and rendered artifacts.
//
// The pipeline caches two kinds of entries, each under a key derived by a
// [Keyer]:
//
//   - layouts: the placements for a word list under a given set of layout
//     options (canvas, fonts, spiral, seed, tuning)
//   - artifacts: rendered bytes for a layout in one format and style
//
// Because placement is deterministic for a fixed seed, a cached layout is
// indistinguishable from a recomputed one.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// All backends implement [Cache]. Values are opaque bytes; TTL of zero means
// no expiry.
package cache

import (
	"context"
	"time"
)

// Default TTLs used by the pipeline.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps it until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
