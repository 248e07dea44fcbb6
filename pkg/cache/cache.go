// Package cache stores rendered reports keyed by input and render options.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for tests or --no-cache
//
// # Keys
//
// A [Keyer] derives keys from a hash of the input document ([Hash]) and the
// options that affect the output. [ScopedKeyer] prefixes every key so that
// several tools can share one backend without collisions.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
//
// Get reports a miss with ok false and a nil error. A ttl of zero or less
// stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLs for cached artifacts. Rendering is deterministic, so entries only
// expire to bound disk and memory use.
const (
	TTLReport = 7 * 24 * time.Hour
	TTLDOT    = 7 * 24 * time.Hour
)
