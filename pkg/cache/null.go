package cache

import (
	"context"
	"time"
)

// NullCache stores nothing, so every lookup misses and rendering always
// runs. Runners fall back to it for --no-cache and when no cache directory
// can be resolved.
type NullCache struct {
	// Reason says why caching is off, for logs. It may be empty.
	Reason string
}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a NullCache that records why caching is disabled.
func NewNullCache(reason string) *NullCache {
	return &NullCache{Reason: reason}
}

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }
