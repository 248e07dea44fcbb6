package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	rterrors "github.com/matzehuels/rtree/pkg/errors"
)

// RedisCache implements Cache on a Redis server, so that several server
// instances share rendered reports.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis server at url (redis:// or rediss://)
// and pings it, retrying transient failures with [RetryWithBackoff].
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	if err := rterrors.ValidateRedisURL(url); err != nil {
		return nil, err
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, rterrors.Wrap(rterrors.ErrCodeInvalidInput, err, "parse redis URL")
	}

	client := redis.NewClient(opts)
	err = RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, rterrors.Wrap(rterrors.ErrCodeCache, err, "connect to redis")
	}
	return &RedisCache{client: client}, nil
}

// Get retrieves a value from Redis. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in Redis. A ttl of zero or less stores without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
