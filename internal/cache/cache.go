// Package cache provides a small generic cache with in-memory and redis
// backends. The query facade uses it to serve hot odds snapshots without
// touching the market locks on every request.
package cache

import (
	"context"
	"errors"
	"time"
)

const (
	RedisBackend  = "redis"
	MemoryBackend = "memory"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the generic cache interface.
type Cache[V any] interface {
	// Get returns the value or ErrCacheMiss.
	Get(ctx context.Context, key string) (V, error)
	// Set stores value under key with TTL. Zero ttl = no expiration.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Delete removes the key.
	Delete(ctx context.Context, key string) error
}

// New constructs a cache for the named backend.
func New[V any](backend string, redisOpts *RedisOptions) Cache[V] {
	switch backend {
	case RedisBackend:
		return NewRedisCache[V](redisOpts)
	case MemoryBackend:
		return NewMemoryCache[V]()
	default:
		panic("cache: unknown backend " + backend)
	}
}
