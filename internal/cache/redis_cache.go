package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces keys so several services can share one instance.
	KeyPrefix string
}

// RedisCache stores JSON-encoded values in redis.
type RedisCache[V any] struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a redis-backed cache.
func NewRedisCache[V any](opts *RedisOptions) *RedisCache[V] {
	if opts == nil {
		opts = &RedisOptions{Addr: "localhost:6379"}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &RedisCache[V]{client: client, prefix: opts.KeyPrefix}
}

// NewRedisCacheWithClient wraps an existing client; tests use this with
// miniredis.
func NewRedisCacheWithClient[V any](client *redis.Client, prefix string) *RedisCache[V] {
	return &RedisCache[V]{client: client, prefix: prefix}
}

func (rc *RedisCache[V]) key(key string) string {
	if rc.prefix == "" {
		return key
	}
	return rc.prefix + ":" + key
}

func (rc *RedisCache[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	raw, err := rc.client.Get(ctx, rc.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrCacheMiss
	}
	if err != nil {
		return zero, fmt.Errorf("redis get %q: %w", key, err)
	}

	var value V
	if err := json.Unmarshal(raw, &value); err != nil {
		return zero, fmt.Errorf("decode cached value for %q: %w", key, err)
	}
	return value, nil
}

func (rc *RedisCache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}
	if err := rc.client.Set(ctx, rc.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (rc *RedisCache[V]) Delete(ctx context.Context, key string) error {
	if err := rc.client.Del(ctx, rc.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (rc *RedisCache[V]) Close() error {
	return rc.client.Close()
}
