package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt int64 // Unix nanoseconds; zero = never
}

// MemoryCache is a mutex-guarded map with lazy expiry plus a background
// janitor sweeping stale entries.
type MemoryCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	quit    chan struct{}
	once    sync.Once
}

// NewMemoryCache creates a memory cache with a 1s janitor sweep.
func NewMemoryCache[V any]() *MemoryCache[V] {
	return NewMemoryCacheWithInterval[V](time.Second)
}

// NewMemoryCacheWithInterval allows customizing the janitor interval.
func NewMemoryCacheWithInterval[V any](sweep time.Duration) *MemoryCache[V] {
	mc := &MemoryCache[V]{
		entries: make(map[string]entry[V]),
		quit:    make(chan struct{}),
	}
	go mc.janitor(sweep)
	return mc
}

// Stop terminates the janitor goroutine.
func (mc *MemoryCache[V]) Stop() {
	mc.once.Do(func() { close(mc.quit) })
}

func (mc *MemoryCache[V]) Get(_ context.Context, key string) (V, error) {
	var zero V
	now := time.Now().UnixNano()

	mc.mu.RLock()
	e, ok := mc.entries[key]
	mc.mu.RUnlock()

	if !ok {
		return zero, ErrCacheMiss
	}
	if e.expiresAt > 0 && now > e.expiresAt {
		mc.mu.Lock()
		// Re-check under the write lock; another goroutine may have set a
		// fresh value for the same key meanwhile.
		if cur, still := mc.entries[key]; still && cur.expiresAt == e.expiresAt {
			delete(mc.entries, key)
		}
		mc.mu.Unlock()
		return zero, ErrCacheMiss
	}
	return e.value, nil
}

func (mc *MemoryCache[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}
	mc.mu.Lock()
	mc.entries[key] = entry[V]{value: value, expiresAt: exp}
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	delete(mc.entries, key)
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now().UnixNano()
			mc.mu.Lock()
			for k, e := range mc.entries {
				if e.expiresAt > 0 && now > e.expiresAt {
					delete(mc.entries, k)
				}
			}
			mc.mu.Unlock()
		case <-mc.quit:
			return
		}
	}
}
