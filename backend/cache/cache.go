// ABOUTME: Typed in-memory cache with TTL-based expiration
// ABOUTME: Holds loaded catalogs and vSphere inventory; computations are never cached

package cache

import (
	"log/slog"
	"sync"
	"time"
)

const cleanupInterval = time.Minute

type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache is a thread-safe TTL cache keyed by string
type Cache[V any] struct {
	store    sync.Map
	ttl      time.Duration
	stopOnce sync.Once
	done     chan struct{}
}

// New creates a cache whose entries expire after ttl and starts the
// background sweeper. Call Stop to release it.
func New[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go c.sweep(cleanupInterval)
	return c
}

// TTL returns the default expiry applied by Set
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

// Get returns the value for key if present and not expired
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return zero, false
	}

	e := val.(entry[V])
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return zero, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

// Set stores value under key with the default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.store.Store(key, entry[V]{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	})
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

// Clear removes key
func (c *Cache[V]) Clear(key string) {
	c.store.Delete(key)
}

// Len counts live entries
func (c *Cache[V]) Len() int {
	n := 0
	now := time.Now()
	c.store.Range(func(_, val any) bool {
		if !now.After(val.(entry[V]).expiresAt) {
			n++
		}
		return true
	})
	return n
}

// Stop halts the background sweeper. Safe to call more than once.
func (c *Cache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *Cache[V]) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.store.Range(func(key, val any) bool {
				if now.After(val.(entry[V]).expiresAt) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
