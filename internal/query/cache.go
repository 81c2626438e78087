// Package query caches backend reads for a short time and coalesces
// concurrent identical fetches.
package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a TTL cache keyed by query name. A zero TTL disables storage but
// still coalesces in-flight fetches. generations counts invalidations per
// key; a fetch that started under an older generation does not store.
type Cache struct {
	mu          sync.RWMutex
	entries     map[string]entry
	generations map[string]uint64
	ttl         time.Duration
	group       singleflight.Group
	now         func() time.Time
}

// NewCache creates a cache that keeps results for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries:     make(map[string]entry),
		generations: make(map[string]uint64),
		ttl:         ttl,
		now:         time.Now,
	}
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) generation(key string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[key]
}

// begin records key as fetched and returns its current generation, so that
// InvalidatePrefix can fence fetches for keys not yet stored.
func (c *Cache) begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen, ok := c.generations[key]
	if !ok {
		c.generations[key] = 0
	}
	return gen
}

func (c *Cache) store(key string, value any) {
	c.storeAt(key, c.generation(key), value)
}

// storeAt keeps value only if key has not been invalidated since gen was read.
func (c *Cache) storeAt(key string, gen uint64, value any) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[key] != gen {
		return
	}
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// invalidateLocked drops key and fences off fetches already in flight.
// c.mu must be held.
func (c *Cache) invalidateLocked(key string) {
	delete(c.entries, key)
	c.generations[key]++
	c.group.Forget(key)
}

// Invalidate drops the given keys.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		c.invalidateLocked(key)
	}
}

// InvalidatePrefix drops every key starting with prefix.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.invalidateLocked(key)
		}
	}
	for key := range c.generations {
		if strings.HasPrefix(key, prefix) {
			c.invalidateLocked(key)
		}
	}
}

// Fetch returns the cached value for key or runs fn once for all concurrent
// callers and caches a successful result. Errors are never cached.
//
// The shared fetch runs detached from any single caller's cancellation; each
// caller stops waiting when its own ctx is done.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := c.lookup(key); ok {
		return v.(T), nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		gen := c.begin(key)
		result, err := fn(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.storeAt(key, gen, result)
		return result, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
