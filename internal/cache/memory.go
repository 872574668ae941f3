// Package cache provides the two small caches fronting the provider
// cascade: a TTL-bounded in-process map for hot dashboard data and a
// JSON file cache for slow-changing records like charts and company
// overviews.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Memory is a TTL-bounded in-process cache. The zero TTL means entries
// never expire.
type Memory[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	ttl     time.Duration
}

func NewMemory[T any](ttl time.Duration) *Memory[T] {
	return &Memory[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
	}
}

// Get returns the cached value for key. Expired entries count as
// misses and are dropped.
func (c *Memory[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.ttl > 0 && time.Since(e.storedAt) > c.ttl {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *Memory[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, storedAt: time.Now()}
}

func (c *Memory[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Memory[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
}

func (c *Memory[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
