package usecase

import (
	"sync"
	"time"
)

type cacheEntry[T any] struct {
	value    T
	storedAt time.Time
}

// TTLCache stores the last successful fetch result per key and serves it
// while it is younger than the caller's TTL. When a refresh fails, the last
// known value is served instead, flagged as stale. Last writer wins per key;
// concurrent fetches for the same key are not de-duplicated.
type TTLCache[T any] struct {
	mu      sync.Mutex
	entries map[string]cacheEntry[T]
	timeNow func() time.Time // For testing
}

func NewTTLCache[T any]() *TTLCache[T] {
	return &TTLCache[T]{
		entries: make(map[string]cacheEntry[T]),
		timeNow: time.Now,
	}
}

// Get returns the cached value for key if it is younger than ttl, otherwise
// invokes fetch and stores the result. On fetch failure the previous value is
// returned with stale=true and the fetch error; with no previous value the
// zero value and the error are returned. The lock is released around fetch,
// so a slow fetch never blocks reads of other keys.
func (c *TTLCache[T]) Get(key string, ttl time.Duration, fetch func() (T, error)) (value T, stale bool, err error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.timeNow().Sub(e.storedAt) < ttl {
		c.mu.Unlock()
		return e.value, false, nil
	}
	c.mu.Unlock()

	fresh, err := fetch()
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if e, ok := c.entries[key]; ok {
			return e.value, true, err
		}
		var zero T
		return zero, false, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry[T]{value: fresh, storedAt: c.timeNow()}
	c.mu.Unlock()
	return fresh, false, nil
}

// Len reports the number of stored entries.
func (c *TTLCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
