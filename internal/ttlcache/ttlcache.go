// Package ttlcache wraps an LRU cache with a fixed time-to-live, the
// shared caching primitive behind the synthesis and indicator caches
// (spec.md §4.C6/C7): same mechanism as the LLM response cache, but kept
// as physically separate cache instances per component.
package ttlcache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type Cache[V any] struct {
	mu  sync.Mutex
	lru *lru.Cache[string, entry[V]]
	ttl time.Duration
}

func New[V any](size int, ttl time.Duration) *Cache[V] {
	l, err := lru.New[string, entry[V]](size)
	if err != nil {
		l, _ = lru.New[string, entry[V]](1)
	}
	return &Cache[V]{lru: l, ttl: ttl}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(key, entry[V]{value: value, expiresAt: time.Now().Add(c.ttl)})
}
