package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity bounds a MemoryCache built with a non-positive capacity.
const DefaultCapacity = 256

// MemoryCache is an in-memory implementation of the Cache interface.
// It is backed by a thread-safe LRU: once capacity entries are stored,
// each Put of a new key evicts the least recently used entry.
type MemoryCache[V any] struct {
	data *lru.Cache[string, V]
}

// NewMemoryCache creates a new in-memory cache instance.
// The cache is initialized empty and ready for use. A capacity <= 0 falls
// back to DefaultCapacity.
func NewMemoryCache[V any](capacity int) *MemoryCache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	// lru.New only fails on a non-positive size
	data, _ := lru.New[string, V](capacity)
	return &MemoryCache[V]{data: data}
}

// Get retrieves a value from the cache by key and marks it recently used.
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	return c.data.Get(key)
}

// Put stores a key-value pair in the cache.
// If the key already exists, the value is overwritten.
func (c *MemoryCache[V]) Put(key string, value V) {
	c.data.Add(key, value)
}

// Clear removes all entries from the cache.
func (c *MemoryCache[V]) Clear() {
	c.data.Purge()
}

// Size returns the number of entries in the cache.
func (c *MemoryCache[V]) Size() int {
	return c.data.Len()
}
