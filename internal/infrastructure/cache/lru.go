// Package cache keeps recently used permission decisions in memory.
package cache

import (
	"container/list"
	"sync"
)

// LRU is a fixed-capacity map that evicts the least recently used key.
type LRU[K comparable, V any] struct {
	capacity int
	mu       sync.Mutex
	items    map[K]*list.Element
	order    *list.List // front is most recent
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU returns an empty cache. A capacity below 1 is raised to 1.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		capacity: max(capacity, 1),
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Get returns the value for key and marks it as used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry[K, V]).value, true
}

// Set stores value under key, evicting the oldest key when full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*lruEntry[K, V]).value = value
		c.order.MoveToFront(elem)
		return
	}
	if c.order.Len() >= c.capacity {
		c.removeElement(c.order.Back())
	}
	c.items[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
}

// Remove drops key if present.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

// RemoveFunc drops every key for which match returns true and returns how
// many were dropped.
func (c *LRU[K, V]) RemoveFunc(match func(K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, elem := range c.items {
		if match(key) {
			c.removeElement(elem)
			removed++
		}
	}
	return removed
}

func (c *LRU[K, V]) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*lruEntry[K, V]).key)
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear empties the cache.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.items)
	c.order.Init()
}
