// Package cache keeps the anchored patterns built for literal matches.
//
// Collection.Is matches a plain value by building the pattern ^value$ with
// every metacharacter quoted. Queries tend to repeat the same handful of
// literals, so the compiled patterns are kept in a bounded LRU keyed on the
// literal text itself.
//
// # Example
//
//	c := cache.New(128)
//	re := c.Pattern("J.hn")
//	re.MatchString("John") // false
//	re.MatchString("J.hn") // true
package cache

import (
	"container/list"
	"regexp"
	"sync"
	"sync/atomic"
)

// DefaultCapacity is used when New receives a non-positive capacity.
const DefaultCapacity = 256

type entry struct {
	literal string
	re      *regexp.Regexp
}

// Cache maps literals to their anchored patterns. Once capacity is reached,
// the least recently used literal is dropped.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
	hits     atomic.Uint64
	misses   atomic.Uint64
}

// New creates a cache holding at most capacity literals.
// If capacity <= 0, DefaultCapacity is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Anchored returns the pattern source matching exactly literal.
func Anchored(literal string) string {
	return `^` + regexp.QuoteMeta(literal) + `$`
}

// Pattern returns the compiled anchored pattern for literal, building and
// storing it on first use.
func (c *Cache) Pattern(literal string) *regexp.Regexp {
	c.mu.RLock()
	el, ok := c.items[literal]
	front := ok && c.ll.Front() == el
	c.mu.RUnlock()

	if ok && front {
		c.hits.Add(1)
		return el.Value.(*entry).re
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have inserted or evicted it meanwhile.
	if el, ok := c.items[literal]; ok {
		c.hits.Add(1)
		c.ll.MoveToFront(el)
		return el.Value.(*entry).re
	}

	c.misses.Add(1)
	// QuoteMeta output always compiles.
	re := regexp.MustCompile(Anchored(literal))
	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}
	c.items[literal] = c.ll.PushFront(&entry{literal: literal, re: re})
	return re
}

// Contains reports whether literal is cached, without touching its recency.
func (c *Cache) Contains(literal string) bool {
	c.mu.RLock()
	_, ok := c.items[literal]
	c.mu.RUnlock()
	return ok
}

// Stats returns how many Pattern calls were served from the cache and how
// many had to compile.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached literals.
func (c *Cache) Len() int {
	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()
	return n
}

// Capacity returns the maximum number of cached literals.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Clear drops every literal and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[string]*list.Element, c.capacity)
	c.hits.Store(0)
	c.misses.Store(0)
}

// evictLocked drops the least recently used literal.
// Must be called with c.mu held for writing.
func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).literal)
}
