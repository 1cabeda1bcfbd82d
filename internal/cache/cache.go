package cache

import (
	"sync"
	"time"
)

// KindEvents is the cache kind for event records.
const KindEvents = "events"

// DefaultTTL bounds how long an entry may serve reads without a refetch
// even when it was never explicitly invalidated.
const DefaultTTL = 5 * time.Minute

// Key identifies a cache entry. An empty ID addresses the kind's
// collection entry.
type Key struct {
	Kind string
	ID   string
}

// EntryKey builds the key for a single record.
func EntryKey(kind, id string) Key {
	return Key{Kind: kind, ID: id}
}

// CollectionKey builds the key for a kind's whole collection.
func CollectionKey(kind string) Key {
	return Key{Kind: kind}
}

type entry struct {
	value     any
	fetchedAt time.Time
	stale     bool
}

// Cache is a keyed cache of backend records. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	ttl     time.Duration
}

// New creates an empty cache with DefaultTTL.
func New() *Cache {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL creates an empty cache. A non-positive ttl disables
// time-based staleness; explicit invalidation still applies.
func NewWithTTL(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		ttl:     ttl,
	}
}

// Get returns the cached value for key. A stale or expired entry is a
// miss: its value is retained but not served, forcing a refetch.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.stale {
		return nil, false
	}
	if c.ttl > 0 && time.Since(e.fetchedAt) > c.ttl {
		return nil, false
	}
	return e.value, true
}

// Set stores a freshly fetched value, clearing any staleness.
func (c *Cache) Set(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{
		value:     value,
		fetchedAt: time.Now(),
	}
}

// Invalidate marks every entry of the given kind stale, the collection
// entry included, and returns how many entries were marked. Values stay
// in place; nothing is refetched until the next read.
func (c *Cache) Invalidate(kind string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	marked := 0
	for key, e := range c.entries {
		if key.Kind == kind && !e.stale {
			e.stale = true
			marked++
		}
	}
	return marked
}

// Size returns the number of entries, stale ones included.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CleanExpired drops entries past the TTL and returns how many were removed.
func (c *Cache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl <= 0 {
		return 0
	}
	removed := 0
	now := time.Now()
	for key, e := range c.entries {
		if now.Sub(e.fetchedAt) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
