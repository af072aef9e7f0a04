// Package cache memoizes formatted timeline strings
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/geopulse/timeline/internal/timeutil"
)

// DefaultCapacity is the number of formatted strings kept when no capacity
// is configured.
const DefaultCapacity = 512

// Key identifies a formatted value. Zone and Locale capture the display
// preferences in effect when the value was produced.
type Key struct {
	SpanID string
	Date   timeutil.Date
	Zone   string
	Locale string
}

// Cache is a bounded store of formatted strings. Reads do not refresh an
// entry, so the oldest insertion is evicted first once capacity is reached.
// A nil Cache is valid and stores nothing. It is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[Key, string]
	zone    string
	locale  string
	mu      sync.Mutex
}

// New returns a cache holding at most capacity values. A capacity of zero
// or less disables caching.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return nil, nil
	}

	entries, err := lru.New[Key, string](capacity)
	if err != nil {
		return nil, err
	}

	return &Cache{entries: entries}, nil
}

// Get returns the value stored under k.
func (c *Cache) Get(k Key) (string, bool) {
	if c == nil {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Peek(k)
}

// Add stores v under k.
func (c *Cache) Add(k Key, v string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Add(k, v)
}

// Reset purges every entry if zone or locale differ from the preferences
// seen on the previous call. It reports whether a purge happened.
func (c *Cache) Reset(zone, locale string) bool {
	if c == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.zone == zone && c.locale == locale {
		return false
	}

	c.zone, c.locale = zone, locale
	c.entries.Purge()

	return true
}

// Len returns the number of stored values.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Len()
}
