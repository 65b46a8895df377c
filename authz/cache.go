// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package authz

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Key identifies one cached decision: a specific actor checking a specific action against a
// specific resource. All three fields participate in cache identity because the same
// resource can be Granted for one actor/action pair and Denied for another.
type Key struct {
	Actor    string
	Action   string
	Resource string
}

// Cache is a sticky actor/action/resource -> Access map. Entries persist for the lifetime of
// the process (or until Invalidate/InvalidateAll is called); there is no TTL-based eviction,
// since a TTL would reintroduce the staleness problem the cache's stickiness is meant to
// avoid for objects that must already be revalidated out-of-band on every policy write.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]Access

	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewCache constructs a Cache and registers its hit/miss counters with reg.
func NewCache(reg prometheus.Registerer) (*Cache, error) {
	c := &Cache{
		entries: make(map[Key]Access),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ontograph",
			Subsystem: "authz",
			Name:      "cache_hits_total",
			Help:      "Number of authorization decisions served from the sticky cache.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ontograph",
			Subsystem: "authz",
			Name:      "cache_misses_total",
			Help:      "Number of authorization decisions that required backend evaluation.",
		}),
	}
	if reg != nil {
		if err := reg.Register(c.hits); err != nil {
			return nil, err
		}
		if err := reg.Register(c.misses); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get returns the cached decision for key, if any.
func (c *Cache) Get(key Key) (Access, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.entries[key]
	if ok {
		c.hits.Inc()
	} else {
		c.misses.Inc()
	}
	return a, ok
}

// Set records a decision for key, overwriting any prior entry.
func (c *Cache) Set(key Key, a Access) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = a
}

// Invalidate removes the cached decision for key, if any, so the next Get is a miss.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateResource removes every cached decision mentioning resource, across all actors and
// actions, for use after a policy write that could change the answer for that resource.
func (c *Cache) InvalidateResource(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.Resource == resource {
			delete(c.entries, key)
		}
	}
}

// InvalidateAll clears the entire cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]Access)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
