// Package compat remembers the outcome of past negotiations per remote address.
package compat

import "sync"

// Cache maps a remote address to whether it was found compatible.
// Entries live for the lifetime of the process, the last write wins.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]bool
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: map[string]bool{}}
}

// Get returns the recorded outcome for address, false if nothing was recorded.
func (c *Cache) Get(address string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[address]
}

// Lookup reports the recorded outcome and whether an entry exists.
func (c *Cache) Lookup(address string) (compatible, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	compatible, ok = c.entries[address]
	return compatible, ok
}

func (c *Cache) Put(address string, compatible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[address] = compatible
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
