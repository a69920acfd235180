// seehuhn.de/go/maplabel - label placement for vector maps
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cache implements a bounded map from string keys to shared
// resources.
//
// Eviction is deliberately approximate. When the cache holds more than its
// maximum number of entries, [Cache.Expire] walks all entries once in
// insertion order and removes every fourth visited entry whose resource is
// not in use. Repeated calls shrink the cache geometrically, so a cache that
// is expired periodically never grows without bound, and the cost of a sweep
// is a single linear pass with no sorting or access bookkeeping.
//
// A Cache is not safe for concurrent use.
package cache

// Cache maps string keys to resources of type R.
type Cache[R any] struct {
	entries map[string]R
	keys    []string // insertion order
	maxSize int
	inUse   func(R) bool
}

// New returns an empty cache which starts evicting entries once it holds
// more than maxSize resources.
//
// If inUse is not nil, it is consulted during eviction and resources for
// which it returns true are kept. Negative sizes panic.
func New[R any](maxSize int, inUse func(R) bool) *Cache[R] {
	if maxSize < 0 {
		panic("cache: negative maximum size")
	}
	return &Cache[R]{
		entries: make(map[string]R),
		maxSize: maxSize,
		inUse:   inUse,
	}
}

// Get returns the resource stored under key.
// The boolean result reports whether the key was present.
func (c *Cache[R]) Get(key string) (R, bool) {
	res, ok := c.entries[key]
	return res, ok
}

// ContainsKey reports whether a resource is stored under key.
func (c *Cache[R]) ContainsKey(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Set stores res under key. Replacing an existing entry keeps its position
// in the eviction order.
func (c *Cache[R]) Set(key string, res R) {
	if _, ok := c.entries[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = res
}

// Len returns the number of stored resources.
func (c *Cache[R]) Len() int {
	return len(c.keys)
}

// MaxSize returns the size above which [Cache.Expire] evicts entries.
func (c *Cache[R]) MaxSize() int {
	return c.maxSize
}

// SetMaxSize changes the maximum size and immediately calls [Cache.Expire].
func (c *Cache[R]) SetMaxSize(n int) {
	if n < 0 {
		panic("cache: negative maximum size")
	}
	c.maxSize = n
	c.Expire()
}

// Clear removes all entries.
func (c *Cache[R]) Clear() {
	clear(c.entries)
	c.keys = c.keys[:0]
}

// Expire performs one eviction sweep if the cache holds more than MaxSize
// resources. Entries are visited in insertion order, and every fourth
// visited entry, starting with the first, is removed unless its resource
// is in use. The number of removed entries is returned.
func (c *Cache[R]) Expire() int {
	if len(c.keys) <= c.maxSize {
		return 0
	}

	kept := c.keys[:0]
	removed := 0
	for i, key := range c.keys {
		if i&3 == 0 && (c.inUse == nil || !c.inUse(c.entries[key])) {
			delete(c.entries, key)
			removed++
			continue
		}
		kept = append(kept, key)
	}
	clear(c.keys[len(kept):])
	c.keys = kept
	return removed
}

// Prune calls [Cache.Expire] until the cache holds at most MaxSize
// resources, or until a sweep cannot remove anything because all candidates
// are in use.
func (c *Cache[R]) Prune() {
	for len(c.keys) > c.maxSize {
		if c.Expire() == 0 {
			return
		}
	}
}
