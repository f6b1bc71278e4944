package cache

import "hash/fnv"

// Key is the fixed-size fingerprint entries are stored under. Engine
// layers build keys from structured identity (table number, block offset,
// cache id) or hash raw bytes with KeyOf.
type Key [16]byte

// KeyOf fingerprints arbitrary bytes into a Key using FNV-128a. It is
// deterministic across processes and platforms.
func KeyOf(data []byte) Key {
	h := fnv.New128a()
	_, _ = h.Write(data) // never fails
	var k Key
	h.Sum(k[:0])
	return k
}

type entry[V any] struct {
	value  V
	handle Handle
}

// Cache maps Keys to values with a fixed entry capacity and strict LRU
// eviction: inserting at capacity evicts the entry that was least recently
// inserted, promoted, or hit. Not safe for concurrent use.
type Cache[V any] struct {
	capacity int
	list     *List[Key] // recency ring, front is most recent
	items    map[Key]entry[V]
	lastID   uint64

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a cache holding at most capacity entries. It panics when
// capacity is not positive: a cache that can hold nothing is a
// configuration bug, not a degenerate mode.
func New[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		panic("cache: capacity must be positive")
	}
	return &Cache[V]{
		capacity: capacity,
		list:     NewList[Key](),
		items:    make(map[Key]entry[V]),
	}
}

// NewID returns the next id from this cache's id space: 1, 2, 3, ...
// Layers sharing one cache prefix their keys with an id each, so entries
// from different owners never collide.
func (c *Cache[V]) NewID() uint64 {
	c.lastID++
	return c.lastID
}

// Insert stores value under key and makes it the most recent entry.
//
// An existing entry under the same key is overwritten in place and
// promoted, never duplicated and never evicted. Otherwise, when the cache
// is full, the least recent entry is evicted first.
func (c *Cache[V]) Insert(key Key, value V) {
	if ent, ok := c.items[key]; ok {
		ent.value = value
		c.items[key] = ent
		c.list.MoveToFront(ent.handle)
		return
	}

	if c.list.Len() >= c.capacity {
		victim, ok := c.list.RemoveLast()
		if !ok {
			panic("cache: recency ring empty at capacity")
		}
		if _, ok := c.items[victim]; !ok {
			panic("cache: recency ring and index out of sync")
		}
		delete(c.items, victim)
		c.evictions++
	}

	c.items[key] = entry[V]{value: value, handle: c.list.Insert(key)}
}

// Get returns the value under key and promotes it to most recent. The
// second result reports whether the key was present.
func (c *Cache[V]) Get(key Key) (V, bool) {
	ent, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.list.MoveToFront(ent.handle)
	return ent.value, true
}

// Remove deletes the entry under key and returns its value. Removing an
// absent key is a no-op that reports false.
func (c *Cache[V]) Remove(key Key) (V, bool) {
	ent, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.list.Remove(ent.handle)
	delete(c.items, key)
	return ent.value, true
}

// Len returns the number of entries.
func (c *Cache[V]) Len() int { return c.list.Len() }

// Cap returns the configured capacity.
func (c *Cache[V]) Cap() int { return c.capacity }

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
	Cap       int
}

// Stats returns a snapshot of hit, miss, and eviction counts.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Len:       c.Len(),
		Cap:       c.capacity,
	}
}
