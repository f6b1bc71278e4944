// Package cache provides the recency structures for table and block
// caching: a slot-arena intrusive list and a fixed-capacity strict-LRU
// cache built on it.
//
// # Recency List
//
// List keeps its nodes in a growable slot arena and links them by index.
// Compared to a pointer-linked list this buys three things: nodes live in
// one allocation instead of many, removed slots are recycled through a
// free chain, and positions can be named by a value (a Handle) without
// exposing node internals.
//
// # Handles
//
// A Handle is a (slot, generation) pair. Recycling a slot bumps its
// generation, so a handle kept past its entry's removal stops matching and
// every later use panics instead of silently touching the slot's new
// occupant. The zero Handle is never valid.
//
// # Eviction
//
// Cache pairs a Key-indexed map with a List: Insert links the key at the
// front, Get and duplicate Insert promote, and when the cache is full the
// back of the ring, the strictly least recently used entry, is evicted
// first. Map and ring always agree; a disagreement is corruption and
// panics.
//
// # Concurrency
//
// Like the other primitives, List and Cache are single-owner. Get reorders
// the ring, so it counts as a write for locking purposes. Layers that share
// a cache across goroutines wrap it with their own mutex, which also keeps
// multi-step sequences (miss, load, insert) atomic.
package cache
