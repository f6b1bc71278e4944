// Package moraine provides low-level building blocks for log-structured
// storage engines.
//
// Moraine is the memory layer a KV engine is assembled from: a bump-pointer
// arena for memtable nodes and block buffers, an intrusive recency list and
// a fixed-capacity LRU cache for table and block caching, plus the small
// contracts those layers share: byte-view comparison, CRC-32C checksums
// with storage masking, a reproducible PRNG for randomized structures, and
// ordering-explicit atomic cells.
//
// # Arena
//
// An Arena serves many small allocations from a few large blocks and frees
// them all at once:
//
//	a := arena.New()
//	defer a.Close()
//
//	buf := a.Allocate(128)          // zeroed, stable until Close
//	node := a.AllocateAligned(48)   // pointer-aligned
//
// Regions are never freed individually; dropping the arena drops every
// region in O(blocks). A SharedArena wraps the same allocator for use from
// several goroutines.
//
// # Cache
//
// Cache is a strict-LRU map with a fixed entry capacity. Inserting at
// capacity evicts the least recently used entry; Get promotes:
//
//	c := cache.New[*Block](1024)
//	c.Insert(cache.KeyOf(handle), blk)
//	if blk, ok := c.Get(cache.KeyOf(handle)); ok { ... }
//
// # Concurrency Model
//
// The primitives are single-owner: one goroutine (or one mutex holder)
// drives an Arena, List, Cache, or Random at a time. SharedArena and
// resource.Controller are the concurrency-aware wrappers; the atomics
// package carries the cross-goroutine flags and counters.
//
// # Errors
//
// Contract violations (zero-size allocations, stale handles, a cache whose
// map and recency list disagree) panic immediately rather than return an
// error; they are bugs, not conditions. Ordinary absence (cache miss,
// empty list) is a (value, ok) pair. The error values in this package are
// the taxonomy engine layers above report with: ErrNotFound, ErrCorruption,
// ErrNotSupported, ErrInvalidArgument, ErrIO.
package moraine
