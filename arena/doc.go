// Package arena provides a bump-pointer allocator that serves many small
// allocations from a few large blocks and frees them all at once.
//
// # Allocation
//
// An Arena hands out regions carved from standard blocks (4 KiB by
// default). When a request does not fit in the current block's remainder,
// the arena either dedicates a fresh block to it (requests larger than a
// quarter block, so one big region never wastes a whole block's tail) or
// starts a new standard block and abandons the old remainder. Abandoned
// tails are internal fragmentation, never reclaimed but bounded by the
// quarter-block rule.
//
// Regions arrive zeroed, never overlap, and stay valid and writable until
// Close. There is no per-region free: dropping the arena drops everything
// in O(blocks).
//
// # Concurrency Model
//
// An Arena is single-owner: one goroutine (or one mutex holder) drives it
// at a time. SharedArena wraps an Arena for use from several goroutines by
// granting one mutator at a time.
//
// # Memory Accounting
//
// MemoryUsage counts whole blocks, not caller bytes: it grows only when a
// block is created and answers "what does this arena cost the process".
// Stats breaks out the caller-requested bytes for fragmentation analysis.
// A MemoryReserver (satisfied by resource.Controller) can be wired in to
// charge every block against a process-wide budget; a refused reservation
// is fatal.
//
// # Off-Heap Blocks
//
// WithOffHeap backs blocks with anonymous mappings instead of the Go heap.
// The garbage collector neither scans nor moves them, which keeps large
// long-lived arenas out of GC mark phases. Close unmaps them; touching a
// region after Close faults instead of silently reading recycled memory.
package arena
