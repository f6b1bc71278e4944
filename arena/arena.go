package arena

import (
	"fmt"
	"unsafe"

	"github.com/morainedb/moraine/internal/mmap"
)

const (
	// DefaultBlockSize is the standard block size (4 KiB).
	DefaultBlockSize = 4096

	// alignment is the unit AllocateAligned rounds addresses to: the
	// pointer size, floored at 8. That is 8 on every supported target.
	alignment = 8
)

// MemoryReserver charges arena blocks against an external memory budget.
// resource.Controller satisfies it.
type MemoryReserver interface {
	TryAcquireMemory(bytes int64) bool
	ReleaseMemory(bytes int64)
}

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithBlockSize sets the standard block size. Sizes <= 0 fall back to
// DefaultBlockSize.
func WithBlockSize(n int) Option {
	return func(a *Arena) {
		a.blockSize = n
	}
}

// WithOffHeap backs blocks with anonymous mappings instead of the Go heap.
func WithOffHeap() Option {
	return func(a *Arena) {
		a.offHeap = true
	}
}

// WithReserver charges every block the arena creates against r. A refused
// reservation panics: callers size their budgets so that refusal means a
// bug, not backpressure.
func WithReserver(r MemoryReserver) Option {
	return func(a *Arena) {
		a.reserver = r
	}
}

type block struct {
	buf     []byte
	mapping *mmap.Mapping // non-nil for off-heap blocks
}

// Arena is a bump-pointer allocator. Not safe for concurrent use; see
// SharedArena.
type Arena struct {
	blockSize int
	offHeap   bool
	reserver  MemoryReserver

	// free is the unconsumed tail of the newest standard block; its length
	// is the arena's remaining capacity before the next block.
	free   []byte
	blocks []block
	closed bool

	usage     int64 // whole-block bytes, the MemoryUsage contract
	requested int64 // caller bytes handed out
	allocs    int64
}

// New creates an empty Arena. No block is allocated until the first
// Allocate call.
func New(opts ...Option) *Arena {
	a := &Arena{blockSize: DefaultBlockSize}
	for _, opt := range opts {
		opt(a)
	}
	if a.blockSize <= 0 {
		a.blockSize = DefaultBlockSize
	}
	return a
}

// Allocate returns a zeroed region of exactly size bytes, valid until
// Close. It panics if size is not positive or the arena is closed.
func (a *Arena) Allocate(size int) []byte {
	if a.closed {
		panic("arena: use after Close")
	}
	if size <= 0 {
		panic("arena: allocation size must be positive")
	}

	if size <= len(a.free) {
		return a.carve(size)
	}
	return a.fallback(size)
}

// AllocateAligned is Allocate with the region's address rounded to the
// pointer alignment, for regions that will hold structs or machine words.
func (a *Arena) AllocateAligned(size int) []byte {
	if a.closed {
		panic("arena: use after Close")
	}
	if size <= 0 {
		panic("arena: allocation size must be positive")
	}

	slop := 0
	if len(a.free) > 0 {
		if mod := int(uintptr(unsafe.Pointer(&a.free[0])) & (alignment - 1)); mod != 0 {
			slop = alignment - mod
		}
	}
	if size+slop <= len(a.free) {
		a.free = a.free[slop:]
		return a.carve(size)
	}
	// Fresh blocks are sufficiently aligned on their own: heap blocks by
	// the allocator's size classes, off-heap blocks by the page size.
	return a.fallback(size)
}

// carve serves size bytes from the front of the current free window. The
// three-index reslice caps the region at its own length so appending to it
// can never bleed into a neighbour.
func (a *Arena) carve(size int) []byte {
	region := a.free[:size:size]
	a.free = a.free[size:]
	a.requested += int64(size)
	a.allocs++
	return region
}

// fallback serves a request that does not fit the current free window.
func (a *Arena) fallback(size int) []byte {
	if size > a.blockSize/4 {
		// Large request: dedicate a block of exactly this size so the
		// current window's remainder stays available for small requests.
		buf := a.newBlock(size)
		a.requested += int64(size)
		a.allocs++
		return buf[:size:size]
	}

	// Small request: retire the current window, abandoning its tail, and
	// start a new standard block.
	a.free = a.newBlock(a.blockSize)
	return a.carve(size)
}

// newBlock reserves budget for, creates, and retains one block.
func (a *Arena) newBlock(size int) []byte {
	if a.reserver != nil && !a.reserver.TryAcquireMemory(int64(size)) {
		panic("arena: memory budget exhausted")
	}

	var b block
	if a.offHeap {
		m, err := mmap.MapAnon(size)
		if err != nil {
			if a.reserver != nil {
				a.reserver.ReleaseMemory(int64(size))
			}
			panic(fmt.Sprintf("arena: anonymous mapping failed: %v", err))
		}
		b = block{buf: m.Bytes(), mapping: m}
	} else {
		b = block{buf: make([]byte, size)}
	}

	a.blocks = append(a.blocks, b)
	a.usage += int64(size)
	return b.buf
}

// MemoryUsage returns the total bytes of all blocks the arena holds. It
// grows only when a block is created; carving regions out of existing
// blocks does not change it.
func (a *Arena) MemoryUsage() int64 {
	return a.usage
}

// Stats tracks arena usage.
//
// BytesAllocated counts whole blocks (the MemoryUsage contract);
// BytesRequested counts what callers asked for. The gap between them is
// alignment slop plus abandoned block tails.
type Stats struct {
	Blocks         int
	BytesAllocated int64
	BytesRequested int64
	Allocs         int64
}

// Stats returns a snapshot of the arena's accounting.
func (a *Arena) Stats() Stats {
	return Stats{
		Blocks:         len(a.blocks),
		BytesAllocated: a.usage,
		BytesRequested: a.requested,
		Allocs:         a.allocs,
	}
}

// Utilization returns the share of block bytes that callers actually
// requested, as a percentage. The remainder is alignment slop and
// abandoned block tails.
func (a *Arena) Utilization() float64 {
	if a.usage == 0 {
		return 0
	}
	return float64(a.requested) / float64(a.usage) * 100
}

func (a *Arena) String() string {
	s := a.Stats()
	return fmt.Sprintf("Arena{blocks: %d, allocated: %d B, requested: %d B, utilization: %.1f%%, allocs: %d}",
		s.Blocks, s.BytesAllocated, s.BytesRequested, a.Utilization(), s.Allocs)
}

// Close releases every block: off-heap mappings are unmapped, heap blocks
// are surrendered to the garbage collector, and reserved budget is
// returned. All regions become invalid. Close is idempotent; any further
// allocation panics.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	var firstErr error
	for _, b := range a.blocks {
		if b.mapping != nil {
			if err := b.mapping.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	if a.reserver != nil && a.usage > 0 {
		a.reserver.ReleaseMemory(a.usage)
	}

	a.blocks = nil
	a.free = nil
	a.usage = 0
	return firstErr
}
