package arena

import "sync"

// SharedArena is an Arena shared by several goroutines. A mutex grants one
// mutator at a time; the Go runtime keeps the arena alive for as long as
// any holder keeps a reference, so there is no explicit handle counting.
//
// Regions returned by a SharedArena follow the same lifetime rule as the
// plain Arena's: valid until Close. Writing to a region is the caller's
// business and is NOT serialized by the arena; two goroutines each own
// the regions they allocated.
type SharedArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewShared creates an Arena owned by the wrapper. It accepts the same
// options as New.
func NewShared(opts ...Option) *SharedArena {
	return &SharedArena{a: New(opts...)}
}

// Allocate returns a zeroed region of exactly size bytes.
func (s *SharedArena) Allocate(size int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Allocate(size)
}

// AllocateAligned is Allocate with the region's address pointer-aligned.
func (s *SharedArena) AllocateAligned(size int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocateAligned(size)
}

// MemoryUsage returns the total bytes of all blocks the arena holds.
func (s *SharedArena) MemoryUsage() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.MemoryUsage()
}

// Stats returns a snapshot of the arena's accounting.
func (s *SharedArena) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Stats()
}

// With runs f with exclusive access to the underlying Arena, for callers
// that need several operations to happen atomically. f must not call back
// into the SharedArena: the lock is held and re-entry deadlocks.
func (s *SharedArena) With(f func(*Arena)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.a)
}

// Close releases the underlying Arena. Callers must ensure no goroutine
// still touches previously returned regions.
func (s *SharedArena) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Close()
}
