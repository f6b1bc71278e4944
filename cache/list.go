package cache

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
)

const (
	// sentinel is the slot index of the ring's root node.
	sentinel = 0
	// none terminates the free-slot chain.
	none = -1
)

// Handle names one live entry of a List. Handles stay valid across
// unrelated mutations and across growth of the list's backing storage; a
// handle goes stale the moment its entry is removed, and every use of a
// stale handle panics. The zero Handle is never valid.
type Handle struct {
	slot int32
	gen  uint32
}

type node[T any] struct {
	value      T
	prev, next int32
	gen        uint32
	used       bool
}

// List is a doubly linked list held in a growable slot arena: links are
// slot indices rather than pointers, removed slots are recycled through a
// free chain, and each recycling bumps the slot's generation so that
// handles to the old occupant are detected instead of corrupting the new
// one.
//
// Slot 0 is the sentinel that closes the ring; its next is the front and
// its prev the back. All operations are O(1). Not safe for concurrent use.
type List[T any] struct {
	slots []node[T]
	free  int32
	count int
}

// NewList creates an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{
		// The sentinel's zero value already links to itself. Its
		// generation stays 0 and it is never marked used, so no valid
		// Handle can name it.
		slots: make([]node[T], 1),
		free:  none,
	}
}

// Len returns the number of entries.
func (l *List[T]) Len() int { return l.count }

// Insert adds v at the front and returns its handle.
func (l *List[T]) Insert(v T) Handle {
	i := l.grab()
	n := &l.slots[i]
	n.value = v
	n.used = true
	l.link(i)
	l.count++
	return Handle{slot: i, gen: n.gen}
}

// RemoveLast unlinks and returns the back entry, the least recently
// inserted or promoted one. It reports false on an empty list.
func (l *List[T]) RemoveLast() (T, bool) {
	if l.count == 0 {
		var zero T
		return zero, false
	}
	back := l.slots[sentinel].prev
	l.unlink(back)
	return l.recycle(back), true
}

// Remove unlinks the entry h names and returns its value. The handle is
// stale afterwards.
func (l *List[T]) Remove(h Handle) T {
	i := l.mustSlot(h)
	l.unlink(i)
	return l.recycle(i)
}

// MoveToFront promotes the entry h names to the front. The handle stays
// valid.
func (l *List[T]) MoveToFront(h Handle) {
	i := l.mustSlot(h)
	if l.slots[sentinel].next == i {
		return
	}
	l.unlink(i)
	l.link(i)
}

// mustSlot validates h and returns its slot index.
func (l *List[T]) mustSlot(h Handle) int32 {
	if h.slot <= sentinel || int(h.slot) >= len(l.slots) {
		panic("cache: invalid list handle")
	}
	n := &l.slots[h.slot]
	if !n.used || n.gen != h.gen {
		panic("cache: stale list handle")
	}
	return h.slot
}

// grab returns a free slot, recycling before growing.
func (l *List[T]) grab() int32 {
	if l.free != none {
		i := l.free
		l.free = l.slots[i].next
		return i
	}
	if len(l.slots) > math.MaxInt32 {
		panic("cache: list slot limit exceeded")
	}
	l.slots = append(l.slots, node[T]{gen: 1})
	return int32(len(l.slots) - 1)
}

// link splices slot i in right after the sentinel, making it the front.
func (l *List[T]) link(i int32) {
	n := &l.slots[i]
	front := l.slots[sentinel].next
	n.prev = sentinel
	n.next = front
	l.slots[front].prev = i
	l.slots[sentinel].next = i
}

// unlink takes slot i out of the ring.
func (l *List[T]) unlink(i int32) {
	n := l.slots[i]
	l.slots[n.prev].next = n.next
	l.slots[n.next].prev = n.prev
}

// recycle clears slot i, invalidates its handles, and chains it for reuse.
func (l *List[T]) recycle(i int32) T {
	n := &l.slots[i]
	v := n.value

	var zero T
	n.value = zero // drop references held by the old occupant
	n.gen++
	n.used = false
	n.prev = sentinel
	n.next = l.free
	l.free = i
	l.count--
	return v
}

// verify walks the whole structure and reports the first inconsistency:
// ring and free chain must partition the slots, back-links must mirror
// forward links, and the ring length must match Len. Test harness hook,
// not part of any hot path.
func (l *List[T]) verify() error {
	seen := bitset.New(uint(len(l.slots)))

	steps := 0
	for i := l.slots[sentinel].next; i != sentinel; i = l.slots[i].next {
		if i <= sentinel || int(i) >= len(l.slots) {
			return fmt.Errorf("ring links to slot %d, out of range", i)
		}
		if seen.Test(uint(i)) {
			return fmt.Errorf("slot %d linked twice in ring", i)
		}
		seen.Set(uint(i))

		n := &l.slots[i]
		if !n.used {
			return fmt.Errorf("free slot %d linked in ring", i)
		}
		if l.slots[n.prev].next != i {
			return fmt.Errorf("slot %d: prev %d does not link back", i, n.prev)
		}
		if l.slots[n.next].prev != i {
			return fmt.Errorf("slot %d: next %d does not link back", i, n.next)
		}
		steps++
	}
	if steps != l.count {
		return fmt.Errorf("ring holds %d entries, count says %d", steps, l.count)
	}

	for i := l.free; i != none; i = l.slots[i].next {
		if i <= sentinel || int(i) >= len(l.slots) {
			return fmt.Errorf("free chain links to slot %d, out of range", i)
		}
		if seen.Test(uint(i)) {
			return fmt.Errorf("slot %d is both live and free", i)
		}
		seen.Set(uint(i))
		if l.slots[i].used {
			return fmt.Errorf("free slot %d still marked used", i)
		}
	}

	if got, want := int(seen.Count()), len(l.slots)-1; got != want {
		return fmt.Errorf("%d slots reachable, arena holds %d", got, want)
	}
	return nil
}
