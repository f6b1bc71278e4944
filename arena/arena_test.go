package arena

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/morainedb/moraine/random"
	"github.com/morainedb/moraine/resource"
)

// The resource controller must satisfy the reserver seam.
var _ MemoryReserver = (*resource.Controller)(nil)

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestArena_New(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a := New()
		defer a.Close()

		if a.blockSize != DefaultBlockSize {
			t.Errorf("expected blockSize=%d, got %d", DefaultBlockSize, a.blockSize)
		}
		if got := a.MemoryUsage(); got != 0 {
			t.Errorf("fresh arena should own no blocks, usage=%d", got)
		}
		if s := a.Stats(); s.Blocks != 0 || s.Allocs != 0 {
			t.Errorf("fresh arena stats not zero: %+v", s)
		}
		if got := a.Utilization(); got != 0 {
			t.Errorf("fresh arena utilization=%v, want 0", got)
		}
	})

	t.Run("custom block size", func(t *testing.T) {
		a := New(WithBlockSize(8192))
		defer a.Close()

		if a.blockSize != 8192 {
			t.Errorf("expected blockSize=8192, got %d", a.blockSize)
		}
	})

	t.Run("non-positive block size falls back", func(t *testing.T) {
		a := New(WithBlockSize(-1))
		defer a.Close()

		if a.blockSize != DefaultBlockSize {
			t.Errorf("expected blockSize=%d, got %d", DefaultBlockSize, a.blockSize)
		}
	})
}

// TestArena_Accounting walks the reference allocation sequence and checks
// the remaining-window and whole-block bookkeeping after every step.
func TestArena_Accounting(t *testing.T) {
	a := New()
	defer a.Close()

	check := func(step string, remaining int, usage int64) {
		t.Helper()
		if got := len(a.free); got != remaining {
			t.Errorf("%s: remaining=%d, want %d", step, got, remaining)
		}
		if got := a.MemoryUsage(); got != usage {
			t.Errorf("%s: usage=%d, want %d", step, got, usage)
		}
	}

	if got := a.Allocate(128); len(got) != 128 {
		t.Fatalf("Allocate(128) returned %d bytes", len(got))
	}
	check("allocate 128", 3968, 4096)

	a.Allocate(1024)
	check("allocate 1024", 2944, 4096)

	// Larger than a quarter block: served from a dedicated block, the
	// current window is untouched.
	if got := a.Allocate(8192); len(got) != 8192 {
		t.Fatalf("Allocate(8192) returned %d bytes", len(got))
	}
	check("allocate 8192 (dedicated)", 2944, 12288)

	a.Allocate(2048)
	check("allocate 2048", 896, 12288)

	// Does not fit the 896-byte tail but is under a quarter block: a new
	// standard block starts and the tail is abandoned.
	a.Allocate(1024)
	check("allocate 1024 (new block)", 3072, 16384)

	s := a.Stats()
	if s.Blocks != 3 {
		t.Errorf("expected 3 blocks (two standard, one dedicated), got %d", s.Blocks)
	}
	if s.Allocs != 5 {
		t.Errorf("expected 5 allocs, got %d", s.Allocs)
	}
	if want := int64(128 + 1024 + 8192 + 2048 + 1024); s.BytesRequested != want {
		t.Errorf("BytesRequested=%d, want %d", s.BytesRequested, want)
	}
	if s.BytesAllocated != a.MemoryUsage() {
		t.Errorf("BytesAllocated=%d diverges from MemoryUsage=%d", s.BytesAllocated, a.MemoryUsage())
	}
	want := "Arena{blocks: 3, allocated: 16384 B, requested: 12416 B, utilization: 75.8%, allocs: 5}"
	if got := a.String(); got != want {
		t.Errorf("String()=%q, want %q", got, want)
	}
}

func TestArena_DedicatedThreshold(t *testing.T) {
	t.Run("exactly a quarter block uses a standard block", func(t *testing.T) {
		a := New()
		defer a.Close()

		a.Allocate(1024) // == blockSize/4
		if got := a.MemoryUsage(); got != 4096 {
			t.Errorf("usage=%d, want 4096", got)
		}
		if got := len(a.free); got != 3072 {
			t.Errorf("remaining=%d, want 3072", got)
		}
	})

	t.Run("one past a quarter block is dedicated", func(t *testing.T) {
		a := New()
		defer a.Close()

		a.Allocate(1025)
		if got := a.MemoryUsage(); got != 1025 {
			t.Errorf("usage=%d, want 1025", got)
		}
		if got := len(a.free); got != 0 {
			t.Errorf("dedicated block must not become the window, remaining=%d", got)
		}
	})
}

func TestArena_Panics(t *testing.T) {
	a := New()

	mustPanic(t, "zero size", func() { a.Allocate(0) })
	mustPanic(t, "negative size", func() { a.Allocate(-3) })
	mustPanic(t, "aligned zero size", func() { a.AllocateAligned(0) })

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	mustPanic(t, "use after Close", func() { a.Allocate(1) })
	mustPanic(t, "aligned use after Close", func() { a.AllocateAligned(8) })
}

func TestArena_ZeroFilled(t *testing.T) {
	a := New()
	defer a.Close()

	for _, size := range []int{1, 128, 4096, 9000} {
		region := a.Allocate(size)
		for i, b := range region {
			if b != 0 {
				t.Fatalf("size %d: byte %d not zero: %d", size, i, b)
			}
		}
	}
}

func TestArena_AllocateAligned(t *testing.T) {
	t.Run("alignment after odd offsets", func(t *testing.T) {
		a := New()
		defer a.Close()

		for i := 0; i < 64; i++ {
			a.Allocate(1) // misalign the window
			region := a.AllocateAligned(24)
			if addr := uintptr(unsafe.Pointer(&region[0])); addr%alignment != 0 {
				t.Fatalf("iteration %d: address %#x not %d-aligned", i, addr, alignment)
			}
		}
	})

	t.Run("slop accounting", func(t *testing.T) {
		a := New()
		defer a.Close()

		a.Allocate(1)
		remaining := len(a.free)

		slop := 0
		if mod := int(uintptr(unsafe.Pointer(&a.free[0])) & (alignment - 1)); mod != 0 {
			slop = alignment - mod
		}

		region := a.AllocateAligned(512)
		if len(region) != 512 {
			t.Fatalf("AllocateAligned(512) returned %d bytes", len(region))
		}
		if got, want := len(a.free), remaining-512-slop; got != want {
			t.Errorf("remaining=%d, want %d (slop %d)", got, want, slop)
		}
	})

	t.Run("dedicated blocks are aligned", func(t *testing.T) {
		a := New()
		defer a.Close()

		a.Allocate(3) // misaligned window, irrelevant to the fallback path
		region := a.AllocateAligned(5000)
		if addr := uintptr(unsafe.Pointer(&region[0])); addr%alignment != 0 {
			t.Errorf("dedicated region address %#x not aligned", addr)
		}
	})
}

// TestArena_Workload drives a mixed allocation pattern, verifies that no
// region ever aliases another, and bounds the block overhead.
func TestArena_Workload(t *testing.T) {
	const n = 10000

	a := New()
	defer a.Close()
	rnd := random.New(301)

	type alloc struct {
		region []byte
		fill   byte
	}
	allocs := make([]alloc, 0, n)

	for i := 0; i < n; i++ {
		var size int
		switch {
		case rnd.OneIn(4000):
			size = int(rnd.Uniform(6000)) + 1
		case rnd.OneIn(10):
			size = int(rnd.Uniform(100)) + 1
		default:
			size = int(rnd.Uniform(20)) + 1
		}

		var region []byte
		if rnd.OneIn(3) {
			region = a.AllocateAligned(size)
		} else {
			region = a.Allocate(size)
		}
		if len(region) != size {
			t.Fatalf("alloc %d: got %d bytes, want %d", i, len(region), size)
		}

		fill := byte(i % 251)
		for j := range region {
			region[j] = fill + byte(j%5)
		}
		allocs = append(allocs, alloc{region, fill})
	}

	// Every earlier region still holds its own pattern: overlap anywhere
	// would have been overwritten by a later fill.
	for i, al := range allocs {
		for j, b := range al.region {
			if want := al.fill + byte(j%5); b != want {
				t.Fatalf("region %d byte %d: got %d, want %d", i, j, b, want)
			}
		}
	}

	s := a.Stats()
	if s.BytesRequested > s.BytesAllocated {
		t.Errorf("requested %d exceeds allocated %d", s.BytesRequested, s.BytesAllocated)
	}
	// Retired standard blocks abandon less than a quarter of themselves,
	// dedicated blocks waste nothing, and only the live window may be
	// mostly empty.
	if limit := s.BytesRequested*4/3 + DefaultBlockSize; s.BytesAllocated > limit {
		t.Errorf("allocated %d exceeds overhead bound %d (requested %d)",
			s.BytesAllocated, limit, s.BytesRequested)
	}
}

func TestArena_Close(t *testing.T) {
	a := New()
	a.Allocate(100)
	a.Allocate(9000)

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := a.MemoryUsage(); got != 0 {
		t.Errorf("usage after Close=%d, want 0", got)
	}
	if s := a.Stats(); s.Blocks != 0 {
		t.Errorf("blocks after Close=%d, want 0", s.Blocks)
	}

	// Idempotent.
	if err := a.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestArena_OffHeap(t *testing.T) {
	a := New(WithOffHeap())

	region := a.Allocate(128)
	copy(region, "off-heap bytes")
	big := a.Allocate(10000)
	big[9999] = 0x5a

	for i, b := range region[14:] {
		if b != 0 {
			t.Fatalf("off-heap region byte %d not zero: %d", i, b)
		}
	}
	if string(region[:14]) != "off-heap bytes" {
		t.Errorf("off-heap region corrupted: %q", region[:14])
	}
	if big[9999] != 0x5a {
		t.Errorf("dedicated off-heap region corrupted")
	}
	if got := a.MemoryUsage(); got != 4096+10000 {
		t.Errorf("usage=%d, want %d", got, 4096+10000)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

type fakeReserver struct {
	acquired int64
	released int64
	refuse   bool
}

func (f *fakeReserver) TryAcquireMemory(bytes int64) bool {
	if f.refuse {
		return false
	}
	f.acquired += bytes
	return true
}

func (f *fakeReserver) ReleaseMemory(bytes int64) { f.released += bytes }

func TestArena_Reserver(t *testing.T) {
	t.Run("blocks are charged and refunded", func(t *testing.T) {
		r := &fakeReserver{}
		a := New(WithReserver(r))

		a.Allocate(128)  // first standard block
		a.Allocate(8192) // dedicated
		a.Allocate(3000) // still the first block's window
		a.Allocate(1000) // abandons the 968-byte tail, second standard block

		if want := int64(4096 + 8192 + 4096); r.acquired != want {
			t.Errorf("acquired=%d, want %d", r.acquired, want)
		}
		if r.released != 0 {
			t.Errorf("released=%d before Close", r.released)
		}

		if err := a.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		if r.released != r.acquired {
			t.Errorf("released=%d, want %d", r.released, r.acquired)
		}
	})

	t.Run("refusal is fatal", func(t *testing.T) {
		a := New(WithReserver(&fakeReserver{refuse: true}))
		defer a.Close()

		mustPanic(t, "budget exhausted", func() { a.Allocate(1) })
	})

	t.Run("controller budget", func(t *testing.T) {
		ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 6000})
		a := New(WithReserver(ctrl))

		a.Allocate(100) // one 4096 block fits the budget
		if got := ctrl.MemoryUsage(); got != 4096 {
			t.Errorf("controller usage=%d, want 4096", got)
		}

		// The next block would exceed 6000.
		mustPanic(t, "controller refusal", func() { a.Allocate(4000) })

		if err := a.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		if got := ctrl.MemoryUsage(); got != 0 {
			t.Errorf("controller usage after Close=%d, want 0", got)
		}
	})
}

func BenchmarkArena_Allocate(b *testing.B) {
	sizes := []int{16, 64, 256, 1024}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			a := New()
			defer func() { _ = a.Close() }()

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if a.MemoryUsage() > 1<<30 {
					b.StopTimer()
					_ = a.Close()
					a = New()
					b.StartTimer()
				}
				_ = a.Allocate(size)
			}
		})
	}
}

func BenchmarkArena_AllocateAligned(b *testing.B) {
	a := New()
	defer func() { _ = a.Close() }()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if a.MemoryUsage() > 1<<30 {
			b.StopTimer()
			_ = a.Close()
			a = New()
			b.StartTimer()
		}
		_ = a.AllocateAligned(48)
	}
}

func BenchmarkArena_vs_Make(b *testing.B) {
	b.Run("arena", func(b *testing.B) {
		a := New()
		defer func() { _ = a.Close() }()

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if a.MemoryUsage() > 1<<30 {
				b.StopTimer()
				_ = a.Close()
				a = New()
				b.StartTimer()
			}
			_ = a.Allocate(64)
		}
	})

	b.Run("make", func(b *testing.B) {
		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			_ = make([]byte, 64)
		}
	})
}
