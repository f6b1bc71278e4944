// Package mmap provides anonymous memory mappings for off-heap allocation.
//
// An anonymous mapping is writable, zero-filled memory obtained from the
// kernel rather than the Go heap: the garbage collector neither scans nor
// moves it, which is what off-heap arena blocks want. Pages are
// demand-backed, so a large mapping costs physical memory only as it is
// touched.
//
// # Usage
//
//	m, err := mmap.MapAnon(1 << 20)
//	if err != nil { ... }
//	defer m.Close()
//
//	buf := m.Bytes() // valid until Close
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT, which demand-pages
//     the same way
//
// # Thread Safety
//
// A Mapping is safe for concurrent reads. Close is idempotent and protected
// by an atomic flag, but callers must ensure no goroutine touches Bytes()
// after Close returns.
package mmap
