package mmap

import (
	"errors"
	"sync/atomic"
)

// ErrInvalidSize is returned when a mapping of a non-positive size is
// requested.
var ErrInvalidSize = errors.New("mmap: invalid mapping size")

// Mapping is an anonymous memory region. It owns the underlying byte slice
// and is responsible for unmapping it.
type Mapping struct {
	data   []byte
	size   int
	closed atomic.Bool
	// unmap is the platform-specific release function.
	unmap func([]byte) error
}

// MapAnon maps size bytes of zero-filled, writable anonymous memory.
func MapAnon(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	data, unmapFunc, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}

	return &Mapping{
		data:  data,
		size:  size,
		unmap: unmapFunc,
	}, nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}

// Bytes returns the underlying byte slice, or nil once the mapping is
// closed. The slice is valid only until Close; accessing it afterwards
// faults.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int {
	return m.size
}
