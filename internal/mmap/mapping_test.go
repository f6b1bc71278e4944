package mmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAnon_WriteRead(t *testing.T) {
	const size = 64 * 1024

	m, err := MapAnon(size)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, size, m.Size())

	buf := m.Bytes()
	require.Len(t, buf, size)

	// Anonymous pages arrive zero-filled.
	for _, off := range []int{0, 1, size / 2, size - 1} {
		assert.Zero(t, buf[off])
	}

	// And they are writable.
	copy(buf, "Hello, MapAnon!")
	buf[size-1] = 0xff
	assert.Equal(t, "Hello, MapAnon!", string(buf[:15]))
	assert.Equal(t, byte(0xff), m.Bytes()[size-1])
}

func TestMapAnon_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		m, err := MapAnon(size)
		assert.Nil(t, m)
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestMapAnon_Close(t *testing.T) {
	m, err := MapAnon(4096)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())
	assert.Equal(t, 4096, m.Size(), "Size stays known after Close")

	// Close is idempotent.
	assert.NoError(t, m.Close())
}
