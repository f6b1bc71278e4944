package moraine

import "bytes"

// Slice is a borrowed view over a byte sequence, the unit of key and value
// comparison throughout the engine. A Slice never owns its backing array:
// whoever produced the bytes (an arena region, a decoded block, a caller
// buffer) controls their lifetime, and the view must not outlive them.
type Slice []byte

// Compare orders s against b bytewise. When one is a prefix of the other,
// the shorter view sorts first. The result is -1, 0, or +1.
func (s Slice) Compare(b Slice) int {
	return bytes.Compare(s, b)
}

// Equal reports whether the two views hold the same bytes.
func (s Slice) Equal(b Slice) bool {
	return bytes.Equal(s, b)
}

// StartsWith reports whether s begins with prefix.
func (s Slice) StartsWith(prefix Slice) bool {
	return bytes.HasPrefix(s, prefix)
}

// Skip returns the view advanced past its first n bytes. It panics when n
// exceeds Size; skipping exactly Size yields the empty view.
func (s Slice) Skip(n int) Slice {
	return s[n:]
}

// Size returns the number of bytes in view.
func (s Slice) Size() int { return len(s) }

// IsEmpty reports whether the view holds no bytes.
func (s Slice) IsEmpty() bool { return len(s) == 0 }

func (s Slice) String() string { return string(s) }
