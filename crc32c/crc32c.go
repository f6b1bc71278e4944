// Package crc32c provides CRC32-Castagnoli checksums and the masking scheme
// used when a checksum is stored inside data that is itself checksummed.
//
// All integrity checks in moraine use CRC32C: it is hardware accelerated on
// x86 (SSE4.2) and ARM (CRC extension), and the Castagnoli polynomial has
// better error detection than IEEE for the short records storage systems
// checksum.
//
// # Masking
//
// Computing the CRC of a string that contains embedded CRCs is a blind
// spot: the embedded value cancels out and corruption can go undetected.
// Mask permutes a checksum before it is stored; Unmask recovers it on read:
//
//	stored := crc32c.Mask(crc32c.Value(payload))
//	...
//	if crc32c.Unmask(stored) != crc32c.Value(payload) {
//	    // payload or checksum corrupted
//	}
package crc32c

import (
	"hash"
	"hash/crc32"
)

// table is pre-computed for the Castagnoli polynomial. Computing it once
// avoids repeated MakeTable calls.
var table = crc32.MakeTable(crc32.Castagnoli)

const maskDelta = 0xa282ead8

// Value computes the CRC32C checksum of data. Reference vector:
// Value([]byte("123456789")) == 0xe3069283.
func Value(data []byte) uint32 {
	return crc32.Checksum(data, table)
}

// Update extends crc with data, as if the concatenation of both inputs had
// been checksummed in one call.
func Update(crc uint32, data []byte) uint32 {
	return crc32.Update(crc, table, data)
}

// New returns a streaming CRC32C hash.Hash32.
func New() hash.Hash32 {
	return crc32.New(table)
}

// Mask returns crc rotated right by 15 bits with a constant added, making
// the value safe to embed in checksummed storage. Always Unmask a stored
// value before comparing it against a freshly computed checksum.
func Mask(crc uint32) uint32 {
	return (crc>>15 | crc<<17) + maskDelta
}

// Unmask recovers the checksum that Mask was applied to.
func Unmask(masked uint32) uint32 {
	rot := masked - maskDelta
	return rot>>17 | rot<<15
}
