// Package wire holds the low-level byte helpers shared by the encoder and
// decoder: bounds-checked big-endian reads, overflow-safe length arithmetic,
// and ASCII validation.
package wire

import (
	"encoding/binary"
	"math"

	"fortio.org/safecast"
)

// SafeMul multiplies two lengths, reporting overflow instead of wrapping.
func SafeMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxUint64/b {
		return 0, false
	}
	return a * b, true
}

// SafeAdd adds two offsets, reporting overflow instead of wrapping.
func SafeAdd(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// Slots converts a wire-claimed element count into a Go slice length.
func Slots(n uint64) (int, error) {
	return safecast.Conv[int](n)
}

// InRange reports whether [off, off+width) lies inside a buffer of the given
// length.
func InRange(bufLen, off, width uint64) bool {
	end, ok := SafeAdd(off, width)
	return ok && end <= bufLen
}

// ReadU16 reads a big-endian u16 at off, reporting false when out of range.
func ReadU16(data []byte, off uint64) (uint16, bool) {
	if !InRange(uint64(len(data)), off, 2) {
		return 0, false
	}
	return binary.BigEndian.Uint16(data[off:]), true
}

// ReadU32 reads a big-endian u32 at off, reporting false when out of range.
func ReadU32(data []byte, off uint64) (uint32, bool) {
	if !InRange(uint64(len(data)), off, 4) {
		return 0, false
	}
	return binary.BigEndian.Uint32(data[off:]), true
}

// ReadU64 reads a big-endian u64 at off, reporting false when out of range.
func ReadU64(data []byte, off uint64) (uint64, bool) {
	if !InRange(uint64(len(data)), off, 8) {
		return 0, false
	}
	return binary.BigEndian.Uint64(data[off:]), true
}

// AppendU16 appends a big-endian u16.
func AppendU16(dst []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, v)
}

// AppendU32 appends a big-endian u32.
func AppendU32(dst []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, v)
}

// AppendU64 appends a big-endian u64.
func AppendU64(dst []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, v)
}

// PutU64 writes a big-endian u64 in place.
func PutU64(dst []byte, v uint64) {
	binary.BigEndian.PutUint64(dst, v)
}

// IsASCII reports whether every byte is 7-bit ASCII.
func IsASCII(b []byte) bool {
	for _, c := range b {
		if c > 0x7f {
			return false
		}
	}
	return true
}
