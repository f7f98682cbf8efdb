package codec

import (
	"github.com/embervm/ember-go/abi"
	"github.com/embervm/ember-go/codec/internal/wire"
	"github.com/embervm/ember-go/errors"
)

// inlineRegion marks a header that lives in the inline buffer rather than in
// an earlier heap chunk.
const inlineRegion = -1

// heapChunk is one heap-allocated value's encoded data, together with the
// location of the (pointer, ...) header that must be patched to point at it.
// Nested heap values produce chunks whose header lives inside the parent's
// chunk, so patchRegion is either inlineRegion or the index of an earlier
// chunk.
type heapChunk struct {
	data        []byte
	patchOffset uint64
	patchRegion int
}

// UnresolvedBytes is the encoder's output before heap pointers are known:
// a fixed-size inline region plus heap chunks in encounter order. It is not
// valid wire data until Resolve patches the placeholder pointers.
type UnresolvedBytes struct {
	inline []byte
	chunks []heapChunk
}

// InlineLen returns the size of the inline region. After Resolve(base), the
// first chunk's data begins at base + InlineLen.
func (u *UnresolvedBytes) InlineLen() int {
	return len(u.inline)
}

// ChunkCount returns the number of heap chunks recorded in encounter order.
func (u *UnresolvedBytes) ChunkCount() int {
	return len(u.chunks)
}

// TotalLen returns the size of the final resolved buffer.
func (u *UnresolvedBytes) TotalLen() int {
	n := len(u.inline)
	for _, c := range u.chunks {
		n += len(c.data)
	}
	return n
}

// Resolve lays the heap chunks out consecutively after the inline region,
// patches every placeholder pointer with its absolute offset (relative to
// baseOffset, where the caller will place the inline region), and returns
// the concatenated bytes.
//
// The receiver is not consumed: resolving again at a different base yields a
// correct layout without re-encoding. The relative layout between chunks
// never varies with baseOffset.
//
// Failure is a broken codec invariant, never a property of the token that
// was encoded; errors carry KindInternal.
func (u *UnresolvedBytes) Resolve(baseOffset uint64) ([]byte, error) {
	out := make([]byte, 0, u.TotalLen())
	out = append(out, u.inline...)

	starts := make([]uint64, len(u.chunks))
	off := uint64(len(u.inline))
	for i, c := range u.chunks {
		starts[i] = off
		out = append(out, c.data...)
		off += uint64(len(c.data))
	}

	for i, c := range u.chunks {
		abs, ok := wire.SafeAdd(baseOffset, starts[i])
		if !ok {
			return nil, errors.Internal(errors.PhaseResolve,
				"chunk %d offset overflows pointer width at base %d", i, baseOffset)
		}

		patchAt := c.patchOffset
		if c.patchRegion != inlineRegion {
			if c.patchRegion < 0 || c.patchRegion >= i {
				return nil, errors.Internal(errors.PhaseResolve,
					"chunk %d header recorded in region %d, which does not precede it", i, c.patchRegion)
			}
			patchAt += starts[c.patchRegion]
		}
		if !wire.InRange(uint64(len(out)), patchAt, abi.WordSize) {
			return nil, errors.Internal(errors.PhaseResolve,
				"chunk %d header at %d is out of bounds", i, patchAt)
		}

		wire.PutU64(out[patchAt:], abs)
	}

	return out, nil
}
