// Package abi defines the codec's shared vocabulary: type descriptors and
// tokens.
//
// A Type describes the wire-level shape of a value. Descriptors are built
// once, typically by the ABI compilation step upstream of this module, and
// are immutable and safe to share across goroutines for the lifetime of a
// binding.
//
// A Token is the in-memory representation of an actual value, mirroring the
// descriptor's shape but carrying data. Tokens are created fresh per encode
// or decode call.
//
// Both are single kind-discriminated structs rather than interface
// hierarchies: the codec switches exhaustively on Kind, so adding a wire
// shape means one new Kind constant and one new arm in the encoder and
// decoder.
//
// # Heap Kinds
//
// Vector, Bytes, RawSlice, and StringSlice are heap-allocated: their inline
// footprint is a fixed-width (pointer, capacity, length) or (pointer,
// length) header, and their data lives elsewhere in the transaction's data
// section. Type.IsHeap reports this; Type.InlineWidth returns the header
// width for heap kinds and the full encoded width for everything else.
package abi
