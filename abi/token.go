package abi

import (
	"bytes"
	"math/big"
)

// Token is the in-memory representation of a decoded or to-be-encoded value.
// Like Type, it is kind-discriminated; which fields carry data depends on
// Kind:
//
//	Bool                     Bool
//	U8..U64                  U64
//	U128, U256               Big
//	B256                     B256
//	String, StringSlice      Str
//	Bytes, RawSlice          Raw
//	Array, Vector,           Elems
//	Tuple, Struct            Elems (declared order)
//	Enum                     Variant, Payload
//
// A Token does not carry its descriptor; the Type passed alongside it to the
// encoder is authoritative, and structural disagreement is an encode error.
type Token struct {
	Big     *big.Int
	Payload *Token
	Str     string
	Raw     []byte
	Elems   []Token
	U64     uint64
	Variant uint64
	B256    [32]byte
	Bool    bool
	Kind    Kind
}

// Bool returns a bool token.
func Bool(v bool) Token { return Token{Kind: KindBool, Bool: v} }

// U8 returns a u8 token.
func U8(v uint8) Token { return Token{Kind: KindU8, U64: uint64(v)} }

// U16 returns a u16 token.
func U16(v uint16) Token { return Token{Kind: KindU16, U64: uint64(v)} }

// U32 returns a u32 token.
func U32(v uint32) Token { return Token{Kind: KindU32, U64: uint64(v)} }

// U64 returns a u64 token.
func U64(v uint64) Token { return Token{Kind: KindU64, U64: v} }

// U128 returns a u128 token. The value must be non-negative and fit 128 bits;
// range is checked at encode time, not here.
func U128(v *big.Int) Token { return Token{Kind: KindU128, Big: v} }

// U256 returns a u256 token. Range is checked at encode time.
func U256(v *big.Int) Token { return Token{Kind: KindU256, Big: v} }

// B256Of returns a 32-byte hash token.
func B256Of(v [32]byte) Token { return Token{Kind: KindB256, B256: v} }

// Unit returns the zero-width unit token.
func Unit() Token { return Token{Kind: KindUnit} }

// String returns a fixed-length ASCII string token.
func String(s string) Token { return Token{Kind: KindString, Str: s} }

// StringSlice returns a heap-allocated string token.
func StringSlice(s string) Token { return Token{Kind: KindStringSlice, Str: s} }

// Bytes returns a heap-allocated byte sequence token.
func Bytes(b []byte) Token { return Token{Kind: KindBytes, Raw: b} }

// RawSlice returns a heap-allocated raw span token.
func RawSlice(b []byte) Token { return Token{Kind: KindRawSlice, Raw: b} }

// Array returns a fixed-length array token.
func Array(elems ...Token) Token { return Token{Kind: KindArray, Elems: elems} }

// Vector returns a heap-allocated dynamic sequence token.
func Vector(elems ...Token) Token { return Token{Kind: KindVector, Elems: elems} }

// Tuple returns a tuple token.
func Tuple(elems ...Token) Token { return Token{Kind: KindTuple, Elems: elems} }

// Struct returns a struct token with fields in declared order.
func Struct(fields ...Token) Token { return Token{Kind: KindStruct, Elems: fields} }

// Enum returns an enum token selecting the given variant index.
func Enum(variant uint64, payload Token) Token {
	return Token{Kind: KindEnum, Variant: variant, Payload: &payload}
}

// Equal reports deep structural and value equality.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindBool:
		return t.Bool == o.Bool
	case KindU8, KindU16, KindU32, KindU64:
		return t.U64 == o.U64
	case KindU128, KindU256:
		if t.Big == nil || o.Big == nil {
			return t.Big == o.Big
		}
		return t.Big.Cmp(o.Big) == 0
	case KindB256:
		return t.B256 == o.B256
	case KindUnit:
		return true
	case KindString, KindStringSlice:
		return t.Str == o.Str
	case KindBytes, KindRawSlice:
		return bytes.Equal(t.Raw, o.Raw)
	case KindArray, KindVector, KindTuple, KindStruct:
		if len(t.Elems) != len(o.Elems) {
			return false
		}
		for i := range t.Elems {
			if !t.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	case KindEnum:
		if t.Variant != o.Variant {
			return false
		}
		if t.Payload == nil || o.Payload == nil {
			return t.Payload == o.Payload
		}
		return t.Payload.Equal(*o.Payload)
	default:
		return false
	}
}
