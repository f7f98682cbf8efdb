package codec

import (
	"bytes"
	stderrors "errors"
	"math/big"
	"testing"

	"github.com/embervm/ember-go/abi"
	"github.com/embervm/ember-go/errors"
)

func mustEncode(t *testing.T, typ *abi.Type, tok abi.Token) *UnresolvedBytes {
	t.Helper()
	u, err := Encode(typ, tok, DefaultEncoderConfig())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return u
}

func mustResolve(t *testing.T, u *UnresolvedBytes, base uint64) []byte {
	t.Helper()
	data, err := u.Resolve(base)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return data
}

func TestEncode_Primitives(t *testing.T) {
	tests := []struct {
		typ  *abi.Type
		name string
		tok  abi.Token
		want []byte
	}{
		{abi.BoolType, "bool", abi.Bool(true), []byte{1}},
		{abi.U8Type, "u8", abi.U8(0xab), []byte{0xab}},
		{abi.U16Type, "u16", abi.U16(0x0102), be16(0x0102)},
		{abi.U32Type, "u32", abi.U32(7), be32(7)},
		{abi.U64Type, "u64", abi.U64(1 << 40), be64(1 << 40)},
		{abi.UnitType, "unit", abi.Unit(), nil},
		{
			abi.U128Type, "u128",
			abi.U128(big.NewInt(0x0102)),
			cat(make([]byte, 14), []byte{1, 2}),
		},
		{
			abi.U256Type, "u256",
			abi.U256(big.NewInt(42)),
			cat(make([]byte, 31), []byte{42}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := mustEncode(t, tt.typ, tt.tok)
			if u.ChunkCount() != 0 {
				t.Fatalf("primitive produced %d chunks", u.ChunkCount())
			}
			got := mustResolve(t, u, 0)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("bytes = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestEncode_InlineSiblingsHaveNoPadding(t *testing.T) {
	typ := abi.StructOf("Packed",
		abi.Field{Name: "a", Type: abi.U8Type},
		abi.Field{Name: "b", Type: abi.U16Type},
		abi.Field{Name: "c", Type: abi.BoolType},
	)
	tok := abi.Struct(abi.U8(1), abi.U16(0x0203), abi.Bool(true))

	got := mustResolve(t, mustEncode(t, typ, tok), 0)
	want := []byte{0x01, 0x02, 0x03, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("bytes = %x, want %x", got, want)
	}
}

func TestEncode_EnumPadsToWidestVariant(t *testing.T) {
	typ := abi.EnumOf("E",
		abi.Field{Name: "Small", Type: abi.U32Type},
		abi.Field{Name: "Big", Type: abi.B256Type},
	)

	got := mustResolve(t, mustEncode(t, typ, abi.Enum(0, abi.U32(5))), 0)

	want := cat(be64(0), be32(5), make([]byte, 28))
	if !bytes.Equal(got, want) {
		t.Errorf("bytes = %x, want %x", got, want)
	}
	if uint64(len(got)) != typ.InlineWidth() {
		t.Errorf("encoded %d bytes, enum width %d", len(got), typ.InlineWidth())
	}
}

func TestEncode_EnumWidestVariantHasNoPadding(t *testing.T) {
	typ := abi.EnumOf("E",
		abi.Field{Name: "Small", Type: abi.U32Type},
		abi.Field{Name: "Big", Type: abi.B256Type},
	)
	var h [32]byte
	h[0] = 0xaa

	got := mustResolve(t, mustEncode(t, typ, abi.Enum(1, abi.B256Of(h))), 0)
	want := cat(be64(1), h[:])
	if !bytes.Equal(got, want) {
		t.Errorf("bytes = %x, want %x", got, want)
	}
}

func TestEncode_VectorHeaderAndChunk(t *testing.T) {
	typ := abi.VectorOf(abi.U8Type)
	u := mustEncode(t, typ, abi.Vector(abi.U8(1), abi.U8(2), abi.U8(3)))

	if u.InlineLen() != abi.VecHeaderSize {
		t.Errorf("inline = %d bytes, want %d", u.InlineLen(), abi.VecHeaderSize)
	}
	if u.ChunkCount() != 1 {
		t.Fatalf("chunks = %d, want 1", u.ChunkCount())
	}

	got := mustResolve(t, u, 0)
	// ptr = inline length, cap = len = 3, data immediately after
	want := cat(be64(abi.VecHeaderSize), be64(3), be64(3), []byte{1, 2, 3})
	if !bytes.Equal(got, want) {
		t.Errorf("bytes = %x, want %x", got, want)
	}
}

func TestEncode_NestedVectorsFlattenChunkList(t *testing.T) {
	typ := abi.VectorOf(abi.VectorOf(abi.U8Type))
	tok := abi.Vector(
		abi.Vector(abi.U8(1)),
		abi.Vector(abi.U8(2), abi.U8(3)),
	)

	u := mustEncode(t, typ, tok)
	// outer elements chunk + one chunk per inner vector
	if u.ChunkCount() != 3 {
		t.Fatalf("chunks = %d, want 3", u.ChunkCount())
	}

	got := mustResolve(t, u, 0)
	// layout: outer header (24) | outer elems: two inner headers (48) |
	// inner data [1] at 72 | inner data [2 3] at 73
	want := cat(
		be64(24), be64(2), be64(2),
		be64(72), be64(1), be64(1),
		be64(73), be64(2), be64(2),
		[]byte{1},
		[]byte{2, 3},
	)
	if !bytes.Equal(got, want) {
		t.Errorf("bytes = %x\nwant    %x", got, want)
	}
}

func TestEncode_RawSliceHeaderHasNoCapacity(t *testing.T) {
	u := mustEncode(t, abi.RawSliceType, abi.RawSlice([]byte{7, 8}))
	if u.InlineLen() != abi.SliceHeaderSize {
		t.Errorf("inline = %d, want %d", u.InlineLen(), abi.SliceHeaderSize)
	}

	got := mustResolve(t, u, 0)
	want := cat(be64(abi.SliceHeaderSize), be64(2), []byte{7, 8})
	if !bytes.Equal(got, want) {
		t.Errorf("bytes = %x, want %x", got, want)
	}
}

func TestEncode_TypeMismatch(t *testing.T) {
	tests := []struct {
		typ  *abi.Type
		name string
		tok  abi.Token
	}{
		{abi.U32Type, "kind mismatch", abi.U64(1)},
		{abi.StringOf(4), "string length mismatch", abi.String("abcde")},
		{abi.ArrayOf(abi.U8Type, 2), "array length mismatch", abi.Array(abi.U8(1))},
		{
			abi.StructOf("S", abi.Field{Name: "a", Type: abi.U8Type}),
			"member count mismatch",
			abi.Struct(abi.U8(1), abi.U8(2)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.typ, tt.tok, DefaultEncoderConfig())
			if !stderrors.Is(err, errors.Encode(errors.KindTypeMismatch)) {
				t.Errorf("expected type_mismatch, got %v", err)
			}
		})
	}
}

func TestEncode_Overflow(t *testing.T) {
	tests := []struct {
		typ  *abi.Type
		name string
		tok  abi.Token
	}{
		{abi.U8Type, "u8 overflow", abi.Token{Kind: abi.KindU8, U64: 256}},
		{abi.U16Type, "u16 overflow", abi.Token{Kind: abi.KindU16, U64: 1 << 16}},
		{abi.U32Type, "u32 overflow", abi.Token{Kind: abi.KindU32, U64: 1 << 32}},
		{
			abi.U128Type, "u128 overflow",
			abi.U128(new(big.Int).Lsh(big.NewInt(1), 128)),
		},
		{abi.U128Type, "u128 negative", abi.U128(big.NewInt(-1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.typ, tt.tok, DefaultEncoderConfig())
			if !stderrors.Is(err, errors.Encode(errors.KindOverflow)) {
				t.Errorf("expected overflow, got %v", err)
			}
		})
	}
}

func TestEncode_InvalidVariant(t *testing.T) {
	typ := abi.EnumOf("E", abi.Field{Name: "Only", Type: abi.UnitType})
	_, err := Encode(typ, abi.Enum(3, abi.Unit()), DefaultEncoderConfig())
	if !stderrors.Is(err, errors.Encode(errors.KindInvalidDiscriminant)) {
		t.Errorf("expected invalid_discriminant, got %v", err)
	}
}

func TestEncode_NonASCIIString(t *testing.T) {
	_, err := Encode(abi.StringSliceType, abi.StringSlice("caf\xc3\xa9"), DefaultEncoderConfig())
	if !stderrors.Is(err, errors.Encode(errors.KindInvalidASCII)) {
		t.Errorf("expected invalid_ascii, got %v", err)
	}
}

func TestEncode_IsDeterministic(t *testing.T) {
	typ := abi.StructOf("S",
		abi.Field{Name: "a", Type: abi.U32Type},
		abi.Field{Name: "b", Type: abi.VectorOf(abi.U8Type)},
	)
	tok := abi.Struct(abi.U32(7), abi.Vector(abi.U8(1), abi.U8(2)))

	first := mustResolve(t, mustEncode(t, typ, tok), 0)
	second := mustResolve(t, mustEncode(t, typ, tok), 0)
	if !bytes.Equal(first, second) {
		t.Error("same token encoded to different bytes")
	}
}
