package codec

import (
	stderrors "errors"
	"math/big"
	"testing"

	"github.com/embervm/ember-go/abi"
	"github.com/embervm/ember-go/errors"
)

func be16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }

func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func be64(v uint64) []byte {
	return []byte{
		byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
	}
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestDecode_Primitives(t *testing.T) {
	tests := []struct {
		typ  *abi.Type
		name string
		data []byte
		want abi.Token
	}{
		{abi.BoolType, "bool true", []byte{1}, abi.Bool(true)},
		{abi.BoolType, "bool false", []byte{0}, abi.Bool(false)},
		{abi.U8Type, "u8", []byte{0xab}, abi.U8(0xab)},
		{abi.U16Type, "u16", be16(0x0102), abi.U16(0x0102)},
		{abi.U32Type, "u32", be32(7), abi.U32(7)},
		{abi.U64Type, "u64", be64(1 << 40), abi.U64(1 << 40)},
		{abi.UnitType, "unit", nil, abi.Unit()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.typ, tt.data, DefaultDecoderConfig())
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Decode = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecode_WideIntegers(t *testing.T) {
	// u128: 16 bytes big-endian
	data := cat(make([]byte, 14), []byte{0x01, 0x02})
	got, err := Decode(abi.U128Type, data, DefaultDecoderConfig())
	if err != nil {
		t.Fatalf("Decode u128: %v", err)
	}
	if got.Big.Cmp(big.NewInt(0x0102)) != 0 {
		t.Errorf("u128 = %v, want 258", got.Big)
	}

	// u256: 32 bytes big-endian
	data = cat(make([]byte, 31), []byte{0x2a})
	got, err = Decode(abi.U256Type, data, DefaultDecoderConfig())
	if err != nil {
		t.Fatalf("Decode u256: %v", err)
	}
	if got.Big.Cmp(big.NewInt(42)) != 0 {
		t.Errorf("u256 = %v, want 42", got.Big)
	}
}

func TestDecode_StructMembersAreConsecutive(t *testing.T) {
	typ := abi.StructOf("Pair",
		abi.Field{Name: "a", Type: abi.U8Type},
		abi.Field{Name: "b", Type: abi.U16Type},
		abi.Field{Name: "c", Type: abi.U32Type},
	)
	data := cat([]byte{0x01}, be16(0x0203), be32(0x04050607))

	got, err := Decode(typ, data, DefaultDecoderConfig())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := abi.Struct(abi.U8(1), abi.U16(0x0203), abi.U32(0x04050607))
	if !got.Equal(want) {
		t.Errorf("Decode = %+v, want %+v", got, want)
	}
}

func TestDecode_FixedString(t *testing.T) {
	typ := abi.StringOf(5)

	got, err := Decode(typ, []byte("hello"), DefaultDecoderConfig())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Str != "hello" {
		t.Errorf("Str = %q", got.Str)
	}

	_, err = Decode(typ, []byte{'h', 'e', 0xc3, 0xa9, 'o'}, DefaultDecoderConfig())
	if !stderrors.Is(err, errors.Decode(errors.KindInvalidASCII)) {
		t.Errorf("expected invalid_ascii, got %v", err)
	}
}

func TestDecode_Enum(t *testing.T) {
	// enum { Small(u32), Big(b256) }: widest variant 32 bytes
	typ := abi.EnumOf("E",
		abi.Field{Name: "Small", Type: abi.U32Type},
		abi.Field{Name: "Big", Type: abi.B256Type},
	)

	t.Run("selected variant narrower than padding", func(t *testing.T) {
		// discriminant 0, payload u32=5, then 28 bytes of padding
		data := cat(be64(0), be32(5), make([]byte, 28))
		if uint64(len(data)) != typ.InlineWidth() {
			t.Fatalf("fixture is %d bytes, enum width %d", len(data), typ.InlineWidth())
		}

		got, err := Decode(typ, data, DefaultDecoderConfig())
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !got.Equal(abi.Enum(0, abi.U32(5))) {
			t.Errorf("Decode = %+v", got)
		}
	})

	t.Run("padding is not read as sibling data", func(t *testing.T) {
		// enum followed by a u8 sibling inside a struct; the cursor must
		// advance by the full enum width, landing on 0x99 and not on the
		// padding.
		parent := abi.StructOf("S",
			abi.Field{Name: "e", Type: typ},
			abi.Field{Name: "tail", Type: abi.U8Type},
		)
		data := cat(be64(0), be32(5), make([]byte, 28), []byte{0x99})

		got, err := Decode(parent, data, DefaultDecoderConfig())
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got.Elems[1].U64 != 0x99 {
			t.Errorf("tail = %#x, want 0x99", got.Elems[1].U64)
		}
	})

	t.Run("invalid discriminant", func(t *testing.T) {
		data := cat(be64(7), make([]byte, 32))
		_, err := Decode(typ, data, DefaultDecoderConfig())
		if !stderrors.Is(err, errors.Decode(errors.KindInvalidDiscriminant)) {
			t.Errorf("expected invalid_discriminant, got %v", err)
		}
	})

	t.Run("truncated padding is an eof", func(t *testing.T) {
		data := cat(be64(0), be32(5), make([]byte, 10))
		_, err := Decode(typ, data, DefaultDecoderConfig())
		if !stderrors.Is(err, errors.Decode(errors.KindUnexpectedEOF)) {
			t.Errorf("expected unexpected_eof, got %v", err)
		}
	})

	t.Run("unit variant", func(t *testing.T) {
		units := abi.EnumOf("Status",
			abi.Field{Name: "Idle", Type: abi.UnitType},
			abi.Field{Name: "Code", Type: abi.U32Type},
		)
		data := cat(be64(0), make([]byte, 4))
		got, err := Decode(units, data, DefaultDecoderConfig())
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !got.Equal(abi.Enum(0, abi.Unit())) {
			t.Errorf("Decode = %+v", got)
		}
	})
}

func TestDecode_Vector(t *testing.T) {
	typ := abi.VectorOf(abi.U8Type)
	// header (ptr=24, cap=3, len=3) followed immediately by the data
	data := cat(be64(24), be64(3), be64(3), []byte{1, 2, 3})

	got, err := Decode(typ, data, DefaultDecoderConfig())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Equal(abi.Vector(abi.U8(1), abi.U8(2), abi.U8(3))) {
		t.Errorf("Decode = %+v", got)
	}
}

func TestDecode_VectorPointerIsBufferOffset(t *testing.T) {
	typ := abi.VectorOf(abi.U16Type)
	// data placed before the header region is still reachable: the pointer
	// is an offset into the buffer, not a forward distance.
	data := cat(be16(0x0a0b), be16(0x0c0d), be64(0), be64(2), be64(2))

	got, err := DecodeAt(typ, data, 4, DefaultDecoderConfig())
	if err != nil {
		t.Fatalf("DecodeAt: %v", err)
	}
	if !got.Equal(abi.Vector(abi.U16(0x0a0b), abi.U16(0x0c0d))) {
		t.Errorf("Decode = %+v", got)
	}
}

func TestDecode_HeapSliceKinds(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		data := cat(be64(24), be64(2), be64(2), []byte{0xde, 0xad})
		got, err := Decode(abi.BytesType, data, DefaultDecoderConfig())
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !got.Equal(abi.Bytes([]byte{0xde, 0xad})) {
			t.Errorf("Decode = %+v", got)
		}
	})

	t.Run("raw slice has no capacity word", func(t *testing.T) {
		data := cat(be64(16), be64(3), []byte{7, 8, 9})
		got, err := Decode(abi.RawSliceType, data, DefaultDecoderConfig())
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !got.Equal(abi.RawSlice([]byte{7, 8, 9})) {
			t.Errorf("Decode = %+v", got)
		}
	})

	t.Run("string slice validates ascii", func(t *testing.T) {
		data := cat(be64(16), be64(2), []byte{0xff, 0xfe})
		_, err := Decode(abi.StringSliceType, data, DefaultDecoderConfig())
		if !stderrors.Is(err, errors.Decode(errors.KindInvalidASCII)) {
			t.Errorf("expected invalid_ascii, got %v", err)
		}
	})

	t.Run("decoded bytes do not alias the input", func(t *testing.T) {
		data := cat(be64(24), be64(1), be64(1), []byte{0x11})
		got, err := Decode(abi.BytesType, data, DefaultDecoderConfig())
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		data[24] = 0x22
		if got.Raw[0] != 0x11 {
			t.Error("token aliases the input buffer")
		}
	})
}

func TestDecode_UnexpectedEOF(t *testing.T) {
	tests := []struct {
		typ  *abi.Type
		name string
		data []byte
	}{
		{abi.U64Type, "short u64", []byte{1, 2, 3}},
		{abi.B256Type, "short b256", make([]byte, 31)},
		{abi.StringOf(4), "short string", []byte("abc")},
		{abi.VectorOf(abi.U8Type), "short header", make([]byte, 23)},
		{abi.RawSliceType, "short slice header", make([]byte, 15)},
		{
			abi.VectorOf(abi.U8Type),
			"pointer past end",
			cat(be64(1000), be64(4), be64(4)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.typ, tt.data, DefaultDecoderConfig())
			if !stderrors.Is(err, errors.Decode(errors.KindUnexpectedEOF)) {
				t.Errorf("expected unexpected_eof, got %v", err)
			}
		})
	}
}

func TestDecode_ErrorCarriesPathAndOffset(t *testing.T) {
	typ := abi.StructOf("Outer",
		abi.Field{Name: "pad", Type: abi.U32Type},
		abi.Field{Name: "status", Type: abi.EnumOf("Status",
			abi.Field{Name: "Ok", Type: abi.UnitType},
		)},
	)
	data := cat(be32(0), be64(5))

	_, err := Decode(typ, data, DefaultDecoderConfig())
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if e.Kind != errors.KindInvalidDiscriminant {
		t.Fatalf("kind = %s", e.Kind)
	}
	if len(e.Path) == 0 || e.Path[len(e.Path)-1] != "status" {
		t.Errorf("path = %v, want trailing \"status\"", e.Path)
	}
	if e.Offset != 4 {
		t.Errorf("offset = %d, want 4", e.Offset)
	}
}

func TestDecode_InputNotMutated(t *testing.T) {
	data := cat(be64(24), be64(2), be64(2), []byte{1, 2})
	snapshot := append([]byte(nil), data...)

	if _, err := Decode(abi.VectorOf(abi.U8Type), data, DefaultDecoderConfig()); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range data {
		if data[i] != snapshot[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}
