package bindings

import (
	"testing"

	"github.com/embervm/ember-go/abi"
	"github.com/embervm/ember-go/codec"
)

func TestCallCodec_EncodeArgs(t *testing.T) {
	cc := NewCallCodec([]*abi.Type{abi.U64Type, abi.VectorOf(abi.U8Type)}, abi.BoolType)

	u, err := cc.EncodeArgs(uint64(7), []uint8{1, 2, 3})
	if err != nil {
		t.Fatalf("EncodeArgs: %v", err)
	}

	// args encode as a tuple: u64 + vec header inline, one heap chunk
	if u.InlineLen() != 8+abi.VecHeaderSize {
		t.Errorf("inline = %d, want %d", u.InlineLen(), 8+abi.VecHeaderSize)
	}
	if u.ChunkCount() != 1 {
		t.Errorf("chunks = %d, want 1", u.ChunkCount())
	}

	// the resolved bytes decode back to the argument tuple
	data, err := u.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	tup := abi.TupleOf(abi.U64Type, abi.VectorOf(abi.U8Type))
	tok, err := codec.Decode(tup, data, codec.DefaultDecoderConfig())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := abi.Tuple(abi.U64(7), abi.Vector(abi.U8(1), abi.U8(2), abi.U8(3)))
	if !tok.Equal(want) {
		t.Errorf("decoded args = %+v, want %+v", tok, want)
	}
}

func TestCallCodec_ArgCountMismatch(t *testing.T) {
	cc := NewCallCodec([]*abi.Type{abi.U64Type}, nil)
	if _, err := cc.EncodeArgs(); err == nil {
		t.Error("missing argument should fail")
	}
	if _, err := cc.EncodeArgs(uint64(1), uint64(2)); err == nil {
		t.Error("extra argument should fail")
	}
}

func TestCallCodec_DecodeReturn(t *testing.T) {
	cc := NewCallCodec(nil, pointType)

	u, err := codec.Encode(pointType, abi.Struct(abi.U64(3), abi.U64(4)), codec.DefaultEncoderConfig())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data, err := u.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var p point
	if err := cc.DecodeReturn(data, &p); err != nil {
		t.Fatalf("DecodeReturn: %v", err)
	}
	if p != (point{X: 3, Y: 4}) {
		t.Errorf("point = %+v", p)
	}
}

func TestCallCodec_DecodeLog(t *testing.T) {
	cc := NewCallCodec(nil, nil)
	logType := abi.StructOf("Transfer",
		abi.Field{Name: "amount", Type: abi.U64Type},
		abi.Field{Name: "memo", Type: abi.StringSliceType},
	)

	u, err := codec.Encode(logType,
		abi.Struct(abi.U64(500), abi.StringSlice("refund")),
		codec.DefaultEncoderConfig())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data, err := u.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var out struct {
		Amount uint64
		Memo   string
	}
	if err := cc.DecodeLog(logType, data, &out); err != nil {
		t.Fatalf("DecodeLog: %v", err)
	}
	if out.Amount != 500 || out.Memo != "refund" {
		t.Errorf("log = %+v", out)
	}
}

func TestCallCodec_LimitsArePerCodec(t *testing.T) {
	cc := NewCallCodec(nil, abi.VectorOf(abi.U8Type))
	cc.Decoder.MaxTokens = 2

	u, err := codec.Encode(abi.VectorOf(abi.U8Type),
		abi.Vector(abi.U8(1), abi.U8(2), abi.U8(3)),
		codec.DefaultEncoderConfig())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data, err := u.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var out []uint8
	if err := cc.DecodeReturn(data, &out); err == nil {
		t.Error("expected token limit to trip")
	}
}
