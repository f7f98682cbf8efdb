package codec

import (
	"strconv"

	"github.com/embervm/ember-go/abi"
	"github.com/embervm/ember-go/codec/internal/wire"
	"github.com/embervm/ember-go/errors"
)

// Encode converts a token into relocatable wire bytes driven by the given
// descriptor. The token's shape must agree with the descriptor; disagreement
// is a type_mismatch error, never a panic.
//
// Heap-allocated values produce placeholder headers in their parent region
// and append their data as chunks, in encounter order, to one flat list;
// call Resolve on the result once the placement offset is known.
func Encode(typ *abi.Type, tok abi.Token, cfg EncoderConfig) (*UnresolvedBytes, error) {
	st := &encodeState{cfg: cfg, out: &UnresolvedBytes{}}
	if err := st.encode(typ, tok, inlineRegion, 0, nil); err != nil {
		return nil, err
	}
	return st.out, nil
}

type encodeState struct {
	out    *UnresolvedBytes
	cfg    EncoderConfig
	tokens uint64
}

// grow appends bytes to a region's buffer. Regions are append-only; a
// nested chunk is always completed before its parent region is written
// again, so sequential appends per region preserve declared order.
func (st *encodeState) grow(region int, b []byte) {
	if region == inlineRegion {
		st.out.inline = append(st.out.inline, b...)
		return
	}
	st.out.chunks[region].data = append(st.out.chunks[region].data, b...)
}

func (st *encodeState) regionLen(region int) uint64 {
	if region == inlineRegion {
		return uint64(len(st.out.inline))
	}
	return uint64(len(st.out.chunks[region].data))
}

func (st *encodeState) spend(path []string) error {
	st.tokens++
	if st.tokens > st.cfg.MaxTokens {
		return errors.TokenLimit(errors.PhaseEncode, path, st.cfg.MaxTokens)
	}
	return nil
}

func (st *encodeState) encode(typ *abi.Type, tok abi.Token, region int, depth uint64, path []string) error {
	if depth > st.cfg.MaxDepth {
		return errors.DepthLimit(errors.PhaseEncode, path, st.cfg.MaxDepth)
	}
	if err := st.spend(path); err != nil {
		return err
	}
	if tok.Kind != typ.Kind {
		return errors.TypeMismatch(errors.PhaseEncode, path, tok.Kind.String(), typ.String())
	}

	switch typ.Kind {
	case abi.KindBool:
		v := byte(0)
		if tok.Bool {
			v = 1
		}
		st.grow(region, []byte{v})
		return nil

	case abi.KindU8:
		if tok.U64 > 0xff {
			return errors.Overflow(errors.PhaseEncode, path, tok.U64, "u8")
		}
		st.grow(region, []byte{byte(tok.U64)})
		return nil

	case abi.KindU16:
		if tok.U64 > 0xffff {
			return errors.Overflow(errors.PhaseEncode, path, tok.U64, "u16")
		}
		st.grow(region, wire.AppendU16(nil, uint16(tok.U64)))
		return nil

	case abi.KindU32:
		if tok.U64 > 0xffffffff {
			return errors.Overflow(errors.PhaseEncode, path, tok.U64, "u32")
		}
		st.grow(region, wire.AppendU32(nil, uint32(tok.U64)))
		return nil

	case abi.KindU64:
		st.grow(region, wire.AppendU64(nil, tok.U64))
		return nil

	case abi.KindU128:
		return st.encodeBig(tok, region, 16, "u128", path)

	case abi.KindU256:
		return st.encodeBig(tok, region, 32, "u256", path)

	case abi.KindB256:
		st.grow(region, tok.B256[:])
		return nil

	case abi.KindUnit:
		return nil

	case abi.KindString:
		if uint64(len(tok.Str)) != typ.Len {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				AbiType(typ.String()).
				Detail("string length %d, descriptor wants %d", len(tok.Str), typ.Len).
				Build()
		}
		data := []byte(tok.Str)
		if !wire.IsASCII(data) {
			return errors.InvalidASCII(errors.PhaseEncode, path, errors.NoOffset, data)
		}
		st.grow(region, data)
		return nil

	case abi.KindArray:
		if uint64(len(tok.Elems)) != typ.Len {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				AbiType(typ.String()).
				Detail("array has %d elements, descriptor wants %d", len(tok.Elems), typ.Len).
				Build()
		}
		for i := range tok.Elems {
			if err := st.encode(typ.Elem, tok.Elems[i], region, depth+1, child(path, index(i))); err != nil {
				return err
			}
		}
		return nil

	case abi.KindTuple, abi.KindStruct:
		if len(tok.Elems) != len(typ.Fields) {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				AbiType(typ.String()).
				Detail("%d members supplied, descriptor wants %d", len(tok.Elems), len(typ.Fields)).
				Build()
		}
		for i, f := range typ.Fields {
			name := f.Name
			if name == "" {
				name = index(i)
			}
			if err := st.encode(f.Type, tok.Elems[i], region, depth+1, child(path, name)); err != nil {
				return err
			}
		}
		return nil

	case abi.KindEnum:
		return st.encodeEnum(typ, tok, region, depth, path)

	case abi.KindVector:
		return st.encodeVector(typ, tok, region, depth, path)

	case abi.KindBytes:
		return st.encodeHeapBytes(tok.Raw, region, true, path)

	case abi.KindRawSlice:
		return st.encodeHeapBytes(tok.Raw, region, false, path)

	case abi.KindStringSlice:
		data := []byte(tok.Str)
		if !wire.IsASCII(data) {
			return errors.InvalidASCII(errors.PhaseEncode, path, errors.NoOffset, data)
		}
		return st.encodeHeapBytes(data, region, false, path)

	default:
		return errors.Unsupported(errors.PhaseEncode, "type kind: "+typ.Kind.String())
	}
}

func (st *encodeState) encodeBig(tok abi.Token, region int, width int, name string, path []string) error {
	if tok.Big == nil {
		return errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Path(path...).
			AbiType(name).
			Detail("nil big integer").
			Build()
	}
	if tok.Big.Sign() < 0 || tok.Big.BitLen() > width*8 {
		return errors.Overflow(errors.PhaseEncode, path, tok.Big, name)
	}
	buf := make([]byte, width)
	tok.Big.FillBytes(buf)
	st.grow(region, buf)
	return nil
}

// encodeEnum writes the discriminant, the selected variant's payload, and
// zero padding up to the maximum variant width. The padding width comes from
// the descriptor, never from the token.
func (st *encodeState) encodeEnum(typ *abi.Type, tok abi.Token, region int, depth uint64, path []string) error {
	if tok.Variant >= uint64(len(typ.Fields)) {
		return errors.New(errors.PhaseEncode, errors.KindInvalidDiscriminant).
			Path(path...).
			AbiType(typ.String()).
			Detail("variant %d out of range (max %d)", tok.Variant, len(typ.Fields)-1).
			Build()
	}
	if tok.Payload == nil {
		return errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Path(path...).
			AbiType(typ.String()).
			Detail("enum token has no payload").
			Build()
	}

	variant := typ.Fields[tok.Variant]
	st.grow(region, wire.AppendU64(nil, tok.Variant))

	name := variant.Name
	if name == "" {
		name = index(int(tok.Variant))
	}
	if err := st.encode(variant.Type, *tok.Payload, region, depth+1, child(path, name)); err != nil {
		return err
	}

	if pad := typ.MaxVariantWidth() - variant.Type.InlineWidth(); pad > 0 {
		st.grow(region, make([]byte, pad))
	}
	return nil
}

// encodeVector writes a placeholder (ptr, cap, len) header, then encodes the
// elements into a fresh chunk. Nested heap elements append their own chunks
// to the same flat list in encounter order.
func (st *encodeState) encodeVector(typ *abi.Type, tok abi.Token, region int, depth uint64, path []string) error {
	n := uint64(len(tok.Elems))
	headerAt := st.regionLen(region)

	header := make([]byte, 0, abi.VecHeaderSize)
	header = wire.AppendU64(header, 0) // ptr, patched by Resolve
	header = wire.AppendU64(header, n) // cap == len on encode
	header = wire.AppendU64(header, n)
	st.grow(region, header)

	chunk := len(st.out.chunks)
	st.out.chunks = append(st.out.chunks, heapChunk{
		patchRegion: region,
		patchOffset: headerAt,
	})

	for i := range tok.Elems {
		if err := st.encode(typ.Elem, tok.Elems[i], chunk, depth+1, child(path, index(i))); err != nil {
			return err
		}
	}
	return nil
}

// encodeHeapBytes handles the raw heap kinds: bytes (full ptr/cap/len
// header) and raw/string slices (ptr/len header).
func (st *encodeState) encodeHeapBytes(data []byte, region int, withCap bool, path []string) error {
	n := uint64(len(data))
	headerAt := st.regionLen(region)

	size := abi.SliceHeaderSize
	if withCap {
		size = abi.VecHeaderSize
	}
	header := make([]byte, 0, size)
	header = wire.AppendU64(header, 0) // ptr, patched by Resolve
	if withCap {
		header = wire.AppendU64(header, n)
	}
	header = wire.AppendU64(header, n)
	st.grow(region, header)

	st.out.chunks = append(st.out.chunks, heapChunk{
		data:        append([]byte(nil), data...),
		patchRegion: region,
		patchOffset: headerAt,
	})
	return nil
}

func child(path []string, name string) []string {
	return append(append([]string{}, path...), name)
}

func index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
