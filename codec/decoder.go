package codec

import (
	"math/big"

	"github.com/embervm/ember-go/abi"
	"github.com/embervm/ember-go/codec/internal/wire"
	"github.com/embervm/ember-go/errors"
)

// Decode reads one value of the given type from the start of data. The input
// is never mutated; heap data is copied out of the buffer, so the returned
// token does not alias it.
func Decode(typ *abi.Type, data []byte, cfg DecoderConfig) (abi.Token, error) {
	return DecodeAt(typ, data, 0, cfg)
}

// DecodeAt reads one value of the given type starting at offset. Heap
// pointers inside the value are interpreted as absolute offsets into the
// same buffer, which is how the VM lays out return data and log receipts.
func DecodeAt(typ *abi.Type, data []byte, offset uint64, cfg DecoderConfig) (abi.Token, error) {
	st := &decodeState{data: data, cfg: cfg}
	return st.decode(typ, offset, 0, nil)
}

type decodeState struct {
	data      []byte
	cfg       DecoderConfig
	tokens    uint64
	heapBytes uint64
}

func (st *decodeState) bufLen() uint64 {
	return uint64(len(st.data))
}

// spendTokens charges n token nodes against the budget, erroring before any
// of them are materialized.
func (st *decodeState) spendTokens(n uint64, path []string) error {
	sum, ok := wire.SafeAdd(st.tokens, n)
	if !ok || sum > st.cfg.MaxTokens {
		return errors.TokenLimit(errors.PhaseDecode, path, st.cfg.MaxTokens)
	}
	st.tokens = sum
	return nil
}

// spendBytes charges claimed heap bytes against the budget, erroring before
// they are read.
func (st *decodeState) spendBytes(claimed uint64, offset uint64, path []string) error {
	sum, ok := wire.SafeAdd(st.heapBytes, claimed)
	if !ok || sum > st.cfg.MaxTotalBytes {
		return errors.ByteLimit(path, int64(offset), claimed, st.cfg.MaxTotalBytes)
	}
	st.heapBytes = sum
	return nil
}

func (st *decodeState) read(off, width uint64, path []string) ([]byte, error) {
	if !wire.InRange(st.bufLen(), off, width) {
		return nil, errors.UnexpectedEOF(path, int64(off), width, remaining(st.bufLen(), off))
	}
	return st.data[off : off+width], nil
}

func remaining(bufLen, off uint64) uint64 {
	if off >= bufLen {
		return 0
	}
	return bufLen - off
}

// decode reads one value at off. The caller advances its own cursor by the
// type's inline width; siblings are at consecutive inline positions with no
// padding between them.
func (st *decodeState) decode(typ *abi.Type, off uint64, depth uint64, path []string) (abi.Token, error) {
	if depth > st.cfg.MaxDepth {
		return abi.Token{}, errors.DepthLimit(errors.PhaseDecode, path, st.cfg.MaxDepth)
	}
	if err := st.spendTokens(1, path); err != nil {
		return abi.Token{}, err
	}

	switch typ.Kind {
	case abi.KindBool:
		b, err := st.read(off, 1, path)
		if err != nil {
			return abi.Token{}, err
		}
		return abi.Bool(b[0] != 0), nil

	case abi.KindU8:
		b, err := st.read(off, 1, path)
		if err != nil {
			return abi.Token{}, err
		}
		return abi.U8(b[0]), nil

	case abi.KindU16:
		v, ok := wire.ReadU16(st.data, off)
		if !ok {
			return abi.Token{}, errors.UnexpectedEOF(path, int64(off), 2, remaining(st.bufLen(), off))
		}
		return abi.U16(v), nil

	case abi.KindU32:
		v, ok := wire.ReadU32(st.data, off)
		if !ok {
			return abi.Token{}, errors.UnexpectedEOF(path, int64(off), 4, remaining(st.bufLen(), off))
		}
		return abi.U32(v), nil

	case abi.KindU64:
		v, ok := wire.ReadU64(st.data, off)
		if !ok {
			return abi.Token{}, errors.UnexpectedEOF(path, int64(off), 8, remaining(st.bufLen(), off))
		}
		return abi.U64(v), nil

	case abi.KindU128:
		b, err := st.read(off, 16, path)
		if err != nil {
			return abi.Token{}, err
		}
		return abi.U128(new(big.Int).SetBytes(b)), nil

	case abi.KindU256:
		b, err := st.read(off, 32, path)
		if err != nil {
			return abi.Token{}, err
		}
		return abi.U256(new(big.Int).SetBytes(b)), nil

	case abi.KindB256:
		b, err := st.read(off, 32, path)
		if err != nil {
			return abi.Token{}, err
		}
		var h [32]byte
		copy(h[:], b)
		return abi.B256Of(h), nil

	case abi.KindUnit:
		return abi.Unit(), nil

	case abi.KindString:
		b, err := st.read(off, typ.Len, path)
		if err != nil {
			return abi.Token{}, err
		}
		if !wire.IsASCII(b) {
			return abi.Token{}, errors.InvalidASCII(errors.PhaseDecode, path, int64(off), b)
		}
		return abi.String(string(b)), nil

	case abi.KindArray:
		return st.decodeArray(typ, off, depth, path)

	case abi.KindTuple, abi.KindStruct:
		return st.decodeMembers(typ, off, depth, path)

	case abi.KindEnum:
		return st.decodeEnum(typ, off, depth, path)

	case abi.KindVector:
		return st.decodeVector(typ, off, depth, path)

	case abi.KindBytes:
		raw, err := st.decodeHeapBytes(off, true, path)
		if err != nil {
			return abi.Token{}, err
		}
		return abi.Bytes(raw), nil

	case abi.KindRawSlice:
		raw, err := st.decodeHeapBytes(off, false, path)
		if err != nil {
			return abi.Token{}, err
		}
		return abi.RawSlice(raw), nil

	case abi.KindStringSlice:
		raw, err := st.decodeHeapBytes(off, false, path)
		if err != nil {
			return abi.Token{}, err
		}
		if !wire.IsASCII(raw) {
			return abi.Token{}, errors.InvalidASCII(errors.PhaseDecode, path, int64(off), raw)
		}
		return abi.StringSlice(string(raw)), nil

	default:
		return abi.Token{}, errors.Unsupported(errors.PhaseDecode, "type kind: "+typ.Kind.String())
	}
}

func (st *decodeState) decodeArray(typ *abi.Type, off uint64, depth uint64, path []string) (abi.Token, error) {
	if err := st.spendTokens(typ.Len, path); err != nil {
		return abi.Token{}, err
	}
	st.tokens -= typ.Len // elements charge themselves on entry

	n, err := wire.Slots(typ.Len)
	if err != nil {
		return abi.Token{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path...).
			AbiType(typ.String()).
			Detail("array length %d not representable", typ.Len).
			Build()
	}

	stride := typ.Elem.InlineWidth()
	elems := make([]abi.Token, 0, n)
	for i := 0; i < n; i++ {
		elem, err := st.decode(typ.Elem, off+uint64(i)*stride, depth+1, child(path, index(i)))
		if err != nil {
			return abi.Token{}, err
		}
		elems = append(elems, elem)
	}
	return abi.Token{Kind: abi.KindArray, Elems: elems}, nil
}

func (st *decodeState) decodeMembers(typ *abi.Type, off uint64, depth uint64, path []string) (abi.Token, error) {
	elems := make([]abi.Token, 0, len(typ.Fields))
	cursor := off
	for i, f := range typ.Fields {
		name := f.Name
		if name == "" {
			name = index(i)
		}
		elem, err := st.decode(f.Type, cursor, depth+1, child(path, name))
		if err != nil {
			return abi.Token{}, err
		}
		elems = append(elems, elem)
		cursor += f.Type.InlineWidth()
	}
	return abi.Token{Kind: typ.Kind, Elems: elems}, nil
}

// decodeEnum reads the discriminant, decodes the selected variant's payload,
// and leaves the remaining padding untouched. The caller advances by the
// enum's full width (discriminant plus widest variant), so the padding is
// never misread as a sibling's data.
func (st *decodeState) decodeEnum(typ *abi.Type, off uint64, depth uint64, path []string) (abi.Token, error) {
	// The whole padded footprint must be present, not just the selected
	// variant's bytes.
	if _, err := st.read(off, typ.InlineWidth(), path); err != nil {
		return abi.Token{}, err
	}

	disc, ok := wire.ReadU64(st.data, off)
	if !ok {
		return abi.Token{}, errors.UnexpectedEOF(path, int64(off), abi.DiscriminantLen, remaining(st.bufLen(), off))
	}
	if disc >= uint64(len(typ.Fields)) {
		return abi.Token{}, errors.InvalidDiscriminant(path, int64(off), disc, uint64(len(typ.Fields))-1)
	}

	variant := typ.Fields[disc]
	name := variant.Name
	if name == "" {
		name = index(int(disc))
	}
	payload, err := st.decode(variant.Type, off+abi.DiscriminantLen, depth+1, child(path, name))
	if err != nil {
		return abi.Token{}, err
	}
	return abi.Enum(disc, payload), nil
}

func (st *decodeState) decodeVector(typ *abi.Type, off uint64, depth uint64, path []string) (abi.Token, error) {
	ptr, _, length, err := st.readHeapHeader(off, true, path)
	if err != nil {
		return abi.Token{}, err
	}

	stride := typ.Elem.InlineWidth()
	claimed, ok := wire.SafeMul(length, stride)
	if !ok {
		return abi.Token{}, errors.ByteLimit(path, int64(off), length, st.cfg.MaxTotalBytes)
	}

	// Budgets are checked against the claimed count before any element is
	// materialized; a hostile length header cannot force a large allocation.
	if err := st.spendTokens(length, path); err != nil {
		return abi.Token{}, err
	}
	st.tokens -= length // elements charge themselves on entry
	if err := st.spendBytes(claimed, off, path); err != nil {
		return abi.Token{}, err
	}
	if !wire.InRange(st.bufLen(), ptr, claimed) {
		return abi.Token{}, errors.UnexpectedEOF(path, int64(ptr), claimed, remaining(st.bufLen(), ptr))
	}

	n, err := wire.Slots(length)
	if err != nil {
		return abi.Token{}, errors.TokenLimit(errors.PhaseDecode, path, st.cfg.MaxTokens)
	}

	elems := make([]abi.Token, 0, n)
	for i := 0; i < n; i++ {
		elem, err := st.decode(typ.Elem, ptr+uint64(i)*stride, depth+1, child(path, index(i)))
		if err != nil {
			return abi.Token{}, err
		}
		elems = append(elems, elem)
	}
	return abi.Token{Kind: abi.KindVector, Elems: elems}, nil
}

func (st *decodeState) decodeHeapBytes(off uint64, withCap bool, path []string) ([]byte, error) {
	ptr, _, length, err := st.readHeapHeader(off, withCap, path)
	if err != nil {
		return nil, err
	}

	if err := st.spendBytes(length, off, path); err != nil {
		return nil, err
	}
	if !wire.InRange(st.bufLen(), ptr, length) {
		return nil, errors.UnexpectedEOF(path, int64(ptr), length, remaining(st.bufLen(), ptr))
	}

	return append([]byte(nil), st.data[ptr:ptr+length]...), nil
}

// readHeapHeader reads a (ptr, cap, len) or (ptr, len) header. The pointer
// is an offset into the same buffer; capacity is carried for wire fidelity
// but not validated against length.
func (st *decodeState) readHeapHeader(off uint64, withCap bool, path []string) (ptr, capacity, length uint64, err error) {
	width := uint64(abi.SliceHeaderSize)
	if withCap {
		width = abi.VecHeaderSize
	}
	if _, err := st.read(off, width, path); err != nil {
		return 0, 0, 0, err
	}

	ptr, _ = wire.ReadU64(st.data, off)
	next := off + abi.WordSize
	if withCap {
		capacity, _ = wire.ReadU64(st.data, next)
		next += abi.WordSize
	}
	length, _ = wire.ReadU64(st.data, next)
	if withCap {
		return ptr, capacity, length, nil
	}
	return ptr, length, length, nil
}
