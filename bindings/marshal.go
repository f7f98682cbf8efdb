package bindings

import (
	"math/big"
	"reflect"
	"strconv"

	ember "github.com/embervm/ember-go"
	"github.com/embervm/ember-go/abi"
	"github.com/embervm/ember-go/errors"
)

var (
	bigIntType      = reflect.TypeOf((*big.Int)(nil))
	byteSliceType   = reflect.TypeOf([]byte(nil))
	b256Type        = reflect.TypeOf([32]byte{})
	tokenizableType = reflect.TypeOf((*ember.Tokenizable)(nil)).Elem()
)

// Marshal converts a Go value into a token shaped by the descriptor. Values
// implementing ember.Tokenizable convert themselves; everything else goes
// through reflection using the mapping in the package documentation.
func Marshal(typ *abi.Type, v any) (abi.Token, error) {
	if tz, ok := v.(ember.Tokenizable); ok {
		return tz.ToToken()
	}
	return marshalValue(typ, reflect.ValueOf(v), nil)
}

func marshalValue(typ *abi.Type, rv reflect.Value, path []string) (abi.Token, error) {
	if !rv.IsValid() {
		return abi.Token{}, convErr(path, typ, "nil value")
	}
	if rv.Type().Implements(tokenizableType) {
		return rv.Interface().(ember.Tokenizable).ToToken()
	}

	// Deref plain pointers; enum variant pointers are handled in
	// marshalEnum before we get here.
	if rv.Kind() == reflect.Pointer && typ.Kind != abi.KindU128 && typ.Kind != abi.KindU256 {
		if rv.IsNil() {
			return abi.Token{}, convErr(path, typ, "nil pointer")
		}
		rv = rv.Elem()
	}

	switch typ.Kind {
	case abi.KindBool:
		if rv.Kind() != reflect.Bool {
			return abi.Token{}, mismatch(path, rv, typ)
		}
		return abi.Bool(rv.Bool()), nil

	case abi.KindU8, abi.KindU16, abi.KindU32, abi.KindU64:
		return marshalUint(typ, rv, path)

	case abi.KindU128, abi.KindU256:
		if rv.Type() != bigIntType {
			return abi.Token{}, mismatch(path, rv, typ)
		}
		if rv.IsNil() {
			return abi.Token{}, convErr(path, typ, "nil *big.Int")
		}
		b := rv.Interface().(*big.Int)
		if typ.Kind == abi.KindU128 {
			return abi.U128(b), nil
		}
		return abi.U256(b), nil

	case abi.KindB256:
		if !rv.Type().ConvertibleTo(b256Type) {
			return abi.Token{}, mismatch(path, rv, typ)
		}
		return abi.B256Of(rv.Convert(b256Type).Interface().([32]byte)), nil

	case abi.KindUnit:
		return abi.Unit(), nil

	case abi.KindString:
		if rv.Kind() != reflect.String {
			return abi.Token{}, mismatch(path, rv, typ)
		}
		return abi.String(rv.String()), nil

	case abi.KindStringSlice:
		if rv.Kind() != reflect.String {
			return abi.Token{}, mismatch(path, rv, typ)
		}
		return abi.StringSlice(rv.String()), nil

	case abi.KindBytes, abi.KindRawSlice:
		if !rv.Type().ConvertibleTo(byteSliceType) || rv.Kind() != reflect.Slice {
			return abi.Token{}, mismatch(path, rv, typ)
		}
		raw := append([]byte(nil), rv.Convert(byteSliceType).Interface().([]byte)...)
		if typ.Kind == abi.KindBytes {
			return abi.Bytes(raw), nil
		}
		return abi.RawSlice(raw), nil

	case abi.KindArray:
		return marshalSequence(typ, rv, true, path)

	case abi.KindVector:
		return marshalSequence(typ, rv, false, path)

	case abi.KindTuple, abi.KindStruct:
		return marshalStruct(typ, rv, path)

	case abi.KindEnum:
		return marshalEnum(typ, rv, path)

	default:
		return abi.Token{}, errors.Unsupported(errors.PhaseConvert, "type kind: "+typ.Kind.String())
	}
}

func marshalUint(typ *abi.Type, rv reflect.Value, path []string) (abi.Token, error) {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return abi.Token{}, mismatch(path, rv, typ)
	}
	v := rv.Uint()

	var max uint64
	switch typ.Kind {
	case abi.KindU8:
		max = 0xff
	case abi.KindU16:
		max = 0xffff
	case abi.KindU32:
		max = 0xffffffff
	default:
		max = 1<<64 - 1
	}
	if v > max {
		return abi.Token{}, errors.Overflow(errors.PhaseConvert, path, v, typ.Kind.String())
	}
	return abi.Token{Kind: typ.Kind, U64: v}, nil
}

func marshalSequence(typ *abi.Type, rv reflect.Value, fixed bool, path []string) (abi.Token, error) {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return abi.Token{}, mismatch(path, rv, typ)
	}
	if fixed && uint64(rv.Len()) != typ.Len {
		return abi.Token{}, convErr(path, typ, "length %d, descriptor wants %d", rv.Len(), typ.Len)
	}

	elems := make([]abi.Token, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem, err := marshalValue(typ.Elem, rv.Index(i), child(path, index(i)))
		if err != nil {
			return abi.Token{}, err
		}
		elems[i] = elem
	}

	kind := abi.KindVector
	if fixed {
		kind = abi.KindArray
	}
	return abi.Token{Kind: kind, Elems: elems}, nil
}

func marshalStruct(typ *abi.Type, rv reflect.Value, path []string) (abi.Token, error) {
	if rv.Kind() != reflect.Struct {
		return abi.Token{}, mismatch(path, rv, typ)
	}

	fields := bindableFields(rv.Type())
	if len(fields) != len(typ.Fields) {
		return abi.Token{}, convErr(path, typ,
			"%d bindable fields, descriptor wants %d", len(fields), len(typ.Fields))
	}

	elems := make([]abi.Token, len(fields))
	for i, fi := range fields {
		name := typ.Fields[i].Name
		if name == "" {
			name = index(i)
		}
		elem, err := marshalValue(typ.Fields[i].Type, rv.Field(fi), child(path, name))
		if err != nil {
			return abi.Token{}, err
		}
		elems[i] = elem
	}
	return abi.Token{Kind: typ.Kind, Elems: elems}, nil
}

// marshalEnum expects a struct with one exported pointer field per variant,
// in variant order, of which exactly one is non-nil.
func marshalEnum(typ *abi.Type, rv reflect.Value, path []string) (abi.Token, error) {
	if rv.Kind() != reflect.Struct {
		return abi.Token{}, mismatch(path, rv, typ)
	}

	fields := bindableFields(rv.Type())
	if len(fields) != len(typ.Fields) {
		return abi.Token{}, convErr(path, typ,
			"%d variant fields, descriptor wants %d", len(fields), len(typ.Fields))
	}

	selected := -1
	for i, fi := range fields {
		fv := rv.Field(fi)
		if fv.Kind() != reflect.Pointer {
			return abi.Token{}, convErr(path, typ, "variant field %s is not a pointer", rv.Type().Field(fi).Name)
		}
		if fv.IsNil() {
			continue
		}
		if selected >= 0 {
			return abi.Token{}, convErr(path, typ, "more than one variant selected")
		}
		selected = i
	}
	if selected < 0 {
		return abi.Token{}, convErr(path, typ, "no variant selected")
	}

	variant := typ.Fields[selected]
	payload, err := marshalValue(variant.Type, rv.Field(fields[selected]).Elem(), child(path, variant.Name))
	if err != nil {
		return abi.Token{}, err
	}
	return abi.Enum(uint64(selected), payload), nil
}

// bindableFields returns the indices of exported fields not tagged abi:"-",
// in declaration order.
func bindableFields(t reflect.Type) []int {
	var out []int
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		if f.Tag.Get("abi") == "-" {
			continue
		}
		out = append(out, i)
	}
	return out
}

func mismatch(path []string, rv reflect.Value, typ *abi.Type) *errors.Error {
	return errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
		Path(path...).
		AbiType(typ.String()).
		Detail("Go type %s does not map to descriptor", rv.Type()).
		Build()
}

func convErr(path []string, typ *abi.Type, detail string, args ...any) *errors.Error {
	return errors.New(errors.PhaseConvert, errors.KindInvalidData).
		Path(path...).
		AbiType(typ.String()).
		Detail(detail, args...).
		Build()
}

func child(path []string, name string) []string {
	return append(append([]string{}, path...), name)
}

func index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
