package bindings

import (
	"math/big"
	"reflect"

	ember "github.com/embervm/ember-go"
	"github.com/embervm/ember-go/abi"
	"github.com/embervm/ember-go/errors"
)

// Unmarshal writes a decoded token into the Go value pointed to by out,
// shaped by the descriptor. out must be a non-nil pointer. Values
// implementing ember.Tokenizable convert themselves.
func Unmarshal(typ *abi.Type, tok abi.Token, out any) error {
	if tz, ok := out.(ember.Tokenizable); ok {
		return tz.FromToken(tok)
	}

	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New(errors.PhaseConvert, errors.KindInvalidData).
			Detail("out must be a non-nil pointer, got %T", out).
			Build()
	}
	return unmarshalValue(typ, tok, rv.Elem(), nil)
}

func unmarshalValue(typ *abi.Type, tok abi.Token, rv reflect.Value, path []string) error {
	if tok.Kind != typ.Kind {
		return errors.TypeMismatch(errors.PhaseConvert, path, tok.Kind.String(), typ.String())
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(tokenizableType) {
		return rv.Addr().Interface().(ember.Tokenizable).FromToken(tok)
	}

	switch typ.Kind {
	case abi.KindBool:
		if rv.Kind() != reflect.Bool {
			return mismatch(path, rv, typ)
		}
		rv.SetBool(tok.Bool)
		return nil

	case abi.KindU8, abi.KindU16, abi.KindU32, abi.KindU64:
		switch rv.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			return mismatch(path, rv, typ)
		}
		if rv.OverflowUint(tok.U64) {
			return errors.Overflow(errors.PhaseConvert, path, tok.U64, rv.Type().String())
		}
		rv.SetUint(tok.U64)
		return nil

	case abi.KindU128, abi.KindU256:
		if rv.Type() != bigIntType {
			return mismatch(path, rv, typ)
		}
		if tok.Big == nil {
			return convErr(path, typ, "token carries no big integer")
		}
		rv.Set(reflect.ValueOf(new(big.Int).Set(tok.Big)))
		return nil

	case abi.KindB256:
		if rv.Type() != b256Type && !b256Type.ConvertibleTo(rv.Type()) {
			return mismatch(path, rv, typ)
		}
		rv.Set(reflect.ValueOf(tok.B256).Convert(rv.Type()))
		return nil

	case abi.KindUnit:
		return nil

	case abi.KindString, abi.KindStringSlice:
		if rv.Kind() != reflect.String {
			return mismatch(path, rv, typ)
		}
		rv.SetString(tok.Str)
		return nil

	case abi.KindBytes, abi.KindRawSlice:
		if rv.Type() != byteSliceType && !byteSliceType.ConvertibleTo(rv.Type()) {
			return mismatch(path, rv, typ)
		}
		raw := append([]byte(nil), tok.Raw...)
		rv.Set(reflect.ValueOf(raw).Convert(rv.Type()))
		return nil

	case abi.KindArray:
		return unmarshalSequence(typ, tok, rv, true, path)

	case abi.KindVector:
		return unmarshalSequence(typ, tok, rv, false, path)

	case abi.KindTuple, abi.KindStruct:
		return unmarshalStruct(typ, tok, rv, path)

	case abi.KindEnum:
		return unmarshalEnum(typ, tok, rv, path)

	default:
		return errors.Unsupported(errors.PhaseConvert, "type kind: "+typ.Kind.String())
	}
}

func unmarshalSequence(typ *abi.Type, tok abi.Token, rv reflect.Value, fixed bool, path []string) error {
	switch rv.Kind() {
	case reflect.Array:
		if rv.Len() != len(tok.Elems) {
			return convErr(path, typ, "array target holds %d, token has %d", rv.Len(), len(tok.Elems))
		}
	case reflect.Slice:
		rv.Set(reflect.MakeSlice(rv.Type(), len(tok.Elems), len(tok.Elems)))
	default:
		return mismatch(path, rv, typ)
	}
	if fixed && uint64(len(tok.Elems)) != typ.Len {
		return convErr(path, typ, "token has %d elements, descriptor wants %d", len(tok.Elems), typ.Len)
	}

	for i := range tok.Elems {
		if err := unmarshalValue(typ.Elem, tok.Elems[i], rv.Index(i), child(path, index(i))); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalStruct(typ *abi.Type, tok abi.Token, rv reflect.Value, path []string) error {
	if rv.Kind() != reflect.Struct {
		return mismatch(path, rv, typ)
	}

	fields := bindableFields(rv.Type())
	if len(fields) != len(typ.Fields) {
		return convErr(path, typ,
			"%d bindable fields, descriptor wants %d", len(fields), len(typ.Fields))
	}
	if len(tok.Elems) != len(typ.Fields) {
		return convErr(path, typ,
			"token has %d members, descriptor wants %d", len(tok.Elems), len(typ.Fields))
	}

	for i, fi := range fields {
		name := typ.Fields[i].Name
		if name == "" {
			name = index(i)
		}
		if err := unmarshalValue(typ.Fields[i].Type, tok.Elems[i], rv.Field(fi), child(path, name)); err != nil {
			return err
		}
	}
	return nil
}

// unmarshalEnum selects the token's variant in a struct-of-pointers target:
// the chosen field is allocated and filled, every other field is nilled.
func unmarshalEnum(typ *abi.Type, tok abi.Token, rv reflect.Value, path []string) error {
	if rv.Kind() != reflect.Struct {
		return mismatch(path, rv, typ)
	}

	fields := bindableFields(rv.Type())
	if len(fields) != len(typ.Fields) {
		return convErr(path, typ,
			"%d variant fields, descriptor wants %d", len(fields), len(typ.Fields))
	}
	if tok.Variant >= uint64(len(typ.Fields)) {
		return convErr(path, typ, "token variant %d out of range", tok.Variant)
	}
	if tok.Payload == nil {
		return convErr(path, typ, "token carries no payload")
	}

	for _, fi := range fields {
		fv := rv.Field(fi)
		if fv.Kind() != reflect.Pointer {
			return convErr(path, typ, "variant field %s is not a pointer", rv.Type().Field(fi).Name)
		}
		fv.SetZero()
	}

	variant := typ.Fields[tok.Variant]
	fv := rv.Field(fields[tok.Variant])
	fv.Set(reflect.New(fv.Type().Elem()))
	return unmarshalValue(variant.Type, *tok.Payload, fv.Elem(), child(path, variant.Name))
}
