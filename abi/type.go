package abi

import (
	"strconv"
	"strings"
)

// Wire header widths for heap kinds: vectors and bytes carry
// (ptr u64, cap u64, len u64), raw and string slices carry (ptr u64, len u64).
const (
	WordSize        = 8
	VecHeaderSize   = 3 * WordSize
	SliceHeaderSize = 2 * WordSize
	DiscriminantLen = WordSize
)

// Type describes the wire-level shape of a value. Exactly which fields are
// meaningful depends on Kind:
//
//	Array        Elem, Len
//	Vector       Elem
//	String       Len
//	Tuple        Fields (names empty)
//	Struct       Fields, Name
//	Enum         Fields (variants), Name
//
// Types are immutable after construction and safe for concurrent use.
type Type struct {
	Elem   *Type
	Fields []Field
	Name   string
	Len    uint64
	Kind   Kind
}

// Field is a named member of a struct or a variant of an enum. The name is
// metadata; only declaration order is part of the wire contract.
type Field struct {
	Type *Type
	Name string
}

// Primitive descriptor singletons. Descriptors are immutable, so sharing
// these is safe.
var (
	BoolType        = &Type{Kind: KindBool}
	U8Type          = &Type{Kind: KindU8}
	U16Type         = &Type{Kind: KindU16}
	U32Type         = &Type{Kind: KindU32}
	U64Type         = &Type{Kind: KindU64}
	U128Type        = &Type{Kind: KindU128}
	U256Type        = &Type{Kind: KindU256}
	B256Type        = &Type{Kind: KindB256}
	UnitType        = &Type{Kind: KindUnit}
	BytesType       = &Type{Kind: KindBytes}
	RawSliceType    = &Type{Kind: KindRawSlice}
	StringSliceType = &Type{Kind: KindStringSlice}
)

// ArrayOf returns a fixed-length inline array descriptor.
func ArrayOf(elem *Type, length uint64) *Type {
	return &Type{Kind: KindArray, Elem: elem, Len: length}
}

// VectorOf returns a heap-allocated dynamic sequence descriptor.
func VectorOf(elem *Type) *Type {
	return &Type{Kind: KindVector, Elem: elem}
}

// StringOf returns a fixed-length inline ASCII string descriptor.
func StringOf(length uint64) *Type {
	return &Type{Kind: KindString, Len: length}
}

// TupleOf returns a tuple descriptor over the given member types.
func TupleOf(elems ...*Type) *Type {
	fields := make([]Field, len(elems))
	for i, e := range elems {
		fields[i] = Field{Type: e}
	}
	return &Type{Kind: KindTuple, Fields: fields}
}

// StructOf returns a struct descriptor. Field order is the wire order.
func StructOf(name string, fields ...Field) *Type {
	return &Type{Kind: KindStruct, Name: name, Fields: fields}
}

// EnumOf returns an enum descriptor. Variant order fixes discriminant values.
func EnumOf(name string, variants ...Field) *Type {
	return &Type{Kind: KindEnum, Name: name, Fields: variants}
}

// InlineWidth returns the number of bytes the type occupies at its declared
// position: the full encoding for inline kinds, the header width for heap
// kinds.
func (t *Type) InlineWidth() uint64 {
	switch t.Kind {
	case KindBool, KindU8:
		return 1
	case KindU16:
		return 2
	case KindU32:
		return 4
	case KindU64:
		return 8
	case KindU128:
		return 16
	case KindU256, KindB256:
		return 32
	case KindUnit:
		return 0
	case KindString:
		return t.Len
	case KindArray:
		return t.Len * t.Elem.InlineWidth()
	case KindVector, KindBytes:
		return VecHeaderSize
	case KindRawSlice, KindStringSlice:
		return SliceHeaderSize
	case KindTuple, KindStruct:
		var sum uint64
		for _, f := range t.Fields {
			sum += f.Type.InlineWidth()
		}
		return sum
	case KindEnum:
		return DiscriminantLen + t.MaxVariantWidth()
	default:
		return 0
	}
}

// MaxVariantWidth returns the widest variant's inline width. The wire format
// pads every variant's payload to this width.
func (t *Type) MaxVariantWidth() uint64 {
	var max uint64
	for _, v := range t.Fields {
		if w := v.Type.InlineWidth(); w > max {
			max = w
		}
	}
	return max
}

// IsHeap reports whether the type's data lives behind a pointer header.
func (t *Type) IsHeap() bool {
	return t.Kind.IsHeap()
}

// HasHeap reports whether the type or any nested member is heap-allocated.
func (t *Type) HasHeap() bool {
	if t.Kind.IsHeap() {
		return true
	}
	if t.Elem != nil && t.Elem.HasHeap() {
		return true
	}
	for _, f := range t.Fields {
		if f.Type.HasHeap() {
			return true
		}
	}
	return false
}

// String renders a compact signature, e.g. "struct Point{x:u64,y:u64}" or
// "vec<array[u8; 4]>".
func (t *Type) String() string {
	var b strings.Builder
	t.render(&b)
	return b.String()
}

func (t *Type) render(b *strings.Builder) {
	switch t.Kind {
	case KindString:
		b.WriteString("str[")
		b.WriteString(strconv.FormatUint(t.Len, 10))
		b.WriteByte(']')
	case KindArray:
		b.WriteString("array[")
		t.Elem.render(b)
		b.WriteString("; ")
		b.WriteString(strconv.FormatUint(t.Len, 10))
		b.WriteByte(']')
	case KindVector:
		b.WriteString("vec<")
		t.Elem.render(b)
		b.WriteByte('>')
	case KindTuple:
		b.WriteByte('(')
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			f.Type.render(b)
		}
		b.WriteByte(')')
	case KindStruct, KindEnum:
		b.WriteString(t.Kind.String())
		if t.Name != "" {
			b.WriteByte(' ')
			b.WriteString(t.Name)
		}
		b.WriteByte('{')
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			if f.Name != "" {
				b.WriteString(f.Name)
				b.WriteByte(':')
			}
			f.Type.render(b)
		}
		b.WriteByte('}')
	default:
		b.WriteString(t.Kind.String())
	}
}
