package abi

type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindU256
	KindB256
	KindUnit
	KindString
	KindStringSlice
	KindArray
	KindVector
	KindBytes
	KindRawSlice
	KindTuple
	KindStruct
	KindEnum
)

var kindNames = [...]string{
	KindBool:        "bool",
	KindU8:          "u8",
	KindU16:         "u16",
	KindU32:         "u32",
	KindU64:         "u64",
	KindU128:        "u128",
	KindU256:        "u256",
	KindB256:        "b256",
	KindUnit:        "unit",
	KindString:      "str",
	KindStringSlice: "str_slice",
	KindArray:       "array",
	KindVector:      "vec",
	KindBytes:       "bytes",
	KindRawSlice:    "raw_slice",
	KindTuple:       "tuple",
	KindStruct:      "struct",
	KindEnum:        "enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsPrimitive() bool {
	return k <= KindB256
}

// IsHeap reports whether the kind's data lives behind a pointer header
// rather than inline at its declared position.
func (k Kind) IsHeap() bool {
	switch k {
	case KindVector, KindBytes, KindRawSlice, KindStringSlice:
		return true
	default:
		return false
	}
}

// IsComposite reports whether the kind nests child values and therefore
// counts against the depth limit.
func (k Kind) IsComposite() bool {
	switch k {
	case KindArray, KindVector, KindTuple, KindStruct, KindEnum:
		return true
	default:
		return false
	}
}
