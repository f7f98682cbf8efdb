// Package bindings converts between native Go values and the codec's token
// representation, hiding the token intermediate from users of generated
// contract bindings.
//
// # Mapping
//
//	Descriptor        Go type
//	──────────────────────────────
//	bool              bool
//	u8..u64           uint8..uint64
//	u128, u256        *big.Int
//	b256              [32]byte
//	unit              struct{}
//	str[n], str       string
//	bytes, raw slice  []byte
//	array[T; n]       [n]T or []T
//	vec<T>            []T
//	tuple, struct     struct (exported fields, declared order)
//	enum              struct of pointers, one per variant
//
// Enums map to a Go struct with exactly one exported pointer field per
// variant, in variant order; the selected variant is the single non-nil
// field. A unit variant uses *struct{}.
//
// Any type may bypass reflection entirely by implementing ember.Tokenizable;
// generated bindings do this for every contract type.
//
// # Calls
//
// CallCodec packages the per-function work: arguments marshal into a tuple
// and encode into relocatable bytes for the transaction builder; return data
// and log receipts decode straight into Go values:
//
//	cc := bindings.NewCallCodec([]*abi.Type{abi.U64Type}, abi.BoolType)
//	unresolved, err := cc.EncodeArgs(uint64(7))
//	...
//	var ok bool
//	err = cc.DecodeReturn(returnData, &ok)
package bindings
