// Package ember is the Go client library for the Ember VM's application
// binary interface.
//
// The module is organized around one problem: converting between typed
// values and the VM's binary calling convention.
//
// # Packages
//
//	abi       - type descriptors and tokens (the codec's shared vocabulary)
//	codec     - encoder, decoder, and heap-pointer resolution
//	errors    - structured errors used across the module
//	bindings  - Go value <-> token conversion for generated bindings
//
// # Wire Format
//
// Values are encoded big-endian with no padding between inline siblings:
//
//	Type            Width
//	─────────────────────
//	bool, u8        1
//	u16             2
//	u32             4
//	u64             8
//	u128            16
//	u256, b256      32
//	str[n]          n
//	array[T; n]     n * width(T)
//	struct, tuple   sum of members
//	enum            8 + widest variant
//	vec<T>, bytes   24 (ptr, cap, len)
//	raw slice       16 (ptr, len)
//
// Heap-allocated values (vectors, bytes, dynamic strings, raw slices) are
// represented inline by a header whose pointer is an absolute offset into
// the transaction's data section. The pointer is only known once the caller
// decides where the encoded value will live, so encoding is split into two
// phases: codec.Encode produces relocatable UnresolvedBytes, and Resolve
// patches the pointers once a base offset is known.
//
// # Encoding Flow
//
//  1. bindings.Marshal(typ, goValue) -> abi.Token
//  2. codec.Encode(typ, token, cfg)  -> *codec.UnresolvedBytes
//  3. unresolved.Resolve(baseOffset) -> []byte
//
// # Decoding Flow
//
//  1. codec.Decode(typ, data, cfg)       -> abi.Token
//  2. bindings.Unmarshal(typ, token, &v) -> Go value
//
// # Safety
//
// Decode input may come from untrusted VM responses. DecoderConfig bounds
// recursion depth, the number of tokens materialized, and the cumulative
// byte length claimed by heap headers; any breach aborts with a
// distinguishable error before the claimed memory is allocated.
package ember
