// Package codec implements the Ember VM's binary calling convention:
// encoding tokens to wire bytes and decoding wire bytes back to tokens.
//
// # Two-Phase Encoding
//
// Heap-allocated values (vectors, bytes, dynamic strings, raw slices) are
// referenced through a header whose pointer is an absolute offset into the
// transaction's data section. That offset is only known to the transaction
// builder, after encoding. Encode therefore returns UnresolvedBytes - an
// inline region plus an ordered list of heap chunks with placeholder
// pointers - and Resolve patches the pointers once the base offset is known:
//
//	unresolved, err := codec.Encode(typ, token, codec.DefaultEncoderConfig())
//	...
//	data, err := unresolved.Resolve(baseOffset)
//
// Resolve does not consume the receiver, so the same encoding can be
// re-resolved at a different base when the caller rebuilds its layout.
//
// # Decoding Untrusted Input
//
// Decode input originates from VM return data and log receipts, which may be
// malformed or hostile. Three independent budgets bound the work done before
// anything is materialized:
//
//	MaxDepth       structural nesting
//	MaxTokens      token nodes materialized across the whole call
//	MaxTotalBytes  cumulative byte length claimed by heap headers
//
// A length header claiming a billion elements fails with token_limit or
// byte_limit before any allocation of that size is attempted.
//
// # Concurrency
//
// Encode, Decode, and Resolve are pure functions over their inputs. There is
// no shared state; concurrent calls need no synchronization.
package codec
