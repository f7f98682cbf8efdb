// Package errors provides the structured error type used across the module.
//
// Every failure carries the phase it occurred in (encode, decode, resolve,
// convert), a machine-readable kind, the path of field/element names leading
// to the failing value, and, for decode failures, the byte offset in the
// input buffer:
//
//	[decode] invalid_discriminant at order.status (offset 40): discriminant 9 out of range (max 2)
//	[decode] token_limit at entries[512]: token budget 512 exhausted
//	[encode] type_mismatch at user.id: token u64 does not match descriptor u32
//
// Matching is structural: errors.Is compares phase and kind, so callers can
// test for a class of failure without string comparison:
//
//	if errors.Is(err, emberrors.Decode(emberrors.KindTokenLimit)) { ... }
//
// Resource-limit kinds (depth_limit, token_limit, byte_limit) are
// deliberately reported through the same type and severity as malformed
// input: both fail closed.
package errors
