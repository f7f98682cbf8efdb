package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode  Phase = "encode"  // token to wire bytes
	PhaseDecode  Phase = "decode"  // wire bytes to token
	PhaseResolve Phase = "resolve" // heap pointer patching
	PhaseConvert Phase = "convert" // Go value to/from token
)

// Kind categorizes the error
type Kind string

const (
	KindUnexpectedEOF       Kind = "unexpected_eof"
	KindInvalidDiscriminant Kind = "invalid_discriminant"
	KindDepthLimit          Kind = "depth_limit"
	KindTokenLimit          Kind = "token_limit"
	KindByteLimit           Kind = "byte_limit"
	KindInvalidASCII        Kind = "invalid_ascii"
	KindTypeMismatch        Kind = "type_mismatch"
	KindOverflow            Kind = "overflow"
	KindInvalidData         Kind = "invalid_data"
	KindUnsupported         Kind = "unsupported"
	KindInternal            Kind = "internal"
)

// NoOffset marks an error that has no meaningful input-buffer position.
const NoOffset int64 = -1

// Error is the structured error type used throughout the module
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	AbiType string
	Detail  string
	Path    []string
	Offset  int64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Offset > NoOffset {
		b.WriteString(" (offset ")
		b.WriteString(strconv.FormatInt(e.Offset, 10))
		b.WriteByte(')')
	}

	if e.AbiType != "" {
		b.WriteString(": type ")
		b.WriteString(e.AbiType)
	}

	if e.Detail != "" {
		if e.AbiType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two Errors match when their
// phase and kind agree; path, offset, and detail are diagnostic only.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Decode returns a bare decode-phase error of the given kind, usable as an
// errors.Is target.
func Decode(kind Kind) *Error {
	return &Error{Phase: PhaseDecode, Kind: kind}
}

// Encode returns a bare encode-phase error of the given kind, usable as an
// errors.Is target.
func Encode(kind Kind) *Error {
	return &Error{Phase: PhaseEncode, Kind: kind}
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: NoOffset,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the input-buffer byte offset
func (b *Builder) Offset(off int64) *Builder {
	b.err.Offset = off
	return b
}

// AbiType sets the descriptor rendering of the type being processed
func (b *Builder) AbiType(t string) *Builder {
	b.err.AbiType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnexpectedEOF reports a buffer too short for the type being decoded.
func UnexpectedEOF(path []string, offset int64, need, have uint64) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnexpectedEOF,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, %d available", need, have),
	}
}

// InvalidDiscriminant reports an enum discriminant outside the variant range.
func InvalidDiscriminant(path []string, offset int64, disc, maxValid uint64) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidDiscriminant,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("discriminant %d out of range (max %d)", disc, maxValid),
		Value:  disc,
	}
}

// DepthLimit reports structural nesting past the configured maximum.
func DepthLimit(phase Phase, path []string, max uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepthLimit,
		Path:   path,
		Offset: NoOffset,
		Detail: fmt.Sprintf("nesting exceeds depth limit %d", max),
	}
}

// TokenLimit reports token materialization past the configured maximum.
func TokenLimit(phase Phase, path []string, max uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTokenLimit,
		Path:   path,
		Offset: NoOffset,
		Detail: fmt.Sprintf("token budget %d exhausted", max),
	}
}

// ByteLimit reports cumulative claimed heap bytes past the configured maximum.
func ByteLimit(path []string, offset int64, claimed, max uint64) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindByteLimit,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("claimed %d heap bytes, budget %d", claimed, max),
	}
}

// InvalidASCII reports a non-ASCII byte inside a string value.
func InvalidASCII(phase Phase, path []string, offset int64, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidASCII,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("non-ASCII byte in string: %x", preview),
	}
}

// TypeMismatch reports a token whose shape disagrees with the descriptor
// driving an encode or conversion.
func TypeMismatch(phase Phase, path []string, tokenKind, abiType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		Offset:  NoOffset,
		AbiType: abiType,
		Detail:  fmt.Sprintf("token %s does not match descriptor", tokenKind),
	}
}

// Overflow reports a value that does not fit its wire representation.
func Overflow(phase Phase, path []string, value any, abiType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindOverflow,
		Path:    path,
		Offset:  NoOffset,
		AbiType: abiType,
		Detail:  fmt.Sprintf("value %v overflows %s", value, abiType),
		Value:   value,
	}
}

// InvalidData reports input that is structurally impossible to decode.
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Offset: NoOffset,
		Detail: detail,
	}
}

// Unsupported reports an operation the codec does not implement.
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Offset: NoOffset,
		Detail: what,
	}
}

// Internal reports a broken invariant. Resolution arithmetic is exact by
// construction, so seeing this kind means a codec bug, not bad input.
func Internal(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInternal,
		Offset: NoOffset,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: NoOffset,
		Detail: detail,
		Cause:  cause,
	}
}
