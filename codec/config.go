package codec

// Default limits. Conservative: sized a small constant factor above typical
// transaction and return-data payloads, not at the theoretical maximum.
const (
	DefaultMaxDepth      = 45
	DefaultMaxTokens     = 10_000
	DefaultMaxTotalBytes = 1 << 20
)

// DecoderConfig bounds the work a single Decode call may perform. Every
// limit is an independent counter threaded through the whole descent;
// breaching any one aborts with the corresponding error kind.
type DecoderConfig struct {
	// MaxDepth bounds recursive structural nesting.
	MaxDepth uint64
	// MaxTokens bounds the total number of token nodes materialized.
	MaxTokens uint64
	// MaxTotalBytes bounds the cumulative byte length claimed by
	// vector/bytes/string headers, checked before materializing.
	MaxTotalBytes uint64
}

// DefaultDecoderConfig returns the conservative default limits.
func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{
		MaxDepth:      DefaultMaxDepth,
		MaxTokens:     DefaultMaxTokens,
		MaxTotalBytes: DefaultMaxTotalBytes,
	}
}

// EncoderConfig bounds a single Encode call. Encoding is caller-driven, so
// these exist to catch pathological programmatically-built tokens rather
// than hostile data.
type EncoderConfig struct {
	MaxDepth  uint64
	MaxTokens uint64
}

// DefaultEncoderConfig returns the conservative default limits.
func DefaultEncoderConfig() EncoderConfig {
	return EncoderConfig{
		MaxDepth:  DefaultMaxDepth,
		MaxTokens: DefaultMaxTokens,
	}
}
