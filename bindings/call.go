package bindings

import (
	"go.uber.org/zap"

	"github.com/embervm/ember-go/abi"
	"github.com/embervm/ember-go/codec"
)

// CallCodec carries the descriptors for one contract function: parameter
// types in declaration order and the return type. Generated bindings hold
// one CallCodec per function; it is immutable and safe for concurrent use.
type CallCodec struct {
	Returns *abi.Type
	Params  []*abi.Type
	Encoder codec.EncoderConfig
	Decoder codec.DecoderConfig

	argTuple *abi.Type
}

// NewCallCodec builds a CallCodec with the default resource limits. Returns
// may be nil for functions without a return value.
func NewCallCodec(params []*abi.Type, returns *abi.Type) *CallCodec {
	return &CallCodec{
		Returns:  returns,
		Params:   params,
		Encoder:  codec.DefaultEncoderConfig(),
		Decoder:  codec.DefaultDecoderConfig(),
		argTuple: abi.TupleOf(params...),
	}
}

// EncodeArgs marshals the arguments against the parameter descriptors and
// encodes them as a tuple. The result still needs Resolve once the
// transaction builder knows where the script data section begins.
func (c *CallCodec) EncodeArgs(args ...any) (*codec.UnresolvedBytes, error) {
	if len(args) != len(c.Params) {
		return nil, convErr(nil, c.argTuple,
			"%d arguments supplied, function takes %d", len(args), len(c.Params))
	}

	elems := make([]abi.Token, len(args))
	for i, arg := range args {
		tok, err := Marshal(c.Params[i], arg)
		if err != nil {
			return nil, err
		}
		elems[i] = tok
	}

	u, err := codec.Encode(c.argTuple, abi.Tuple(elems...), c.Encoder)
	if err != nil {
		return nil, err
	}

	Logger().Debug("encoded call arguments",
		zap.Int("args", len(args)),
		zap.Int("inline_bytes", u.InlineLen()),
		zap.Int("heap_chunks", u.ChunkCount()),
	)
	return u, nil
}

// DecodeReturn decodes the VM's return data into out.
func (c *CallCodec) DecodeReturn(data []byte, out any) error {
	tok, err := codec.Decode(c.Returns, data, c.Decoder)
	if err != nil {
		return err
	}
	return Unmarshal(c.Returns, tok, out)
}

// DecodeLog decodes one log-receipt payload of the given type into out. Log
// types are per-event rather than per-function, so the descriptor is an
// argument here instead of a CallCodec field.
func (c *CallCodec) DecodeLog(typ *abi.Type, data []byte, out any) error {
	tok, err := codec.Decode(typ, data, c.Decoder)
	if err != nil {
		return err
	}
	return Unmarshal(typ, tok, out)
}
