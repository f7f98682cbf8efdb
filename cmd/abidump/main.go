// Command abidump decodes Ember VM wire data against a type signature and
// pretty-prints the result. It is a debugging aid for inspecting return
// data, log receipts, and encoded call arguments.
//
// Usage:
//
//	abidump -type 'struct{a:u32,b:vec<u8>}' -data 00000007...
//	abidump -type 'vec<u64>' -file return_data.bin -offset 16
//	abidump -type '...' -data ... -i       (interactive tree browser)
//	abidump -type '...' -data ... -limits limits.toml
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/embervm/ember-go/abi"
	"github.com/embervm/ember-go/bindings"
	"github.com/embervm/ember-go/codec"
)

func main() {
	var (
		typeSig     = flag.String("type", "", "Type signature, e.g. 'struct{a:u32,b:vec<u8>}'")
		dataHex     = flag.String("data", "", "Wire data as hex")
		dataFile    = flag.String("file", "", "Read wire data from file instead of -data")
		offset      = flag.Uint64("offset", 0, "Byte offset to start decoding at")
		limitsFile  = flag.String("limits", "", "TOML file overriding decoder limits")
		interactive = flag.Bool("i", false, "Interactive tree browser")
		selftest    = flag.Bool("selftest", false, "Round-trip zero values through the type instead of decoding input")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *typeSig == "" {
		fmt.Fprintln(os.Stderr, "Usage: abidump -type <signature> -data <hex> [-offset n] [-limits file.toml] [-i]")
		fmt.Fprintln(os.Stderr, "       abidump -type <signature> -file <path>")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			bindings.SetLogger(logger)
			defer logger.Sync()
		}
	}

	if err := run(*typeSig, *dataHex, *dataFile, *offset, *limitsFile, *interactive, *selftest); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(typeSig, dataHex, dataFile string, offset uint64, limitsFile string, interactive, selftest bool) error {
	typ, err := parseSig(typeSig)
	if err != nil {
		return fmt.Errorf("parse type: %w", err)
	}

	cfg := codec.DefaultDecoderConfig()
	if limitsFile != "" {
		cfg, err = loadLimits(limitsFile, cfg)
		if err != nil {
			return fmt.Errorf("load limits: %w", err)
		}
	}

	if selftest {
		return runSelftest(typ, cfg)
	}

	var data []byte
	switch {
	case dataFile != "":
		data, err = os.ReadFile(dataFile)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
	case dataHex != "":
		data, err = hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(dataHex), "0x"))
		if err != nil {
			return fmt.Errorf("decode hex: %w", err)
		}
	default:
		return fmt.Errorf("one of -data or -file is required")
	}

	tok, err := codec.DecodeAt(typ, data, offset, cfg)
	if err != nil {
		return err
	}

	if interactive {
		return browse(typ, tok)
	}

	fmt.Printf("%s  (%d bytes, width %d)\n\n", headerStyle.Render(typ.String()), len(data), typ.InlineWidth())
	fmt.Println(renderToken(typ, tok, 0))
	return nil
}

// runSelftest encodes the type's zero value, resolves it at offset 0, decodes
// it back, and reports the resolved bytes. Useful for eyeballing a type's
// wire layout without real data.
func runSelftest(typ *abi.Type, cfg codec.DecoderConfig) error {
	tok := zeroToken(typ)

	u, err := codec.Encode(typ, tok, codec.DefaultEncoderConfig())
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	data, err := u.Resolve(0)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	back, err := codec.Decode(typ, data, cfg)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if !back.Equal(tok) {
		return fmt.Errorf("round trip mismatch: %+v != %+v", back, tok)
	}

	fmt.Printf("%s  round trip ok\n\n", headerStyle.Render(typ.String()))
	fmt.Printf("inline %d bytes, %d heap chunk(s), resolved %d bytes\n",
		u.InlineLen(), u.ChunkCount(), len(data))
	fmt.Printf("resolved: %s\n\n", hex.EncodeToString(data))
	fmt.Println(renderToken(typ, back, 0))
	return nil
}

// zeroToken builds the zero value for a descriptor: false, 0, empty heap
// collections, spaces for fixed strings, and the first variant for enums.
func zeroToken(typ *abi.Type) abi.Token {
	switch typ.Kind {
	case abi.KindBool:
		return abi.Bool(false)
	case abi.KindU8:
		return abi.U8(0)
	case abi.KindU16:
		return abi.U16(0)
	case abi.KindU32:
		return abi.U32(0)
	case abi.KindU64:
		return abi.U64(0)
	case abi.KindU128:
		return abi.U128(new(big.Int))
	case abi.KindU256:
		return abi.U256(new(big.Int))
	case abi.KindB256:
		return abi.B256Of([32]byte{})
	case abi.KindString:
		return abi.String(strings.Repeat(" ", int(typ.Len)))
	case abi.KindStringSlice:
		return abi.StringSlice("")
	case abi.KindBytes:
		return abi.Bytes(nil)
	case abi.KindRawSlice:
		return abi.RawSlice(nil)
	case abi.KindArray:
		elems := make([]abi.Token, typ.Len)
		for i := range elems {
			elems[i] = zeroToken(typ.Elem)
		}
		return abi.Array(elems...)
	case abi.KindVector:
		return abi.Vector()
	case abi.KindTuple, abi.KindStruct:
		elems := make([]abi.Token, len(typ.Fields))
		for i, f := range typ.Fields {
			elems[i] = zeroToken(f.Type)
		}
		if typ.Kind == abi.KindTuple {
			return abi.Tuple(elems...)
		}
		return abi.Struct(elems...)
	case abi.KindEnum:
		return abi.Enum(0, zeroToken(typ.Fields[0].Type))
	default:
		return abi.Unit()
	}
}

// limitsConfig mirrors codec.DecoderConfig for the TOML override file.
// Omitted keys keep their defaults.
type limitsConfig struct {
	MaxDepth      *uint64 `toml:"max_depth"`
	MaxTokens     *uint64 `toml:"max_tokens"`
	MaxTotalBytes *uint64 `toml:"max_total_bytes"`
}

func loadLimits(path string, base codec.DecoderConfig) (codec.DecoderConfig, error) {
	var lc limitsConfig
	if _, err := toml.DecodeFile(path, &lc); err != nil {
		return base, err
	}
	if lc.MaxDepth != nil {
		base.MaxDepth = *lc.MaxDepth
	}
	if lc.MaxTokens != nil {
		base.MaxTokens = *lc.MaxTokens
	}
	if lc.MaxTotalBytes != nil {
		base.MaxTotalBytes = *lc.MaxTotalBytes
	}
	return base, nil
}
