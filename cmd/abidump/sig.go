package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/embervm/ember-go/abi"
)

// parseSig parses the compact signature grammar produced by abi.Type.String:
//
//	bool u8 u16 u32 u64 u128 u256 b256 unit bytes raw_slice str_slice
//	str[N]  array[T; N]  vec<T>  (T,T,...)  struct Name{f:T,...}  enum Name{V:T,...}
//
// Whitespace is insignificant outside identifiers.
func parseSig(s string) (*abi.Type, error) {
	p := &sigParser{src: s}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing input %q", p.src[p.pos:])
	}
	return typ, nil
}

var primitives = map[string]*abi.Type{
	"bool":      abi.BoolType,
	"u8":        abi.U8Type,
	"u16":       abi.U16Type,
	"u32":       abi.U32Type,
	"u64":       abi.U64Type,
	"u128":      abi.U128Type,
	"u256":      abi.U256Type,
	"b256":      abi.B256Type,
	"unit":      abi.UnitType,
	"bytes":     abi.BytesType,
	"raw_slice": abi.RawSliceType,
	"str_slice": abi.StringSliceType,
}

type sigParser struct {
	src string
	pos int
}

func (p *sigParser) errorf(format string, args ...any) error {
	return fmt.Errorf("at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *sigParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *sigParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *sigParser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return p.errorf("expected %q", string(c))
	}
	p.pos++
	return nil
}

func (p *sigParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *sigParser) number() (uint64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, p.errorf("expected number")
	}
	n, err := strconv.ParseUint(p.src[start:p.pos], 10, 64)
	if err != nil {
		return 0, p.errorf("bad number: %v", err)
	}
	return n, nil
}

func (p *sigParser) parseType() (*abi.Type, error) {
	p.skipSpace()
	if p.peek() == '(' {
		return p.parseTuple()
	}

	word := p.ident()
	if word == "" {
		return nil, p.errorf("expected type")
	}

	switch word {
	case "str":
		if err := p.expect('['); err != nil {
			return nil, err
		}
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return abi.StringOf(n), nil

	case "array":
		if err := p.expect('['); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(';'); err != nil {
			return nil, err
		}
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return abi.ArrayOf(elem, n), nil

	case "vec":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return abi.VectorOf(elem), nil

	case "struct", "enum":
		return p.parseFielded(word)
	}

	if typ, ok := primitives[word]; ok {
		return typ, nil
	}
	return nil, p.errorf("unknown type %q", word)
}

func (p *sigParser) parseTuple() (*abi.Type, error) {
	p.pos++ // consume '('
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return abi.TupleOf(), nil
	}

	var elems []*abi.Type
	for {
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return abi.TupleOf(elems...), nil
}

// parseFielded handles struct and enum bodies, both shaped Name{f:T,...}.
// The name before the brace is optional.
func (p *sigParser) parseFielded(keyword string) (*abi.Type, error) {
	p.skipSpace()
	name := p.ident()
	if err := p.expect('{'); err != nil {
		return nil, err
	}

	var fields []abi.Field
	p.skipSpace()
	if p.peek() != '}' {
		for {
			p.skipSpace()
			fname := p.ident()
			if fname == "" {
				return nil, p.errorf("expected field name")
			}
			if err := p.expect(':'); err != nil {
				return nil, err
			}
			ftype, err := p.parseType()
			if err != nil {
				return nil, err
			}
			fields = append(fields, abi.Field{Name: fname, Type: ftype})
			p.skipSpace()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}
	}
	if err := p.expect('}'); err != nil {
		return nil, err
	}

	if keyword == "enum" {
		if len(fields) == 0 {
			return nil, p.errorf("enum needs at least one variant")
		}
		return abi.EnumOf(name, fields...), nil
	}
	return abi.StructOf(name, fields...), nil
}

// signatureOf is the inverse used in round-trip tests and the interactive
// header; it just defers to the descriptor's own renderer.
func signatureOf(t *abi.Type) string {
	return strings.TrimSpace(t.String())
}
