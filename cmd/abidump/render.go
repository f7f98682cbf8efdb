package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/embervm/ember-go/abi"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	fieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// renderToken renders a decoded token as an indented tree. Composite kinds
// recurse; primitives and heap blobs render on one line.
func renderToken(typ *abi.Type, tok abi.Token, depth int) string {
	indent := strings.Repeat("  ", depth)

	switch typ.Kind {
	case abi.KindArray, abi.KindVector:
		var b strings.Builder
		b.WriteString(indent)
		b.WriteString(typeStyle.Render(typ.String()))
		b.WriteString(dimStyle.Render(" len=" + strconv.Itoa(len(tok.Elems))))
		for i, el := range tok.Elems {
			b.WriteByte('\n')
			b.WriteString(indent)
			b.WriteString("  ")
			b.WriteString(dimStyle.Render("[" + strconv.Itoa(i) + "] "))
			b.WriteString(strings.TrimLeft(renderToken(typ.Elem, el, depth+1), " "))
		}
		return b.String()

	case abi.KindTuple, abi.KindStruct:
		var b strings.Builder
		b.WriteString(indent)
		if typ.Kind == abi.KindStruct {
			b.WriteString(typeStyle.Render("struct " + typ.Name))
		} else {
			b.WriteString(typeStyle.Render("tuple"))
		}
		for i, f := range typ.Fields {
			b.WriteByte('\n')
			b.WriteString(indent)
			b.WriteString("  ")
			name := f.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			b.WriteString(fieldStyle.Render(name + ": "))
			b.WriteString(strings.TrimLeft(renderToken(f.Type, tok.Elems[i], depth+1), " "))
		}
		return b.String()

	case abi.KindEnum:
		variant := typ.Fields[tok.Variant]
		var b strings.Builder
		b.WriteString(indent)
		b.WriteString(typeStyle.Render("enum " + typ.Name))
		b.WriteString(fieldStyle.Render("::" + variant.Name))
		if variant.Type.Kind != abi.KindUnit {
			b.WriteByte('\n')
			b.WriteString(renderToken(variant.Type, *tok.Payload, depth+1))
		}
		return b.String()

	default:
		return indent + typeStyle.Render(typ.Kind.String()) + " " + valueStyle.Render(scalarString(tok))
	}
}

// scalarString formats a non-composite token value.
func scalarString(tok abi.Token) string {
	switch tok.Kind {
	case abi.KindBool:
		return strconv.FormatBool(tok.Bool)
	case abi.KindU8, abi.KindU16, abi.KindU32, abi.KindU64:
		return strconv.FormatUint(tok.U64, 10)
	case abi.KindU128, abi.KindU256:
		if tok.Big == nil {
			return "0"
		}
		return tok.Big.String()
	case abi.KindB256:
		return "0x" + hex.EncodeToString(tok.B256[:])
	case abi.KindUnit:
		return "()"
	case abi.KindString, abi.KindStringSlice:
		return strconv.Quote(tok.Str)
	case abi.KindBytes, abi.KindRawSlice:
		return fmt.Sprintf("0x%s (%d bytes)", hex.EncodeToString(tok.Raw), len(tok.Raw))
	default:
		return fmt.Sprintf("%+v", tok)
	}
}
