package main

import (
	"testing"

	"github.com/embervm/ember-go/abi"
)

func TestParseSig_RoundTrip(t *testing.T) {
	sigs := []string{
		"bool",
		"u8",
		"u256",
		"b256",
		"unit",
		"bytes",
		"raw_slice",
		"str_slice",
		"str[8]",
		"array[u8; 4]",
		"vec<u64>",
		"vec<array[u16; 2]>",
		"(u32,bytes)",
		"()",
		"struct Point{x:u64,y:u64}",
		"struct{inner:vec<u8>}",
		"enum Status{Idle:unit,Moving:struct Point{x:u64,y:u64}}",
		"(u8,(bool,str[2]))",
	}

	for _, sig := range sigs {
		t.Run(sig, func(t *testing.T) {
			typ, err := parseSig(sig)
			if err != nil {
				t.Fatalf("parseSig(%q): %v", sig, err)
			}
			if got := typ.String(); got != sig {
				t.Errorf("round trip = %q, want %q", got, sig)
			}
		})
	}
}

func TestParseSig_Whitespace(t *testing.T) {
	typ, err := parseSig(" struct Point { x : u64 , y : u64 } ")
	if err != nil {
		t.Fatalf("parseSig: %v", err)
	}
	want := abi.StructOf("Point",
		abi.Field{Name: "x", Type: abi.U64Type},
		abi.Field{Name: "y", Type: abi.U64Type},
	)
	if typ.String() != want.String() {
		t.Errorf("parsed %s, want %s", typ, want)
	}
}

func TestParseSig_Errors(t *testing.T) {
	bad := []string{
		"",
		"u31",
		"vec<u8",
		"array[u8]",
		"str[]",
		"struct{x}",
		"enum E{}",
		"u8 u8",
		"(u8,)",
	}
	for _, sig := range bad {
		if _, err := parseSig(sig); err == nil {
			t.Errorf("parseSig(%q) should fail", sig)
		}
	}
}
