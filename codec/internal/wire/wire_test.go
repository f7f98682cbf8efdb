package wire

import (
	"math"
	"testing"
)

func TestSafeMul(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint64
		want   uint64
		wantOK bool
	}{
		{"zero", 0, math.MaxUint64, 0, true},
		{"small", 3, 8, 24, true},
		{"max by one", math.MaxUint64, 1, math.MaxUint64, true},
		{"overflow", math.MaxUint64, 2, 0, false},
		{"overflow large", 1 << 33, 1 << 33, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeMul(tt.a, tt.b)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("SafeMul(%d, %d) = (%d, %v), want (%d, %v)",
					tt.a, tt.b, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSafeAdd(t *testing.T) {
	if _, ok := SafeAdd(math.MaxUint64, 1); ok {
		t.Error("expected overflow")
	}
	if got, ok := SafeAdd(40, 2); !ok || got != 42 {
		t.Errorf("SafeAdd(40, 2) = (%d, %v)", got, ok)
	}
}

func TestInRange(t *testing.T) {
	if !InRange(10, 2, 8) {
		t.Error("[2, 10) should fit in length 10")
	}
	if InRange(10, 3, 8) {
		t.Error("[3, 11) should not fit in length 10")
	}
	if InRange(10, math.MaxUint64, 8) {
		t.Error("offset overflow should not fit")
	}
}

func TestBoundsCheckedReads(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x02}

	if v, ok := ReadU64(data, 0); !ok || v != 0x0102 {
		t.Errorf("ReadU64 = (%#x, %v)", v, ok)
	}
	if _, ok := ReadU64(data, 1); ok {
		t.Error("ReadU64 past end should fail")
	}
	if v, ok := ReadU16(data, 6); !ok || v != 0x0102 {
		t.Errorf("ReadU16 = (%#x, %v)", v, ok)
	}
	if v, ok := ReadU32(data, 4); !ok || v != 0x0102 {
		t.Errorf("ReadU32 = (%#x, %v)", v, ok)
	}
}

func TestIsASCII(t *testing.T) {
	if !IsASCII([]byte("hello, world")) {
		t.Error("plain ASCII rejected")
	}
	if IsASCII([]byte{0x68, 0xc3, 0xa9}) {
		t.Error("non-ASCII accepted")
	}
}
