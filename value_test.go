package sqlseed

import (
	"testing"
	"time"
)

func TestValueFrom_CoversDriverTypes(t *testing.T) {
	now := time.Now().UTC()
	cases := []struct {
		src  any
		want Value
	}{
		{nil, Null()},
		{int64(42), Int(42)},
		{3.5, Float(3.5)},
		{true, Bool(true)},
		{[]byte{0x01, 0x02}, Bytes([]byte{0x01, 0x02})},
		{"alice", Text("alice")},
		{now, Time(now)},
	}
	for _, c := range cases {
		got, err := valueFrom(c.src)
		if err != nil {
			t.Fatalf("valueFrom(%T) failed: %v", c.src, err)
		}
		if !got.Equal(c.want) {
			t.Errorf("valueFrom(%v) = %v, want %v", c.src, got, c.want)
		}
	}
}

func TestValueFrom_RejectsUnknownType(t *testing.T) {
	if _, err := valueFrom(struct{}{}); err == nil {
		t.Fatal("expected an error for an unsupported scan type")
	}
}

func TestValueDriverArg(t *testing.T) {
	if got := Int(7).driverArg(); got != int64(7) {
		t.Errorf("Int arg = %v", got)
	}
	if got := Null().driverArg(); got != nil {
		t.Errorf("Null arg = %v, want nil", got)
	}
	if got := Text("x").driverArg(); got != "x" {
		t.Errorf("Text arg = %v", got)
	}
}

func TestBytesValueCopiesInput(t *testing.T) {
	buf := []byte{1, 2, 3}
	v := Bytes(buf)
	buf[0] = 9
	if !v.Equal(Bytes([]byte{1, 2, 3})) {
		t.Error("Bytes value shares the caller's slice")
	}
}

func TestValueEqual_KindMismatch(t *testing.T) {
	if Int(1).Equal(Float(1)) {
		t.Error("Int(1) should not equal Float(1)")
	}
	if Null().Equal(Text("")) {
		t.Error("Null should not equal empty Text")
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Int(-3), "-3"},
		{Float(2.5), "2.5"},
		{Text("hi"), "hi"},
		{Bool(false), "false"},
		{Bytes([]byte{0xab}), "0xab"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
