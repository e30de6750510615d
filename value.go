package sqlseed

import (
	"bytes"
	"fmt"
	"time"
)

// Kind identifies the runtime type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
	KindBool
	KindBytes
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is a closed variant over the value kinds SQL drivers can marshal:
// null, integer, float, text, boolean, byte sequence and timestamp.
// Using a closed set instead of bare interface{} means marshaling is
// exhaustive and type errors surface before a statement executes.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	raw  []byte
	t    time.Time
}

// Null returns the SQL NULL value.
func Null() Value { return Value{kind: KindNull} }

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating-point value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Text returns a string value.
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Bool returns a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Bytes returns a byte-sequence value. The slice is copied.
func Bytes(v []byte) Value {
	return Value{kind: KindBytes, raw: append([]byte(nil), v...)}
}

// Time returns a timestamp value.
func Time(v time.Time) Value { return Value{kind: KindTime, t: v} }

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// Go returns the underlying Go value: nil, int64, float64, string, bool,
// []byte or time.Time depending on Kind.
func (v Value) Go() any { return v.driverArg() }

// Equal reports whether two values hold the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindText:
		return v.s == o.s
	case KindBool:
		return v.b == o.b
	case KindBytes:
		return bytes.Equal(v.raw, o.raw)
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindText:
		return v.s
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindBytes:
		return fmt.Sprintf("0x%x", v.raw)
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return "unknown"
	}
}

// driverArg marshals the value into the form passed to database/sql as a
// positional statement argument.
func (v Value) driverArg() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBool:
		return v.b
	case KindBytes:
		return v.raw
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// valueFrom converts a scanned database/sql result back into a Value. The
// driver.Value universe is exactly the set below; anything else means the
// driver handed back a type this helper cannot represent.
func valueFrom(src any) (Value, error) {
	switch v := src.(type) {
	case nil:
		return Null(), nil
	case int64:
		return Int(v), nil
	case float64:
		return Float(v), nil
	case bool:
		return Bool(v), nil
	case []byte:
		return Bytes(v), nil
	case string:
		return Text(v), nil
	case time.Time:
		return Time(v), nil
	default:
		return Value{}, fmt.Errorf("unsupported column type %T", src)
	}
}
