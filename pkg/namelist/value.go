package namelist

import (
	"strconv"
	"strings"
)

// Kind identifies the scalar kind of a Value, or the expected kind of a
// Param's values during parsing.
type Kind int

const (
	KindAny    Kind = iota // infer during parsing
	KindBool               // .TRUE. / .FALSE.
	KindInt                // integer literal
	KindFloat              // fixed-point literal
	KindString             // single-quoted literal
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is one scalar parameter value. The zero Value is not valid;
// use the Bool, Int, Float and Str constructors.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating-point Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Str returns a string Value.
func Str(v string) Value { return Value{kind: KindString, s: v} }

// Ints builds a Value slice from integer literals.
func Ints(vs ...int64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Int(v)
	}
	return out
}

// Floats builds a Value slice from float literals.
func Floats(vs ...float64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Float(v)
	}
	return out
}

// Strs builds a Value slice from string literals.
func Strs(vs ...string) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Str(v)
	}
	return out
}

// Kind returns the scalar kind of the value.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload. Valid only when Kind is KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload. Valid only when Kind is KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. Valid only when Kind is KindFloat.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload. Valid only when Kind is KindString.
func (v Value) Str() string { return v.s }

// format renders the value in FDS literal syntax. precision is the
// number of decimal digits for floats; precision <= 0 selects the
// shortest fixed-point form that round-trips.
func (v Value) format(precision int) string {
	switch v.kind {
	case KindBool:
		if v.b {
			return ".TRUE."
		}
		return ".FALSE."
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		if precision > 0 {
			return strconv.FormatFloat(v.f, 'f', precision, 64)
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return quote(v.s)
	default:
		return ""
	}
}

// quote renders s as an FDS single-quoted string literal, doubling
// internal single quotes ("O'Brien" -> "'O''Brien'").
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
