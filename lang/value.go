package lang

import (
	"math"
	"strconv"
	"strings"
)

// Value is the dynamically-typed result of evaluation. It is exactly one of
// [Num], [Str], [Bool], [List], [Dict] or [Void].
//
// Values are immutable once produced. Operators never modify their operands;
// composite results are always freshly allocated.
type Value interface {
	// Type returns the name of the value's type as surfaced in diagnostics.
	Type() string

	// String returns the value in literal syntax.
	String() string

	value()
}

type (
	// Num is a 64-bit floating-point number.
	Num float64

	// Str is a string.
	Str string

	// Bool is a boolean.
	Bool bool

	// List is an ordered sequence of values.
	List []Value

	// Dict maps unique string keys to values. Key order is not significant.
	Dict map[string]Value

	// Void is the absence of a value, e.g. the result of a block.
	Void struct{}
)

func (Num) Type() string  { return "number" }
func (Str) Type() string  { return "string" }
func (Bool) Type() string { return "boolean" }
func (List) Type() string { return "list" }
func (Dict) Type() string { return "dictionary" }
func (Void) Type() string { return "void" }

func (Num) value()  {}
func (Str) value()  {}
func (Bool) value() {}
func (List) value() {}
func (Dict) value() {}
func (Void) value() {}

func (v Num) String() string  { return formatNumber(float64(v)) }
func (v Str) String() string  { return `"` + Escape(string(v)) + `"` }
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }
func (Void) String() string   { return "void" }

func (v List) String() string {
	var sb strings.Builder

	sb.WriteByte('[')

	for i, e := range v {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(e.String())
	}

	sb.WriteByte(']')

	return sb.String()
}

func (v Dict) String() string {
	var sb strings.Builder

	sb.WriteByte('{')

	for i, k := range sortedKeys(v) {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(Str(k).String())
		sb.WriteString(": ")
		sb.WriteString(v[k].String())
	}

	sb.WriteByte('}')

	return sb.String()
}

// Native converts v to plain Go values: float64, string, bool, []any,
// map[string]any, or nil for [Void].
func Native(v Value) any {
	switch v := v.(type) {
	case Num:
		return float64(v)
	case Str:
		return string(v)
	case Bool:
		return bool(v)
	case List:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = Native(e)
		}

		return out
	case Dict:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = Native(e)
		}

		return out
	default:
		return nil
	}
}

// formatNumber renders f in its shortest decimal form without an exponent.
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}
