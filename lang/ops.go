package lang

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// MaxStringLength bounds the length in bytes of a string built by repetition.
const MaxStringLength = 1 << 30

// The binary operators below are total: every type pair not listed in a case
// fails with an InvalidOperation diagnostic naming both operand types.
// Returned diagnostics carry no location; the evaluator attaches it.

// Add implements +: numeric addition, string concatenation (a number
// operand is stringified), list concatenation and dictionary merge, where
// entries of r replace entries of l with the same key.
func Add(l, r Value) (Value, error) {
	switch a := l.(type) {
	case Num:
		switch b := r.(type) {
		case Num:
			return a + b, nil
		case Str:
			return Str(formatNumber(float64(a))) + b, nil
		}

	case Str:
		switch b := r.(type) {
		case Str:
			return a + b, nil
		case Num:
			return a + Str(formatNumber(float64(b))), nil
		}

	case List:
		if b, ok := r.(List); ok {
			return List(slices.Concat(a, b)), nil
		}

	case Dict:
		if b, ok := r.(Dict); ok {
			out := make(Dict, len(a)+len(b))
			maps.Copy(out, a)
			maps.Copy(out, b)

			return out, nil
		}
	}

	return nil, invalidOperation("+", l, r)
}

// Sub implements -.
func Sub(l, r Value) (Value, error) {
	if a, b, ok := nums(l, r); ok {
		return a - b, nil
	}

	return nil, invalidOperation("-", l, r)
}

// Mul implements *: numeric product, or repetition of a string by a number
// on either side. The count is truncated toward zero; a count that is not
// positive yields the empty string.
func Mul(l, r Value) (Value, error) {
	if a, b, ok := nums(l, r); ok {
		return a * b, nil
	}

	switch a := l.(type) {
	case Str:
		if b, ok := r.(Num); ok {
			return repeat(a, b)
		}
	case Num:
		if b, ok := r.(Str); ok {
			return repeat(b, a)
		}
	}

	return nil, invalidOperation("*", l, r)
}

// Div implements /. Division by zero follows IEEE-754.
func Div(l, r Value) (Value, error) {
	if a, b, ok := nums(l, r); ok {
		return a / b, nil
	}

	return nil, invalidOperation("/", l, r)
}

// Rem implements %, the remainder of truncated division. The result has the
// sign of the dividend.
func Rem(l, r Value) (Value, error) {
	if a, b, ok := nums(l, r); ok {
		return Num(math.Mod(float64(a), float64(b))), nil
	}

	return nil, invalidOperation("%", l, r)
}

// Pow implements **.
func Pow(l, r Value) (Value, error) {
	if a, b, ok := nums(l, r); ok {
		return Num(math.Pow(float64(a), float64(b))), nil
	}

	return nil, invalidOperation("**", l, r)
}

// Eq implements ==. It never fails; values of different types are unequal.
func Eq(l, r Value) (Value, error) { return Bool(Equal(l, r)), nil }

// Ne implements !=.
func Ne(l, r Value) (Value, error) { return Bool(!Equal(l, r)), nil }

// Lt implements <.
func Lt(l, r Value) (Value, error) {
	if a, b, ok := nums(l, r); ok {
		return Bool(a < b), nil
	}

	return nil, invalidOperation("<", l, r)
}

// Gt implements >.
func Gt(l, r Value) (Value, error) {
	if a, b, ok := nums(l, r); ok {
		return Bool(a > b), nil
	}

	return nil, invalidOperation(">", l, r)
}

// Le implements <=.
func Le(l, r Value) (Value, error) {
	if a, b, ok := nums(l, r); ok {
		return Bool(a <= b), nil
	}

	return nil, invalidOperation("<=", l, r)
}

// Ge implements >=.
func Ge(l, r Value) (Value, error) {
	if a, b, ok := nums(l, r); ok {
		return Bool(a >= b), nil
	}

	return nil, invalidOperation(">=", l, r)
}

// And implements logical and over two already-evaluated booleans.
func And(l, r Value) (Value, error) {
	if a, b, ok := bools(l, r); ok {
		return a && b, nil
	}

	return nil, invalidOperation("and", l, r)
}

// Or implements logical or over two already-evaluated booleans.
func Or(l, r Value) (Value, error) {
	if a, b, ok := bools(l, r); ok {
		return a || b, nil
	}

	return nil, invalidOperation("or", l, r)
}

// Neg implements unary -.
func Neg(v Value) (Value, error) {
	if a, ok := v.(Num); ok {
		return -a, nil
	}

	return nil, invalidUnaryOperation("-", v)
}

// Not implements unary not.
func Not(v Value) (Value, error) {
	if a, ok := v.(Bool); ok {
		return !a, nil
	}

	return nil, invalidUnaryOperation("not", v)
}

// Equal reports whether l and r are structurally equal. Numbers compare by
// IEEE-754 equality, so NaN is unequal to itself.
func Equal(l, r Value) bool {
	switch a := l.(type) {
	case Num:
		b, ok := r.(Num)

		return ok && a == b
	case Str:
		b, ok := r.(Str)

		return ok && a == b
	case Bool:
		b, ok := r.(Bool)

		return ok && a == b
	case Void:
		_, ok := r.(Void)

		return ok
	case List:
		b, ok := r.(List)

		return ok && slices.EqualFunc(a, b, Equal)
	case Dict:
		b, ok := r.(Dict)
		if !ok || len(a) != len(b) {
			return false
		}

		for k, x := range a {
			y, ok := b[k]
			if !ok || !Equal(x, y) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func nums(l, r Value) (Num, Num, bool) {
	a, ok := l.(Num)
	if !ok {
		return 0, 0, false
	}

	b, ok := r.(Num)

	return a, b, ok
}

func bools(l, r Value) (Bool, Bool, bool) {
	a, ok := l.(Bool)
	if !ok {
		return false, false, false
	}

	b, ok := r.(Bool)

	return a, b, ok
}

func repeat(s Str, count Num) (Value, error) {
	n := math.Trunc(float64(count))
	if !(n > 0) || s == "" {
		return Str(""), nil
	}

	if n > float64(MaxStringLength/len(s)) {
		return nil, &Diagnostic{
			Code:    CodeLimitExceeded,
			Message: "String repetition exceeds the maximum string length",
			Op:      "*",
		}
	}

	return Str(strings.Repeat(string(s), int(n))), nil
}
