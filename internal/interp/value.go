package interp

import (
	"strconv"
	"strings"
)

// Value is any runtime value the interpreter can produce or operate on.
type Value interface {
	Type() string
	String() string
}

// Nil is the single Lox "nil" value.
type Nil struct{}

func (Nil) Type() string   { return "nil" }
func (Nil) String() string { return "nil" }

// NilValue is the one instance of Nil in circulation; comparisons and
// defaults use it directly rather than allocating fresh Nil{} values.
var NilValue Value = Nil{}

// Bool is a Lox boolean.
type Bool bool

func (b Bool) Type() string { return "boolean" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is a Lox number: Lox has one numeric type, a double.
type Number float64

func (Number) Type() string { return "number" }
func (n Number) String() string {
	s := strconv.FormatFloat(float64(n), 'f', -1, 64)
	return strings.TrimSuffix(s, ".0")
}

// String is a Lox string.
type String string

func (String) Type() string     { return "string" }
func (s String) String() string { return string(s) }

// isTruthy implements Lox's truthiness rule: nil and false are falsey,
// everything else (including 0 and "") is truthy.
func isTruthy(v Value) bool {
	switch val := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(val)
	default:
		return true
	}
}

// isEqual implements Lox's "==", which never coerces between types.
func isEqual(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	default:
		return a == b
	}
}
