package interp

import "time"

// Callable is any Value that can appear on the left of a call expression:
// user-defined functions and methods, native functions, and classes
// (calling a class instantiates it).
type Callable interface {
	Value
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// NativeFunction wraps a Go function as a callable Lox value, the
// mechanism every built-in (currently just clock) is exposed through.
type NativeFunction struct {
	NameStr  string
	ArityVal int
	Fn       func(in *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) Type() string   { return "native function" }
func (n *NativeFunction) String() string { return "<native fn " + n.NameStr + ">" }
func (n *NativeFunction) Arity() int     { return n.ArityVal }
func (n *NativeFunction) Call(in *Interpreter, args []Value) (Value, error) {
	return n.Fn(in, args)
}

// defineGlobals installs every native function into the interpreter's
// global scope.
func defineGlobals(globals *Environment) {
	globals.Define("clock", &NativeFunction{
		NameStr:  "clock",
		ArityVal: 0,
		Fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
		},
	})
}
