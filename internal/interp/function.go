package interp

import "github.com/cwbudde/golox/internal/ast"

// returnSignal carries a "return" statement's value back up through the
// ordinary error-return plumbing of exec/eval. It is never reported to the
// user; UserFunction.Call is the only place that ever unwraps one.
type returnSignal struct {
	value Value
}

func (returnSignal) Error() string { return "return outside of function" }

// UserFunction is a Lox function or method: its declaration plus the
// environment it closed over at definition time.
type UserFunction struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func NewUserFunction(decl *ast.FunctionStmt, closure *Environment, isInitializer bool) *UserFunction {
	return &UserFunction{Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

func (f *UserFunction) Type() string   { return "function" }
func (f *UserFunction) String() string { return "<fn " + f.Declaration.Name.Lexeme + ">" }
func (f *UserFunction) Arity() int     { return len(f.Declaration.Params) }

// Bind produces a copy of f whose closure has "this" bound to instance, the
// mechanism method calls and "super.method()" both use to recover the
// receiver.
func (f *UserFunction) Bind(instance *Instance) *UserFunction {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return NewUserFunction(f.Declaration, env, f.IsInitializer)
}

// Call runs the function body in a fresh environment, enclosed by its
// closure, with parameters bound to args. A "return" statement inside the
// body surfaces here as a returnSignal and is translated into a normal
// return value; any other error (a runtime error) propagates unchanged.
func (f *UserFunction) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.Declaration.Body, env)
	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			if f.IsInitializer {
				return f.Closure.GetAt(0, "this"), nil
			}
			return ret.value, nil
		}
		return nil, err
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return NilValue, nil
}
