// Package interp implements the Lox tree-walking evaluator: environments,
// runtime values, classes and the statement/expression dispatch that walks
// a resolved AST to produce output and side effects.
package interp

import (
	"fmt"
	"io"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
)

// Interpreter walks a parsed, resolved program and executes it.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[ast.Expr]int

	Stdout io.Writer
}

// New creates an Interpreter that writes "print" output to stdout and has
// every native function (currently just clock) defined in its global
// scope.
func New(stdout io.Writer) *Interpreter {
	globals := NewEnvironment()
	defineGlobals(globals)
	return &Interpreter{globals: globals, environment: globals, Stdout: stdout}
}

// SetLocals installs the resolver's distance side table. It must be called
// before Interpret; a nil or missing entry for an expression means "this is
// a global, look it up by name instead of by distance". Entries from earlier
// calls are kept, so functions declared by a previous unit of source (an
// earlier REPL line) still find their local variables.
func (in *Interpreter) SetLocals(locals map[ast.Expr]int) {
	if in.locals == nil {
		in.locals = make(map[ast.Expr]int, len(locals))
	}
	for expr, distance := range locals {
		in.locals[expr] = distance
	}
}

// Interpret executes statements in order, stopping at (and returning) the
// first runtime error.
func (in *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expression)
		return err

	case *ast.PrintStmt:
		value, err := in.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Stdout, stringify(value))
		return nil

	case *ast.VarStmt:
		value := NilValue
		if s.Initializer != nil {
			v, err := in.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return in.executeBlock(s.Statements, NewEnclosedEnvironment(in.environment))

	case *ast.IfStmt:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.execute(s.Then)
		} else if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := NewUserFunction(s, in.environment, false)
		in.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		value := NilValue
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{value: value}

	case *ast.ClassStmt:
		return in.executeClass(s)

	default:
		return fmt.Errorf("interp: unhandled statement type %T", s)
	}
}

// executeBlock runs statements in env, restoring the previous environment
// before returning (including when a statement errors or returns), so a
// runtime error inside a block never leaves the interpreter's scope chain
// pointed at the block's now-dead environment.
func (in *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeClass evaluates a class declaration. The class name is bound to
// nil first and assigned its real value last, so that a method body
// referencing the class by name (a static factory pattern, say) resolves
// correctly even though the class object isn't fully built until its
// methods' closures already exist.
func (in *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return errors.NewRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.environment.Define(s.Name.Lexeme, NilValue)

	methodEnv := in.environment
	if superclass != nil {
		methodEnv = NewEnclosedEnvironment(in.environment)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*UserFunction, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewUserFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	in.environment.Assign(s.Name.Lexeme, class)
	return nil
}

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Grouping:
		return in.evaluate(e.Expression)

	case *ast.Variable:
		return in.lookUpVariable(e.Name, e)

	case *ast.Assign:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := in.locals[e]; ok {
			in.environment.AssignAt(distance, e.Name.Lexeme, value)
		} else if !in.globals.Assign(e.Name.Lexeme, value) {
			return nil, errors.NewRuntimeError(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
		}
		return value, nil

	case *ast.Logical:
		left, err := in.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Operator.Type == token.OR {
			if isTruthy(left) {
				return left, nil
			}
		} else if !isTruthy(left) {
			return left, nil
		}
		return in.evaluate(e.Right)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		object, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, errors.NewRuntimeError(e.Name, "Only instances have properties.")
		}
		v, err := instance.Get(e.Name.Lexeme)
		if err != nil {
			return nil, errors.NewRuntimeError(e.Name, "%s", err.Error())
		}
		return v, nil

	case *ast.Set:
		object, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, errors.NewRuntimeError(e.Name, "Only instances have fields.")
		}
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(e.Name.Lexeme, value)
		return value, nil

	case *ast.This:
		return in.lookUpVariable(e.Keyword, e)

	case *ast.Super:
		return in.evalSuper(e)

	default:
		return nil, fmt.Errorf("interp: unhandled expression type %T", e)
	}
}

func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.environment.GetAt(distance, name.Lexeme), nil
	}
	if v, ok := in.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, errors.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case token.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, errors.NewRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return Bool(!isTruthy(right)), nil
	default:
		return nil, errors.NewRuntimeError(e.Operator, "Unknown unary operator.")
	}
}

func (in *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.PLUS:
		if ln, lok := left.(Number); lok {
			if rn, rok := right.(Number); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(String); lok {
			if rs, rok := right.(String); rok {
				return ls + rs, nil
			}
		}
		return nil, errors.NewRuntimeError(e.Operator, "Args must be either Number or String.")
	case token.MINUS:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.STAR:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.SLASH:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil
	case token.GREATER:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l > r), nil
	case token.GREATER_EQUAL:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l >= r), nil
	case token.LESS:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l < r), nil
	case token.LESS_EQUAL:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l <= r), nil
	case token.BANG_EQUAL:
		return Bool(!isEqual(left, right)), nil
	case token.EQUAL_EQUAL:
		return Bool(isEqual(left, right)), nil
	default:
		return nil, errors.NewRuntimeError(e.Operator, "Unknown binary operator.")
	}
}

func (in *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, errors.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, errors.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(in, args)
}

func (in *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	distance, ok := in.locals[e]
	if !ok {
		return nil, errors.NewRuntimeError(e.Keyword, "Unresolved 'super' reference.")
	}
	superclass, ok := in.environment.GetAt(distance, "super").(*Class)
	if !ok {
		return nil, errors.NewRuntimeError(e.Keyword, "'super' must refer to a class.")
	}
	instance, ok := in.environment.GetAt(distance-1, "this").(*Instance)
	if !ok {
		return nil, errors.NewRuntimeError(e.Keyword, "'this' must refer to an instance.")
	}
	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, errors.NewRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func checkNumberOperands(op token.Token, left, right Value) (Number, Number, error) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return 0, 0, errors.NewRuntimeError(op, "Operands must be numbers.")
	}
	return l, r, nil
}

func literalValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return NilValue
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case string:
		return String(val)
	default:
		return NilValue
	}
}

func stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
