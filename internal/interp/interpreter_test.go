package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/resolver"
)

// run scans, parses, resolves and interprets source against a fresh
// Interpreter, returning everything it printed and any error the pipeline
// stopped at.
func run(t *testing.T, source string) (string, error) {
	t.Helper()
	reporter := &errors.Reporter{}

	tokens := lexer.New(source).ScanTokens()
	statements := parser.New(tokens, reporter).ParseProgram()
	if reporter.HadError() {
		t.Fatalf("unexpected parse errors for %q: %s", source, reporter.FormatAll())
	}

	locals := resolver.New(reporter).Resolve(statements)
	if reporter.HadError() {
		t.Fatalf("unexpected resolve errors for %q: %s", source, reporter.FormatAll())
	}

	var out bytes.Buffer
	in := New(&out)
	in.SetLocals(locals)
	err := in.Interpret(statements)
	return out.String(), err
}

func TestArithmeticAndPrinting(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "7" {
		t.Fatalf("got %q, want %q", out, "7")
	}
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "foobar" {
		t.Fatalf("got %q, want %q", out, "foobar")
	}
}

func TestNilPlusNilIsRuntimeError(t *testing.T) {
	_, err := run(t, `print nil + nil;`)
	if err == nil {
		t.Fatal("expected a runtime error for nil + nil")
	}
	if _, ok := err.(*errors.RuntimeError); !ok {
		t.Fatalf("got error of type %T, want *errors.RuntimeError", err)
	}
}

func TestTruthinessOfZeroAndEmptyString(t *testing.T) {
	out, err := run(t, `
		if (0) print "zero is truthy"; else print "zero is falsey";
		if ("") print "empty string is truthy"; else print "empty string is falsey";
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "zero is truthy\nempty string is truthy\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestClosureCapturesVariableByReference(t *testing.T) {
	out, err := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n2\n3\n" {
		t.Fatalf("got %q, want counter to increment across calls", out)
	}
}

func TestClassInstantiationAndMethodCall(t *testing.T) {
	out, err := run(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				print "Hello, " + this.name + "!";
			}
		}
		var g = Greeter("world");
		g.greet();
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "Hello, world!" {
		t.Fatalf("got %q, want greeting", out)
	}
}

func TestInheritanceAndSuperDispatch(t *testing.T) {
	out, err := run(t, `
		class Pastry {
			cook() {
				print "Fry until golden brown.";
			}
		}
		class Cake < Pastry {
			cook() {
				super.cook();
				print "Pipe frosting.";
			}
		}
		Cake().cook();
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Fry until golden brown.\nPipe frosting.\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestFieldShadowsMethodReturnsUnbound(t *testing.T) {
	out, err := run(t, `
		class Box {
			value() {
				return "method";
			}
		}
		var b = Box();
		b.value = "field";
		print b.value;
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "field" {
		t.Fatalf("got %q, want field value to shadow the method", out)
	}
}

func TestPrintingInstanceUsesClassNameFormat(t *testing.T) {
	out, err := run(t, `
		class Bagel {}
		print Bagel();
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "Bagel instance" {
		t.Fatalf("got %q, want %q", out, "Bagel instance")
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print undeclared;`)
	if err == nil {
		t.Fatal("expected a runtime error for an undefined variable")
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `var x = 1; x();`)
	if err == nil {
		t.Fatal("expected a runtime error for calling a non-callable value")
	}
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		fun add(a, b) { return a + b; }
		add(1);
	`)
	if err == nil {
		t.Fatal("expected a runtime error for an arity mismatch")
	}
}

func TestRecursiveFibonacci(t *testing.T) {
	out, err := run(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "55" {
		t.Fatalf("got %q, want %q", out, "55")
	}
}

func TestForLoopDesugaring(t *testing.T) {
	out, err := run(t, `
		var sum = 0;
		for (var i = 1; i <= 5; i = i + 1) {
			sum = sum + i;
		}
		print sum;
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "15" {
		t.Fatalf("got %q, want %q", out, "15")
	}
}
