package parser

import (
	"testing"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/lexer"
)

func parseExpr(t *testing.T, source string) ast.Expr {
	t.Helper()
	reporter := &errors.Reporter{}
	tokens := lexer.New(source).ScanTokens()
	p := New(tokens, reporter)
	statements := p.ParseProgram()
	if reporter.HadError() {
		t.Fatalf("unexpected parse errors: %s", reporter.FormatAll())
	}
	if len(statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(statements))
	}
	exprStmt, ok := statements[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ExpressionStmt", statements[0])
	}
	return exprStmt.Expression
}

func TestPrecedenceClimbing(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3;":   "(+ 1 (* 2 3))",
		"(1 + 2) * 3;": "(* (group (+ 1 2)) 3)",
		"1 < 2 == true;": "(== (< 1 2) true)",
		"-1 * 2;":      "(* (- 1) 2)",
		"a and b or c;": "(or (and a b) c)",
	}
	for source, want := range cases {
		got := ast.Print(parseExpr(t, source))
		if got != want {
			t.Errorf("Print(%q) = %q, want %q", source, got, want)
		}
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	got := ast.Print(parseExpr(t, "a = b = 3;"))
	want := "(= a (= b 3))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCallAndGetChain(t *testing.T) {
	got := ast.Print(parseExpr(t, "a.b(1, 2).c;"))
	want := "(get c (call (get b a) 1 2))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMissingSemicolonReportsError(t *testing.T) {
	reporter := &errors.Reporter{}
	tokens := lexer.New("var x = 1").ScanTokens()
	p := New(tokens, reporter)
	p.ParseProgram()
	if !reporter.HadError() {
		t.Fatal("expected a parse error for the missing semicolon")
	}
}

func TestInvalidAssignmentTargetReportsError(t *testing.T) {
	reporter := &errors.Reporter{}
	tokens := lexer.New("1 = 2;").ScanTokens()
	p := New(tokens, reporter)
	p.ParseProgram()
	if !reporter.HadError() {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
}

func TestForLoopDesugarsToWhile(t *testing.T) {
	reporter := &errors.Reporter{}
	tokens := lexer.New("for (var i = 0; i < 3; i = i + 1) print i;").ScanTokens()
	p := New(tokens, reporter)
	statements := p.ParseProgram()
	if reporter.HadError() {
		t.Fatalf("unexpected parse errors: %s", reporter.FormatAll())
	}
	block, ok := statements[0].(*ast.BlockStmt)
	if !ok || len(block.Statements) != 2 {
		t.Fatalf("got %#v, want a 2-statement block (init + while)", statements[0])
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Fatalf("first desugared statement is %T, want *ast.VarStmt", block.Statements[0])
	}
	if _, ok := block.Statements[1].(*ast.WhileStmt); !ok {
		t.Fatalf("second desugared statement is %T, want *ast.WhileStmt", block.Statements[1])
	}
}

func TestClassWithSuperclass(t *testing.T) {
	reporter := &errors.Reporter{}
	tokens := lexer.New("class Cake < Pastry { init() { this.taste = \"sweet\"; } }").ScanTokens()
	p := New(tokens, reporter)
	statements := p.ParseProgram()
	if reporter.HadError() {
		t.Fatalf("unexpected parse errors: %s", reporter.FormatAll())
	}
	class, ok := statements[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassStmt", statements[0])
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "Pastry" {
		t.Fatalf("got superclass %#v, want Pastry", class.Superclass)
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "init" {
		t.Fatalf("got methods %#v, want a single init method", class.Methods)
	}
}
