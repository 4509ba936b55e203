package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders expr as a fully-parenthesized Lisp-style s-expression,
// primarily for the CLI's "ast" debug subcommand and for tests that want a
// stable, human-readable view of a parsed expression.
func Print(expr Expr) string {
	var b strings.Builder
	printExpr(&b, expr)
	return b.String()
}

func printExpr(b *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *Literal:
		b.WriteString(literalString(e.Value))
	case *Grouping:
		parenthesize(b, "group", e.Expression)
	case *Unary:
		parenthesize(b, e.Operator.Lexeme, e.Right)
	case *Binary:
		parenthesize(b, e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		parenthesize(b, e.Operator.Lexeme, e.Left, e.Right)
	case *Variable:
		b.WriteString(e.Name.Lexeme)
	case *Assign:
		parenthesize(b, "= "+e.Name.Lexeme, e.Value)
	case *Call:
		parenthesize(b, "call", append([]Expr{e.Callee}, e.Args...)...)
	case *Get:
		parenthesize(b, "get "+e.Name.Lexeme, e.Object)
	case *Set:
		parenthesize(b, "set "+e.Name.Lexeme, e.Object, e.Value)
	case *This:
		b.WriteString("this")
	case *Super:
		b.WriteString("(super " + e.Method.Lexeme + ")")
	default:
		b.WriteString(fmt.Sprintf("<unknown expr %T>", e))
	}
}

func parenthesize(b *strings.Builder, name string, exprs ...Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		printExpr(b, e)
	}
	b.WriteByte(')')
}

func literalString(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// PrintProgram renders a sequence of top-level statements for the "ast"
// debug subcommand: one line per simple statement, with the statements
// nested in blocks, branches, loops, functions and classes on their own
// indented lines.
func PrintProgram(statements []Stmt) string {
	var b strings.Builder
	for _, stmt := range statements {
		printStmt(&b, stmt, 0)
	}
	return b.String()
}

func printStmt(b *strings.Builder, stmt Stmt, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s := stmt.(type) {
	case *ExpressionStmt:
		fmt.Fprintf(b, "%s%s;\n", indent, Print(s.Expression))
	case *PrintStmt:
		fmt.Fprintf(b, "%sprint %s;\n", indent, Print(s.Expression))
	case *VarStmt:
		if s.Initializer != nil {
			fmt.Fprintf(b, "%svar %s = %s;\n", indent, s.Name.Lexeme, Print(s.Initializer))
		} else {
			fmt.Fprintf(b, "%svar %s;\n", indent, s.Name.Lexeme)
		}
	case *BlockStmt:
		fmt.Fprintf(b, "%s{\n", indent)
		for _, inner := range s.Statements {
			printStmt(b, inner, depth+1)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case *IfStmt:
		fmt.Fprintf(b, "%sif (%s)\n", indent, Print(s.Condition))
		printStmt(b, s.Then, depth+1)
		if s.Else != nil {
			fmt.Fprintf(b, "%selse\n", indent)
			printStmt(b, s.Else, depth+1)
		}
	case *WhileStmt:
		fmt.Fprintf(b, "%swhile (%s)\n", indent, Print(s.Condition))
		printStmt(b, s.Body, depth+1)
	case *FunctionStmt:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Lexeme
		}
		fmt.Fprintf(b, "%sfun %s(%s) {\n", indent, s.Name.Lexeme, strings.Join(params, ", "))
		for _, inner := range s.Body {
			printStmt(b, inner, depth+1)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case *ReturnStmt:
		if s.Value != nil {
			fmt.Fprintf(b, "%sreturn %s;\n", indent, Print(s.Value))
		} else {
			fmt.Fprintf(b, "%sreturn;\n", indent)
		}
	case *ClassStmt:
		if s.Superclass != nil {
			fmt.Fprintf(b, "%sclass %s < %s {\n", indent, s.Name.Lexeme, s.Superclass.Name.Lexeme)
		} else {
			fmt.Fprintf(b, "%sclass %s {\n", indent, s.Name.Lexeme)
		}
		for _, m := range s.Methods {
			printStmt(b, m, depth+1)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	default:
		fmt.Fprintf(b, "%s<unknown stmt %T>\n", indent, s)
	}
}
