package ast

import "github.com/cwbudde/golox/internal/token"

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
}

// ExpressionStmt evaluates an expression for its side effects and discards
// the result.
type ExpressionStmt struct {
	Expression Expr
}

// PrintStmt evaluates an expression and writes its stringified value
// followed by a newline.
type PrintStmt struct {
	Expression Expr
}

// VarStmt declares a new binding in the current scope. Initializer is nil
// when the declaration has no "= expr" clause, in which case the binding is
// defined with a nil runtime value.
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

// BlockStmt introduces a new lexical scope around a sequence of statements.
type BlockStmt struct {
	Statements []Stmt
}

// IfStmt is a conditional. Else is nil when there is no else clause.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

// WhileStmt is a condition-checked loop; "for" loops desugar to this during
// parsing.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

// FunctionStmt declares a named function (or, nested inside a ClassStmt's
// Methods, a method).
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// ReturnStmt unwinds the enclosing function call with Value (nil when the
// statement is a bare "return;").
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

// ClassStmt declares a class. Superclass is nil when there is no "< Name"
// clause.
type ClassStmt struct {
	Name       token.Token
	Superclass *Variable
	Methods    []*FunctionStmt
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
func (*ClassStmt) stmtNode()      {}
