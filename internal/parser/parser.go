// Package parser implements the Lox parser: recursive descent for
// statements, Pratt (precedence-climbing) parsing for expressions.
package parser

import (
	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
)

// Precedence levels, lowest to highest. Each level's infix operators are
// registered in the precedences table below; parsePrecedence climbs the
// table until it meets an operator that binds no more tightly than the
// minimum it was asked for (so operators of equal precedence associate to
// the left).
const (
	_ int = iota
	LOWEST
	OR
	AND
	EQUALITY
	COMPARISON
	TERM
	FACTOR
	UNARY
	CALL
)

var precedences = map[token.Type]int{
	token.OR:            OR,
	token.AND:           AND,
	token.EQUAL_EQUAL:   EQUALITY,
	token.BANG_EQUAL:    EQUALITY,
	token.GREATER:       COMPARISON,
	token.GREATER_EQUAL: COMPARISON,
	token.LESS:          COMPARISON,
	token.LESS_EQUAL:    COMPARISON,
	token.PLUS:          TERM,
	token.MINUS:         TERM,
	token.STAR:          FACTOR,
	token.SLASH:         FACTOR,
	token.LEFT_PAREN:    CALL,
	token.DOT:           CALL,
}

const maxArgs = 255

type prefixParseFn func() ast.Expr
type infixParseFn func(left ast.Expr) ast.Expr

// parseError unwinds the recursive descent back to the nearest statement
// boundary; it is never returned to a caller outside this package.
type parseError struct{}

// Parser turns a flat token slice into a Lox AST, collecting syntax errors
// into a shared Reporter instead of stopping at the first one.
type Parser struct {
	tokens []token.Token
	cur    int

	reporter *errors.Reporter

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser over tokens (normally the output of lexer.ScanTokens),
// reporting syntax errors into reporter.
func New(tokens []token.Token, reporter *errors.Reporter) *Parser {
	p := &Parser{tokens: tokens, reporter: reporter}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.NUMBER:     p.parseLiteral,
		token.STRING:     p.parseLiteral,
		token.TRUE:       p.parseLiteral,
		token.FALSE:      p.parseLiteral,
		token.NIL:        p.parseLiteral,
		token.LEFT_PAREN: p.parseGrouping,
		token.MINUS:      p.parseUnary,
		token.BANG:       p.parseUnary,
		token.IDENTIFIER: p.parseVariable,
		token.THIS:       p.parseThis,
		token.SUPER:      p.parseSuper,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:          p.parseBinary,
		token.MINUS:         p.parseBinary,
		token.STAR:          p.parseBinary,
		token.SLASH:         p.parseBinary,
		token.EQUAL_EQUAL:   p.parseBinary,
		token.BANG_EQUAL:    p.parseBinary,
		token.GREATER:       p.parseBinary,
		token.GREATER_EQUAL: p.parseBinary,
		token.LESS:          p.parseBinary,
		token.LESS_EQUAL:    p.parseBinary,
		token.AND:           p.parseLogical,
		token.OR:            p.parseLogical,
		token.LEFT_PAREN:    p.parseCallTail,
		token.DOT:           p.parseGetTail,
	}

	return p
}

// ParseProgram parses the whole token stream as a sequence of top-level
// declarations, recovering from syntax errors at statement boundaries so
// that a single mistake reports one diagnostic instead of aborting parsing.
func (p *Parser) ParseProgram() []ast.Stmt {
	var statements []ast.Stmt
	for !p.atEnd() {
		if stmt := p.declarationRecover(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func (p *Parser) declarationRecover() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()
	return p.declaration()
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		p.consume(token.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.Variable{Name: p.previous()}
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")
	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")
	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")
	var initializer ast.Expr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.LEFT_BRACE):
		return &ast.BlockStmt{Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars "for (init; cond; incr) body" into the equivalent
// while loop: { init; while (cond) { body; incr; } }. There is no ast.ForStmt
// node; by the time the parser is done, "for" has no runtime representation
// of its own.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintStmt{Expression: value}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Condition: condition, Body: body}
}

func (p *Parser) block() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		if stmt := p.declarationRecover(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return statements
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expression: expr}
}

// expression parses the full grammar via assignment, the lowest (loosest
// binding) production.
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is handled outside the Pratt table: its right-hand side must
// itself be a full assignment (right-associative), and its left-hand side
// is validated only after being parsed as an ordinary expression, matching
// how a single "=" sign can't be distinguished from equality by a lookahead
// of 1.
func (p *Parser) assignment() ast.Expr {
	expr := p.parsePrecedence(LOWEST)

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}
	return expr
}

func (p *Parser) parsePrecedence(minPrec int) ast.Expr {
	prefix, ok := p.prefixParseFns[p.peek().Type]
	if !ok {
		p.errorAt(p.peek(), "Expect expression.")
		panic(parseError{})
	}
	left := prefix()

	for !p.check(token.SEMICOLON) && minPrec < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peek().Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek().Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parseLiteral() ast.Expr {
	tok := p.advance()
	switch tok.Type {
	case token.TRUE:
		return &ast.Literal{Value: true}
	case token.FALSE:
		return &ast.Literal{Value: false}
	case token.NIL:
		return &ast.Literal{Value: nil}
	default:
		return &ast.Literal{Value: tok.Literal}
	}
}

func (p *Parser) parseGrouping() ast.Expr {
	p.advance() // consume '('
	expr := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
	return &ast.Grouping{Expression: expr}
}

func (p *Parser) parseUnary() ast.Expr {
	operator := p.advance()
	right := p.parsePrecedence(UNARY)
	return &ast.Unary{Operator: operator, Right: right}
}

func (p *Parser) parseVariable() ast.Expr {
	return &ast.Variable{Name: p.advance()}
}

func (p *Parser) parseThis() ast.Expr {
	return &ast.This{Keyword: p.advance()}
}

func (p *Parser) parseSuper() ast.Expr {
	keyword := p.advance()
	p.consume(token.DOT, "Expect '.' after 'super'.")
	method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
	return &ast.Super{Keyword: keyword, Method: method}
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	operator := p.advance()
	prec := precedences[operator.Type]
	right := p.parsePrecedence(prec)
	return &ast.Binary{Left: left, Operator: operator, Right: right}
}

func (p *Parser) parseLogical(left ast.Expr) ast.Expr {
	operator := p.advance()
	prec := precedences[operator.Type]
	right := p.parsePrecedence(prec)
	return &ast.Logical{Left: left, Operator: operator, Right: right}
}

func (p *Parser) parseCallTail(callee ast.Expr) ast.Expr {
	p.advance() // consume '('
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) parseGetTail(object ast.Expr) ast.Expr {
	p.advance() // consume '.'
	name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
	return &ast.Get{Object: object, Name: name}
}

// --- token cursor helpers ---

func (p *Parser) peek() token.Token     { return p.tokens[p.cur] }
func (p *Parser) previous() token.Token { return p.tokens[p.cur-1] }
func (p *Parser) atEnd() bool           { return p.peek().Type == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.cur++
	}
	return p.previous()
}

func (p *Parser) check(typ token.Type) bool {
	if p.atEnd() {
		return typ == token.EOF
	}
	return p.peek().Type == typ
}

func (p *Parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(typ token.Type, message string) token.Token {
	if p.check(typ) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	panic(parseError{})
}

func (p *Parser) errorAt(tok token.Token, message string) {
	p.reporter.ReportAt(tok, message)
}

// synchronize discards tokens until it reaches a plausible statement
// boundary, so that one syntax error does not cascade into a flood of
// spurious follow-on diagnostics.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
