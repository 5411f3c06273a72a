package parser

import (
	"fmt"

	"github.com/akashmaji946/lox/lexer"
)

const maxArgs = 255

// binaryOnlyOperators are the token types that can only appear as an
// infix/binary operator. If one of these starts a statement, the parser
// reports the "missing left operand" diagnostic rather than failing with
// a generic "expected expression" message.
var binaryOnlyOperators = map[lexer.TokenType]bool{
	lexer.Comma:        true,
	lexer.BangEqual:    true,
	lexer.EqualEqual:   true,
	lexer.Greater:      true,
	lexer.GreaterEqual: true,
	lexer.Less:         true,
	lexer.LessEqual:    true,
	lexer.Plus:         true,
	lexer.Slash:        true,
	lexer.Star:         true,
}

// statementBoundary lists the keywords synchronize() treats as the start
// of a fresh statement.
var statementBoundary = map[lexer.TokenType]bool{
	lexer.Class:  true,
	lexer.Fun:    true,
	lexer.Var:    true,
	lexer.For:    true,
	lexer.If:     true,
	lexer.While:  true,
	lexer.Print:  true,
	lexer.Return: true,
}

// parseError unwinds the recursive-descent call stack back to the
// nearest declaration() so synchronize() can resume parsing at a sane
// boundary. It is always recovered internally; it never escapes Parse.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

// Parser is a recursive-descent parser with two-token lookahead over a
// pre-scanned token slice. Errors are collected rather than aborting
// immediately, with the same HasErrors/GetErrors idiom the resolver
// uses.
type Parser struct {
	tokens    []lexer.Token
	current   int
	loopDepth int
	Errors    []string
}

// New creates a Parser over an already-scanned token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// HasErrors reports whether any syntax error was collected.
func (p *Parser) HasErrors() bool {
	return len(p.Errors) > 0
}

// GetErrors returns the collected syntax errors, already formatted for
// display on stderr.
func (p *Parser) GetErrors() []string {
	return p.Errors
}

// Parse consumes the whole token stream and returns the program's
// top-level statements. Parsing never aborts on the first error: each
// failed declaration synchronizes and parsing continues, so HasErrors
// must be checked by the caller before running the result.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// --- token cursor ---

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt lexer.TokenType) bool {
	if p.isAtEnd() {
		return tt == lexer.EOF
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt lexer.TokenType, message string) lexer.Token {
	if p.check(tt) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

// errorAt records a formatted diagnostic against tok and returns a
// parseError for the caller to panic with.
func (p *Parser) errorAt(tok lexer.Token, message string) parseError {
	var loc string
	switch {
	case tok.Type == lexer.EOF:
		loc = "at end"
	default:
		loc = fmt.Sprintf("at '%s'", tok.Lexeme)
	}
	p.Errors = append(p.Errors, lexer.FormatStaticError(tok.Line, loc, message))
	return parseError{}
}

// synchronize discards tokens until it reaches a plausible statement
// boundary, so one syntax error does not cascade into many.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.Semicolon {
			return
		}
		if statementBoundary[p.peek().Type] {
			return
		}
		p.advance()
	}
}

// --- declarations ---

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(lexer.Var):
		return p.varDeclaration()
	case p.check(lexer.Fun) && p.checkNext(lexer.Identifier):
		p.advance()
		return p.function("function")
	case p.match(lexer.Class):
		return p.classDeclaration()
	default:
		return p.statement()
	}
}

// checkNext looks one token past the current position without consuming
// anything; used to tell `fun name(...)` (a declaration) apart from
// `fun (...) { ... }` used as an expression statement.
func (p *Parser) checkNext(tt lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	if p.current+1 >= len(p.tokens) {
		return tt == lexer.EOF
	}
	return p.tokens[p.current+1].Type == tt
}

func (p *Parser) varDeclaration() Stmt {
	name := p.consume(lexer.Identifier, "Expect variable name.")
	var init Expr
	if p.match(lexer.Equal) {
		init = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after variable declaration.")
	return &Var{Name: name, Initializer: init}
}

func (p *Parser) classDeclaration() Stmt {
	name := p.consume(lexer.Identifier, "Expect class name.")

	var superclass *Variable
	if p.match(lexer.Less) {
		superName := p.consume(lexer.Identifier, "Expect superclass name.")
		superclass = &Variable{Name: superName}
	}

	p.consume(lexer.LeftBrace, "Expect '{' before class body.")
	var methods []*Function
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(lexer.RightBrace, "Expect '}' after class body.")

	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

// function parses a named function or method: `IDENT "(" params? ")" block`.
func (p *Parser) function(kind string) *Function {
	name := p.consume(lexer.Identifier, fmt.Sprintf("Expect %s name.", kind))
	params := p.parameters(kind)
	p.consume(lexer.LeftBrace, fmt.Sprintf("Expect '{' before %s body.", kind))
	body := p.block()
	return &Function{Name: name, Params: params, Body: body}
}

func (p *Parser) parameters(kind string) []lexer.Token {
	p.consume(lexer.LeftParen, fmt.Sprintf("Expect '(' after %s name.", kind))
	var params []lexer.Token
	if !p.check(lexer.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.consume(lexer.Identifier, "Expect parameter name."))
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	p.consume(lexer.RightParen, "Expect ')' after parameters.")
	return params
}

// --- statements ---

func (p *Parser) statement() Stmt {
	switch {
	case p.match(lexer.Print):
		return p.printStatement()
	case p.match(lexer.LeftBrace):
		return &Block{Statements: p.block()}
	case p.match(lexer.If):
		return p.ifStatement()
	case p.match(lexer.While):
		return p.whileStatement()
	case p.match(lexer.For):
		return p.forStatement()
	case p.match(lexer.Break):
		return p.breakStatement()
	case p.match(lexer.Return):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() Stmt {
	value := p.expression()
	p.consume(lexer.Semicolon, "Expect ';' after value.")
	return &Print{Expression: value}
}

func (p *Parser) block() []Stmt {
	var stmts []Stmt
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(lexer.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) ifStatement() Stmt {
	p.consume(lexer.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(lexer.RightParen, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch Stmt
	if p.match(lexer.Else) {
		elseBranch = p.statement()
	}
	return &If{Condition: cond, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *Parser) whileStatement() Stmt {
	p.consume(lexer.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(lexer.RightParen, "Expect ')' after condition.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	return &While{Condition: cond, Body: body}
}

// forStatement desugars `for (init; cond; incr) body` into a Block
// wrapping a While: missing clauses are simply omitted and a missing
// condition defaults to literal true.
func (p *Parser) forStatement() Stmt {
	p.consume(lexer.LeftParen, "Expect '(' after 'for'.")

	var initializer Stmt
	switch {
	case p.match(lexer.Semicolon):
		initializer = nil
	case p.check(lexer.Var):
		p.advance()
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition Expr
	if !p.check(lexer.Semicolon) {
		condition = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after loop condition.")

	var increment Expr
	if !p.check(lexer.RightParen) {
		increment = p.expression()
	}
	p.consume(lexer.RightParen, "Expect ')' after for clauses.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	if increment != nil {
		body = &Block{Statements: []Stmt{body, &ExpressionStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = &Literal{Value: true}
	}
	body = &While{Condition: condition, Body: body}

	if initializer != nil {
		body = &Block{Statements: []Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) breakStatement() Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.errorAt(keyword, "'break' outside a loop.")
	}
	p.consume(lexer.Semicolon, "Expect ';' after 'break'.")
	return &Break{Keyword: keyword}
}

func (p *Parser) returnStatement() Stmt {
	keyword := p.previous()
	var value Expr
	if !p.check(lexer.Semicolon) {
		value = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after return value.")
	return &Return{Keyword: keyword, Value: value}
}

func (p *Parser) expressionStatement() Stmt {
	expr := p.expression()
	p.consume(lexer.Semicolon, "Expect ';' after expression.")
	return &ExpressionStmt{Expression: expr}
}

// --- expressions ---

func (p *Parser) expression() Expr {
	return p.comma()
}

func (p *Parser) comma() Expr {
	if binaryOnlyOperators[p.peek().Type] {
		return p.missingLeftOperand(p.assignment)
	}
	expr := p.assignment()
	for p.match(lexer.Comma) {
		op := p.previous()
		right := p.assignment()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// missingLeftOperand implements the "a statement cannot start with a
// binary-only operator" diagnostic: it still consumes the right-hand
// operand at the given precedence so the parser's cursor stays aligned,
// then reports a descriptive error rather than a generic one.
func (p *Parser) missingLeftOperand(next func() Expr) Expr {
	op := p.advance()
	p.errorAt(op, fmt.Sprintf("Missing left-hand operand for '%s'.", op.Lexeme))
	next()
	panic(parseError{})
}

func (p *Parser) assignment() Expr {
	if p.check(lexer.Fun) {
		p.advance()
		return p.closureExpr()
	}

	expr := p.ternary()

	if p.match(lexer.Equal) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *Variable:
			return &Assign{Name: target.Name, Value: value}
		case *Get:
			return &Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}
	return expr
}

func (p *Parser) closureExpr() Expr {
	keyword := p.previous()
	params := p.parameters("closure")
	p.consume(lexer.LeftBrace, "Expect '{' before closure body.")
	body := p.block()
	return &Closure{Keyword: keyword, Params: params, Body: body}
}

func (p *Parser) ternary() Expr {
	expr := p.or()
	if p.match(lexer.Question) {
		then := p.ternary()
		p.consume(lexer.Colon, "Expect ':' in ternary expression.")
		els := p.ternary()
		expr = &Ternary{Cond: expr, Then: then, Else: els}
	}
	return expr
}

func (p *Parser) or() Expr {
	expr := p.and()
	for p.match(lexer.Or) {
		op := p.previous()
		right := p.and()
		expr = &Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() Expr {
	expr := p.equality()
	for p.match(lexer.And) {
		op := p.previous()
		right := p.equality()
		expr = &Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.match(lexer.BangEqual, lexer.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.match(lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()
	for p.match(lexer.Plus, lexer.Minus) {
		op := p.previous()
		right := p.factor()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.match(lexer.Star, lexer.Slash) {
		op := p.previous()
		right := p.unary()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.match(lexer.Bang, lexer.Minus) {
		op := p.previous()
		right := p.unary()
		return &Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(lexer.LeftParen):
			expr = p.finishCall(expr)
		case p.match(lexer.Dot):
			name := p.consume(lexer.Identifier, "Expect property name after '.'.")
			expr = &Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	var args []Expr
	if !p.check(lexer.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			args = append(args, p.assignment())
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	paren := p.consume(lexer.RightParen, "Expect ')' after arguments.")
	return &Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(lexer.False):
		return &Literal{Value: false}
	case p.match(lexer.True):
		return &Literal{Value: true}
	case p.match(lexer.Nil):
		return &Literal{Value: nil}
	case p.match(lexer.Number, lexer.String):
		return &Literal{Value: p.previous().Literal}
	case p.match(lexer.Super):
		keyword := p.previous()
		p.consume(lexer.Dot, "Expect '.' after 'super'.")
		method := p.consume(lexer.Identifier, "Expect superclass method name.")
		return &Super{Keyword: keyword, Method: method}
	case p.match(lexer.This):
		return &This{Keyword: p.previous()}
	case p.match(lexer.Identifier):
		return &Variable{Name: p.previous()}
	case p.match(lexer.LeftParen):
		expr := p.expression()
		p.consume(lexer.RightParen, "Expect ')' after expression.")
		return &Grouping{Expression: expr}
	default:
		panic(p.errorAt(p.peek(), "Expect expression."))
	}
}
