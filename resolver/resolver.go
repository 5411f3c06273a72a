// Package resolver performs the single static pass between parsing and
// interpretation: for every variable, `this`, and `super` reference it
// computes the number of enclosing scopes between the use site and the
// scope that declares it, and enforces the scope-related static rules
// (duplicate declarations, return/this/super placement, self-inheriting
// classes, break placement is parser-enforced elsewhere).
package resolver

import (
	"fmt"

	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/parser"
)

// functionType tracks what kind of function body, if any, is currently
// being resolved, so `return` placement and initializer rules can be
// checked.
type functionType int

const (
	noFunction functionType = iota
	function
	method
	initializer
)

// classType tracks whether a class body, and which kind, is currently
// being resolved, so `this`/`super` placement can be checked.
type classType int

const (
	noClass classType = iota
	class
	subclass
)

// Resolver walks the AST once, maintaining a stack of scopes (innermost
// last), each mapping a declared name to whether it has finished its own
// initializer yet.
type Resolver struct {
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
	locals          map[int]int
	errors          []string
}

// New creates a Resolver ready to resolve a program's top-level
// statements.
func New() *Resolver {
	return &Resolver{locals: make(map[int]int)}
}

// HasErrors reports whether any static error was collected.
func (r *Resolver) HasErrors() bool {
	return len(r.errors) > 0
}

// GetErrors returns the collected static errors, already formatted.
func (r *Resolver) GetErrors() []string {
	return r.errors
}

// Locals returns the published (token id → depth) map. Every non-global
// Variable/This/Super/Assign reference in the program has an entry here;
// references absent from the map are globals, looked up dynamically by
// name at runtime.
func (r *Resolver) Locals() map[int]int {
	return r.locals
}

// Resolve resolves an entire program's statement list.
func (r *Resolver) Resolve(stmts []parser.Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []parser.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errorAt(name, fmt.Sprintf("Already a variable named '%s' in this scope.", name.Lexeme))
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scope stack innermost-to-outermost; the first
// scope containing name records the token's depth. A name absent from
// every scope is left unrecorded — it resolves to the global environment.
func (r *Resolver) resolveLocal(tokenID int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[tokenID] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) errorAt(tok lexer.Token, message string) {
	r.errors = append(r.errors, lexer.FormatStaticError(tok.Line, fmt.Sprintf("at '%s'", tok.Lexeme), message))
}

// --- statements ---

func (r *Resolver) resolveStmt(s parser.Stmt) {
	switch n := s.(type) {
	case *parser.Block:
		r.beginScope()
		r.resolveStmts(n.Statements)
		r.endScope()
	case *parser.Var:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		r.define(n.Name)
	case *parser.Function:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n.Params, n.Body, function)
	case *parser.ExpressionStmt:
		r.resolveExpr(n.Expression)
	case *parser.If:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.ThenBranch)
		if n.ElseBranch != nil {
			r.resolveStmt(n.ElseBranch)
		}
	case *parser.Print:
		r.resolveExpr(n.Expression)
	case *parser.Return:
		if r.currentFunction == noFunction {
			r.errorAt(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == initializer {
				r.errorAt(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(n.Value)
		}
	case *parser.While:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Body)
	case *parser.Break:
		// break placement is enforced by the parser's loop-depth counter.
	case *parser.Class:
		r.resolveClass(n)
	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", s))
	}
}

func (r *Resolver) resolveFunction(params []lexer.Token, body []parser.Stmt, typ functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = typ

	r.beginScope()
	for _, p := range params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveClass(n *parser.Class) {
	enclosingClass := r.currentClass
	r.currentClass = class

	r.declare(n.Name)
	r.define(n.Name)

	if n.Superclass != nil {
		if n.Superclass.Name.Lexeme == n.Name.Lexeme {
			r.errorAt(n.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = subclass
		r.resolveExpr(n.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range n.Methods {
		declType := method
		if m.Name.Lexeme == "init" {
			declType = initializer
		}
		r.resolveFunction(m.Params, m.Body, declType)
	}

	r.endScope()

	if n.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

// --- expressions ---

func (r *Resolver) resolveExpr(e parser.Expr) {
	switch n := e.(type) {
	case *parser.Variable:
		if len(r.scopes) > 0 {
			if declared, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !declared {
				r.errorAt(n.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n.Name.ID, n.Name.Lexeme)
	case *parser.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n.Name.ID, n.Name.Lexeme)
	case *parser.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *parser.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *parser.Ternary:
		r.resolveExpr(n.Cond)
		r.resolveExpr(n.Then)
		r.resolveExpr(n.Else)
	case *parser.Grouping:
		r.resolveExpr(n.Expression)
	case *parser.Literal:
		// nothing to resolve
	case *parser.Unary:
		r.resolveExpr(n.Right)
	case *parser.Call:
		// Arg-count limits are already enforced by the parser at the
		// call site; the resolver only needs to visit each argument.
		r.resolveExpr(n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}
	case *parser.Get:
		r.resolveExpr(n.Object)
	case *parser.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)
	case *parser.This:
		if r.currentClass == noClass {
			r.errorAt(n.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n.Keyword.ID, "this")
	case *parser.Super:
		switch r.currentClass {
		case noClass:
			r.errorAt(n.Keyword, "Can't use 'super' outside of a class.")
		case class:
			r.errorAt(n.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(n.Keyword.ID, "super")
	case *parser.Closure:
		r.resolveFunction(n.Params, n.Body, function)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", e))
	}
}
