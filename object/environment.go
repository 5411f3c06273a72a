package object

import (
	"fmt"

	"github.com/akashmaji946/lox/lexer"
)

// Environment is a mapping from names to values with an optional
// enclosing environment, forming a chain rooted at the global
// environment (the one Environment in the chain with a nil Enclosing).
// Environments are shared by reference: a closure's captured environment
// and the interpreter's active environment can be, and often are, the
// very same node — deliberately, so that assignment through a closure
// alias is observable and a closure can legally capture an environment
// that will later (transitively) contain the closure itself. The
// resulting cycles are an accepted trade-off (they leak) rather than a
// bug.
type Environment struct {
	values    map[string]Value
	Enclosing *Environment
}

// NewEnvironment creates a fresh environment enclosed by parent (nil for
// the global environment).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{values: make(map[string]Value), Enclosing: parent}
}

// Define binds name to value in this environment, unconditionally.
// Redefinition at the same scope is allowed here — only the resolver
// forbids it, and only for non-global scopes.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get looks up name by walking the enclosing chain outward, starting
// from this environment.
func (e *Environment) Get(name lexer.Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Get(name)
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name.Lexeme)
}

// Assign writes name to value, walking the enclosing chain the same way
// Get does, and fails if no environment in the chain already binds name.
func (e *Environment) Assign(name lexer.Token, value Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Assign(name, value)
	}
	return fmt.Errorf("Undefined variable '%s'.", name.Lexeme)
}

// ancestor walks exactly depth Enclosing links outward. The resolver
// guarantees depth is always reachable for any call site that uses it;
// a failure here indicates a resolver bug, not a user error.
func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.Enclosing
	}
	return env
}

// GetAt reads name directly out of the environment depth steps out from
// e, bypassing the dynamic walk Get performs. Used for every reference
// the resolver determined is non-global.
func (e *Environment) GetAt(depth int, name string) Value {
	return e.ancestor(depth).values[name]
}

// AssignAt writes value directly into the environment depth steps out
// from e. Used for every assignment the resolver determined is
// non-global.
func (e *Environment) AssignAt(depth int, name string, value Value) {
	e.ancestor(depth).values[name] = value
}
