package callable

import (
	"fmt"

	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/object"
)

// Instance is a live object of some Class: a mutable field map plus a
// back-reference to the class that produced it. Instances are shared by
// interior-mutable reference, so assignment through an alias is
// observable, per the language's reference semantics for instances.
type Instance struct {
	Class  *Class
	Fields map[string]object.Value
}

// NewInstance creates a zero-field instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]object.Value)}
}

// Get resolves a property read: fields shadow methods, and methods are
// searched up the superclass chain. A method hit is bound to this
// instance before being returned, so it remembers `this` when later
// called standalone (e.g. `var m = obj.method; m();`).
func (i *Instance) Get(name lexer.Token) (object.Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if method, ok := i.Class.FindMethod(name.Lexeme); ok {
		return method.Bind(i), nil
	}
	return nil, fmt.Errorf("Undefined property '%s'.", name.Lexeme)
}

// Set writes a field unconditionally; instances have no fixed shape.
func (i *Instance) Set(name lexer.Token, value object.Value) {
	i.Fields[name.Lexeme] = value
}

// String renders an instance the way `print` stringifies it:
// `ClassName instance`.
func (i *Instance) String() string {
	return i.Class.Name + " instance"
}
