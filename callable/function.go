// Package callable implements the three concrete Callable kinds: user
// functions (and bound methods, a UserFunction variant), native
// functions, and classes together with the instances they produce.
package callable

import (
	"fmt"

	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/object"
	"github.com/akashmaji946/lox/parser"
)

// UserFunction is a function or method value: its declaration's
// parameters and body, plus the environment it closed over at the point
// it was created. Name is empty for anonymous closure expressions.
type UserFunction struct {
	Name          string
	Params        []lexer.Token
	Body          []parser.Stmt
	Closure       *object.Environment
	IsInitializer bool
}

// Arity returns the function's declared parameter count.
func (f *UserFunction) Arity() int {
	return len(f.Params)
}

// String renders the function the way `print` stringifies a callable:
// `<fn name>` for named functions, `<fn>` for anonymous closures.
func (f *UserFunction) String() string {
	if f.Name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

// Call constructs a fresh environment enclosing the function's captured
// environment, binds each parameter to its argument, and executes the
// body in that environment. A normal return (no return statement, or a
// bare `return;`) yields nil, except for initializers, which always
// yield the bound `this` regardless of what was returned.
func (f *UserFunction) Call(interp object.Interp, args []object.Value) (object.Value, error) {
	env := object.NewEnvironment(f.Closure)
	for i, param := range f.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := interp.ExecuteBlock(f.Body, env)
	if err == nil {
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this"), nil
		}
		return nil, nil
	}

	if ret, ok := err.(*object.ReturnSignal); ok {
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this"), nil
		}
		return ret.Value, nil
	}

	return nil, err
}

// Bind produces a new UserFunction identical to f except that its
// captured environment is a fresh environment, enclosing f's original
// closure, with a single binding: `this` → instance. This is how method
// lookup on an instance yields a function that remembers which instance
// it was looked up on.
func (f *UserFunction) Bind(instance *Instance) *UserFunction {
	env := object.NewEnvironment(f.Closure)
	env.Define("this", instance)
	return &UserFunction{
		Name:          f.Name,
		Params:        f.Params,
		Body:          f.Body,
		Closure:       env,
		IsInitializer: f.IsInitializer,
	}
}
