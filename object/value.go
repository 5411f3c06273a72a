// Package object defines the runtime value model and the lexically
// scoped environment chain shared by the interpreter and every callable.
package object

import (
	"fmt"
	"strconv"
)

// Value is any runtime value the interpreter can produce or store:
// a Literal (float64 | string | bool | nil) or a Callable or an
// *Instance. Unlike the lexer/parser layer, there is no separate tagged
// wrapper type — Go's interface{} already gives every runtime value a
// dynamic type tag, so RuntimeValue is simply interface{} under the name
// Value.
type Value interface{}

// Callable is anything that can appear on the left of a call expression:
// user functions, bound methods, native functions, and classes
// (instantiation via `Class(args)`).
type Callable interface {
	// Call invokes the callable with already-evaluated arguments.
	// interp is the callback used to execute a user function's body;
	// native functions and classes may ignore it.
	Call(interp Interp, args []Value) (Value, error)
	// Arity returns the expected argument count.
	Arity() int
	// String renders the callable the way `print` stringifies it.
	String() string
}

// Truthy implements the language's truthiness rule: nil and false are
// falsy, everything else (including 0 and "") is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	default:
		return true
	}
}

// Equal implements the language's value-equality rule: Literal values
// compare structurally with distinct-type comparisons yielding false;
// Callables and *Instance compare by identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// Stringify renders a value the way `print` does: numbers in their
// default textual form, nil as "nil", booleans as true/false, and
// everything else (callables, instances) via its own String method.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
