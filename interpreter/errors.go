package interpreter

import (
	"fmt"

	"github.com/akashmaji946/lox/lexer"
)

// RuntimeError is any failure the evaluator raises while running a
// program: type mismatches, undefined variables at runtime, arity
// mismatches, division by zero, property access on a non-instance, and
// a non-Class superclass expression. It always carries the token whose
// evaluation triggered it, so the top level can report a source line.
// A RuntimeError reaching the CLI maps to exit code 70.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Report formats the error the way stderr diagnostics are specified:
// `[line N] RuntimeError: message`.
func (e *RuntimeError) Report() string {
	return fmt.Sprintf("[line %d] RuntimeError: %s", e.Token.Line, e.Message)
}

func newRuntimeError(tok lexer.Token, format string, a ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, a...)}
}
