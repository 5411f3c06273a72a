package object

import "github.com/akashmaji946/lox/parser"

// Interp is the minimal callback surface a Callable needs from the
// interpreter to execute a user function's body: run a block of
// statements against a given environment. Declaring it here, rather than
// having callable values hold a concrete *interpreter.Interpreter, breaks
// what would otherwise be an import cycle (the interpreter package
// depends on object for its value model; a function value needs to call
// back into the interpreter to run its body) — the same dependency-
// inversion shape used for native builtins elsewhere in this codebase's
// ancestry.
type Interp interface {
	// ExecuteBlock runs stmts with env installed as the current
	// environment, restoring the previous environment on every exit
	// path including error propagation.
	ExecuteBlock(stmts []parser.Stmt, env *Environment) error
}
