// Package interpreter walks a resolved AST and evaluates it: the fourth
// and final stage of the pipeline, after scanning, parsing, and
// resolution.
package interpreter

import (
	"io"
	"os"
	"time"

	"github.com/akashmaji946/lox/callable"
	"github.com/akashmaji946/lox/object"
	"github.com/akashmaji946/lox/parser"
)

// Interpreter holds the global environment (pre-populated with the
// native builtins), the currently active environment, the resolver's
// published (token id → depth) map, and the transient break flag that
// `while`/`for` loops consult between statements.
type Interpreter struct {
	globals     *object.Environment
	environment *object.Environment
	locals      map[int]int
	activeBreak bool
	Stdout      io.Writer
}

// New creates an Interpreter with a fresh global environment populated
// with the `clock` native function.
func New() *Interpreter {
	globals := object.NewEnvironment(nil)
	in := &Interpreter{globals: globals, environment: globals, locals: map[int]int{}, Stdout: os.Stdout}
	in.defineNatives()
	return in
}

func (in *Interpreter) defineNatives() {
	in.globals.Define("clock", callable.NewNativeFunction("clock", 0, func(args []object.Value) (object.Value, error) {
		return float64(time.Now().UnixNano()) / 1e9, nil
	}))
}

// SetLocals merges the resolver's (token id → depth) map into the
// interpreter's own. Called after resolving and before interpreting each
// chunk of source; merging rather than replacing matters in the REPL,
// where every line is scanned and resolved independently and an earlier
// line's function bodies must keep their resolved depths once later
// lines install their own.
func (in *Interpreter) SetLocals(locals map[int]int) {
	for id, depth := range locals {
		in.locals[id] = depth
	}
}

// Interpret runs a program's top-level statements in the global
// environment. It stops at the first RuntimeError and returns it; a
// stray ReturnSignal surfacing here indicates a resolver bug (`return`
// outside a function should have been rejected statically).
func (in *Interpreter) Interpret(stmts []parser.Stmt) error {
	for _, stmt := range stmts {
		if err := in.exec(stmt); err != nil {
			if _, ok := err.(*object.ReturnSignal); ok {
				panic("interpreter: return signal escaped top-level execution")
			}
			return err
		}
	}
	return nil
}

// ExecuteBlock implements object.Interp: it is the entry point a
// UserFunction.Call uses to run its body in a fresh call frame. A nested
// call must never observe or leak the caller's break state, so the
// active-break flag is saved, cleared, and restored around the nested
// execution.
func (in *Interpreter) ExecuteBlock(stmts []parser.Stmt, env *object.Environment) error {
	savedBreak := in.activeBreak
	in.activeBreak = false
	err := in.executeBlock(stmts, env)
	in.activeBreak = savedBreak
	return err
}

// executeBlock runs stmts with env installed as the current environment,
// restoring the previous environment on every exit path including error
// propagation, and stopping early if a break or error is seen.
func (in *Interpreter) executeBlock(stmts []parser.Stmt, env *object.Environment) error {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, stmt := range stmts {
		if err := in.exec(stmt); err != nil {
			return err
		}
		if in.activeBreak {
			break
		}
	}
	return nil
}
