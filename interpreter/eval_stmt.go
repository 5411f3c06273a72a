package interpreter

import (
	"github.com/akashmaji946/lox/callable"
	"github.com/akashmaji946/lox/object"
	"github.com/akashmaji946/lox/parser"
)

// exec executes a statement node, dispatching by concrete type.
func (in *Interpreter) exec(s parser.Stmt) error {
	switch n := s.(type) {
	case *parser.ExpressionStmt:
		_, err := in.Eval(n.Expression)
		return err
	case *parser.Print:
		v, err := in.Eval(n.Expression)
		if err != nil {
			return err
		}
		_, _ = in.Stdout.Write([]byte(object.Stringify(v) + "\n"))
		return nil
	case *parser.Var:
		var value object.Value
		if n.Initializer != nil {
			v, err := in.Eval(n.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.environment.Define(n.Name.Lexeme, value)
		return nil
	case *parser.Block:
		return in.executeBlock(n.Statements, object.NewEnvironment(in.environment))
	case *parser.If:
		cond, err := in.Eval(n.Condition)
		if err != nil {
			return err
		}
		if object.Truthy(cond) {
			return in.exec(n.ThenBranch)
		}
		if n.ElseBranch != nil {
			return in.exec(n.ElseBranch)
		}
		return nil
	case *parser.While:
		return in.execWhile(n)
	case *parser.Break:
		in.activeBreak = true
		return nil
	case *parser.Function:
		fn := &callable.UserFunction{Name: n.Name.Lexeme, Params: n.Params, Body: n.Body, Closure: in.environment}
		in.environment.Define(n.Name.Lexeme, fn)
		return nil
	case *parser.Return:
		var value object.Value
		if n.Value != nil {
			v, err := in.Eval(n.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &object.ReturnSignal{Value: value}
	case *parser.Class:
		return in.execClass(n)
	default:
		panic("interpreter: unhandled statement type")
	}
}

// execWhile evaluates cond and executes body until cond is falsy or the
// active-break flag becomes true, clearing the flag on exit so it never
// leaks to an enclosing loop.
func (in *Interpreter) execWhile(n *parser.While) error {
	for {
		cond, err := in.Eval(n.Condition)
		if err != nil {
			return err
		}
		if !object.Truthy(cond) {
			return nil
		}
		if err := in.exec(n.Body); err != nil {
			return err
		}
		if in.activeBreak {
			in.activeBreak = false
			return nil
		}
	}
}

// execClass implements two-phase class construction: the class name is
// pre-bound so methods that reference the class recursively can see it,
// a `super` environment is pushed only when there is a superclass, and
// the finished Class replaces the pre-bound nil once every method
// closure has captured the right
// environment.
func (in *Interpreter) execClass(n *parser.Class) error {
	var superclass *callable.Class
	if n.Superclass != nil {
		sc, err := in.Eval(n.Superclass)
		if err != nil {
			return err
		}
		class, ok := sc.(*callable.Class)
		if !ok {
			return newRuntimeError(n.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	in.environment.Define(n.Name.Lexeme, nil)

	if n.Superclass != nil {
		in.environment = object.NewEnvironment(in.environment)
		in.environment.Define("super", superclass)
	}

	methods := make(map[string]*callable.UserFunction, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = &callable.UserFunction{
			Name:          m.Name.Lexeme,
			Params:        m.Params,
			Body:          m.Body,
			Closure:       in.environment,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &callable.Class{Name: n.Name.Lexeme, Superclass: superclass, Methods: methods}

	if n.Superclass != nil {
		in.environment = in.environment.Enclosing
	}

	return in.environment.Assign(n.Name, class)
}
