package interpreter

import (
	"github.com/akashmaji946/lox/callable"
	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/object"
	"github.com/akashmaji946/lox/parser"
)

// Eval evaluates an expression node to a runtime value, dispatching by
// concrete type the same way exec does for statements.
func (in *Interpreter) Eval(e parser.Expr) (object.Value, error) {
	switch n := e.(type) {
	case *parser.Literal:
		return n.Value, nil
	case *parser.Grouping:
		return in.Eval(n.Expression)
	case *parser.Unary:
		return in.evalUnary(n)
	case *parser.Binary:
		return in.evalBinary(n)
	case *parser.Ternary:
		return in.evalTernary(n)
	case *parser.Logical:
		return in.evalLogical(n)
	case *parser.Variable:
		return in.lookUpVariable(n.Name)
	case *parser.Assign:
		return in.evalAssign(n)
	case *parser.Call:
		return in.evalCall(n)
	case *parser.Get:
		return in.evalGet(n)
	case *parser.Set:
		return in.evalSet(n)
	case *parser.This:
		return in.lookUpVariable(n.Keyword)
	case *parser.Super:
		return in.evalSuper(n)
	case *parser.Closure:
		return &callable.UserFunction{Params: n.Params, Body: n.Body, Closure: in.environment}, nil
	default:
		panic("interpreter: unhandled expression type")
	}
}

func (in *Interpreter) evalUnary(n *parser.Unary) (object.Value, error) {
	right, err := in.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op.Type {
	case lexer.Minus:
		num, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(n.Op, "Operand must be a number.")
		}
		return -num, nil
	case lexer.Bang:
		return !object.Truthy(right), nil
	default:
		panic("interpreter: unhandled unary operator")
	}
}

func (in *Interpreter) evalBinary(n *parser.Binary) (object.Value, error) {
	left, err := in.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.Eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Type {
	case lexer.Comma:
		return right, nil
	case lexer.BangEqual:
		return !object.Equal(left, right), nil
	case lexer.EqualEqual:
		return object.Equal(left, right), nil
	case lexer.Plus:
		return in.evalAdd(n.Op, left, right)
	case lexer.Minus, lexer.Star, lexer.Slash, lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual:
		return in.evalNumeric(n.Op, left, right)
	default:
		panic("interpreter: unhandled binary operator")
	}
}

func (in *Interpreter) evalAdd(op lexer.Token, left, right object.Value) (object.Value, error) {
	lnum, lok := left.(float64)
	rnum, rok := right.(float64)
	if lok && rok {
		return lnum + rnum, nil
	}
	_, lstr := left.(string)
	_, rstr := right.(string)
	if lstr || rstr {
		return object.Stringify(left) + object.Stringify(right), nil
	}
	return nil, newRuntimeError(op, "Operands must be two numbers or one must be a string.")
}

func (in *Interpreter) evalNumeric(op lexer.Token, left, right object.Value) (object.Value, error) {
	lnum, lok := left.(float64)
	rnum, rok := right.(float64)
	if !lok || !rok {
		return nil, newRuntimeError(op, "Operands must be numbers.")
	}
	switch op.Type {
	case lexer.Minus:
		return lnum - rnum, nil
	case lexer.Star:
		return lnum * rnum, nil
	case lexer.Slash:
		if rnum == 0.0 {
			return nil, newRuntimeError(op, "Cannot divide by zero.")
		}
		return lnum / rnum, nil
	case lexer.Greater:
		return lnum > rnum, nil
	case lexer.GreaterEqual:
		return lnum >= rnum, nil
	case lexer.Less:
		return lnum < rnum, nil
	case lexer.LessEqual:
		return lnum <= rnum, nil
	default:
		panic("interpreter: unhandled numeric operator")
	}
}

func (in *Interpreter) evalTernary(n *parser.Ternary) (object.Value, error) {
	cond, err := in.Eval(n.Cond)
	if err != nil {
		return nil, err
	}
	if object.Truthy(cond) {
		return in.Eval(n.Then)
	}
	return in.Eval(n.Else)
}

func (in *Interpreter) evalLogical(n *parser.Logical) (object.Value, error) {
	left, err := in.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Op.Type == lexer.Or {
		if object.Truthy(left) {
			return left, nil
		}
	} else {
		if !object.Truthy(left) {
			return left, nil
		}
	}
	return in.Eval(n.Right)
}

func (in *Interpreter) evalAssign(n *parser.Assign) (object.Value, error) {
	value, err := in.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := in.locals[n.Name.ID]; ok {
		in.environment.AssignAt(depth, n.Name.Lexeme, value)
		return value, nil
	}
	if err := in.globals.Assign(n.Name, value); err != nil {
		return nil, newRuntimeError(n.Name, "%s", err.Error())
	}
	return value, nil
}

func (in *Interpreter) lookUpVariable(name lexer.Token) (object.Value, error) {
	if depth, ok := in.locals[name.ID]; ok {
		return in.environment.GetAt(depth, name.Lexeme), nil
	}
	v, err := in.globals.Get(name)
	if err != nil {
		return nil, newRuntimeError(name, "%s", err.Error())
	}
	return v, nil
}

func (in *Interpreter) evalCall(n *parser.Call) (object.Value, error) {
	callee, err := in.Eval(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]object.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := in.Eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(object.Callable)
	if !ok {
		return nil, newRuntimeError(n.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(n.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(in, args)
}

func (in *Interpreter) evalGet(n *parser.Get) (object.Value, error) {
	obj, err := in.Eval(n.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*callable.Instance)
	if !ok {
		return nil, newRuntimeError(n.Name, "Only instances have properties.")
	}
	v, err := instance.Get(n.Name)
	if err != nil {
		return nil, newRuntimeError(n.Name, "%s", err.Error())
	}
	return v, nil
}

func (in *Interpreter) evalSet(n *parser.Set) (object.Value, error) {
	obj, err := in.Eval(n.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*callable.Instance)
	if !ok {
		return nil, newRuntimeError(n.Name, "Only instances have fields.")
	}
	value, err := in.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(n.Name, value)
	return value, nil
}

func (in *Interpreter) evalSuper(n *parser.Super) (object.Value, error) {
	depth := in.locals[n.Keyword.ID]
	superVal := in.environment.GetAt(depth, "super")
	superclass, ok := superVal.(*callable.Class)
	if !ok {
		return nil, newRuntimeError(n.Keyword, "Superclass is not a class.")
	}

	thisVal := in.environment.GetAt(depth-1, "this")
	instance, ok := thisVal.(*callable.Instance)
	if !ok {
		return nil, newRuntimeError(n.Keyword, "'this' is not bound.")
	}

	method, ok := superclass.FindMethod(n.Method.Lexeme)
	if !ok {
		return nil, newRuntimeError(n.Method, "Undefined property '%s'.", n.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
