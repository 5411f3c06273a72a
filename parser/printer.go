package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PrintExpr renders an expression as a fully-parenthesized Lisp-like string,
// used only by tests to assert the parser produced the expected shape.
// The output is a prefix notation, not Lox syntax, so it cannot be fed
// back through the parser; closures print as `(fun)` without their
// parameters or body. It is a debug tool, not part of the normal CLI
// output path. Named PrintExpr (not Print) to avoid
// colliding with the Print AST node type in ast.go.
func PrintExpr(e Expr) string {
	var b strings.Builder
	printExpr(&b, e)
	return b.String()
}

func printExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Binary:
		parenthesize(b, n.Op.Lexeme, n.Left, n.Right)
	case *Grouping:
		parenthesize(b, "group", n.Expression)
	case *Literal:
		b.WriteString(literalString(n.Value))
	case *Unary:
		parenthesize(b, n.Op.Lexeme, n.Right)
	case *Ternary:
		parenthesize(b, "?:", n.Cond, n.Then, n.Else)
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Assign:
		parenthesize(b, "="+n.Name.Lexeme, n.Value)
	case *Logical:
		parenthesize(b, n.Op.Lexeme, n.Left, n.Right)
	case *Call:
		parenthesize(b, "call", append([]Expr{n.Callee}, n.Args...)...)
	case *Closure:
		b.WriteString("(fun)")
	case *Get:
		parenthesize(b, "."+n.Name.Lexeme, n.Object)
	case *Set:
		parenthesize(b, "set."+n.Name.Lexeme, n.Object, n.Value)
	case *This:
		b.WriteString("this")
	case *Super:
		b.WriteString("(super." + n.Method.Lexeme + ")")
	default:
		b.WriteString("<?>")
	}
}

func parenthesize(b *strings.Builder, name string, exprs ...Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		printExpr(b, e)
	}
	b.WriteByte(')')
}

func literalString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		// Whole numbers keep a trailing ".0" so printed literals read as
		// number literals, unlike `print` output, which strips it.
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return strconv.FormatFloat(val, 'f', 1, 64)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
