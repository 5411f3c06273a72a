package parser

import (
	"testing"

	"github.com/akashmaji946/lox/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExpr(t *testing.T, src string) Expr {
	t.Helper()
	tokens, lexErrs := lexer.New(src).Scan()
	require.Empty(t, lexErrs)
	p := New(tokens)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), p.GetErrors())
	require.Len(t, stmts, 1)
	es, ok := stmts[0].(*ExpressionStmt)
	require.True(t, ok)
	return es.Expression
}

func TestPrecedenceCascade(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3;")
	assert.Equal(t, "(+ 1.0 (* 2.0 3.0))", PrintExpr(expr))
}

func TestTernary(t *testing.T) {
	expr := parseExpr(t, "true ? 1 : 2;")
	assert.Equal(t, "(?: true 1.0 2.0)", PrintExpr(expr))
}

func TestCommaOperator(t *testing.T) {
	expr := parseExpr(t, "1, 2;")
	assert.Equal(t, "(, 1.0 2.0)", PrintExpr(expr))
}

func TestAssignmentTarget(t *testing.T) {
	expr := parseExpr(t, "a = 1;")
	assign, ok := expr.(*Assign)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Name.Lexeme)
}

func TestSetTargetFromCallDotAssignment(t *testing.T) {
	expr := parseExpr(t, "obj.field = 1;")
	_, ok := expr.(*Set)
	require.True(t, ok)
}

func TestForDesugarsToWhileInsideBlock(t *testing.T) {
	tokens, _ := lexer.New("for (var i = 0; i < 3; i = i + 1) print i;").Scan()
	p := New(tokens)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), p.GetErrors())
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*Block)
	require.True(t, ok)
	require.Len(t, outer.Statements, 2)
	_, isVar := outer.Statements[0].(*Var)
	assert.True(t, isVar)

	while, ok := outer.Statements[1].(*While)
	require.True(t, ok)
	body, ok := while.Body.(*Block)
	require.True(t, ok)
	assert.Len(t, body.Statements, 2)
}

func TestMissingLeftOperandIsReported(t *testing.T) {
	tokens, _ := lexer.New("+ 1;").Scan()
	p := New(tokens)
	p.Parse()
	require.True(t, p.HasErrors())
	assert.Contains(t, p.GetErrors()[0], "Missing left-hand operand")
}

func TestBreakOutsideLoopIsReported(t *testing.T) {
	tokens, _ := lexer.New("break;").Scan()
	p := New(tokens)
	p.Parse()
	require.True(t, p.HasErrors())
	assert.Contains(t, p.GetErrors()[0], "'break' outside a loop")
}

func TestSynchronizeRecoversAfterError(t *testing.T) {
	tokens, _ := lexer.New("var ; var b = 2;").Scan()
	p := New(tokens)
	stmts := p.Parse()
	require.True(t, p.HasErrors())
	require.Len(t, stmts, 1)
	v, ok := stmts[0].(*Var)
	require.True(t, ok)
	assert.Equal(t, "b", v.Name.Lexeme)
}

func TestClassWithSuperclass(t *testing.T) {
	tokens, _ := lexer.New("class A < B { init() {} }").Scan()
	p := New(tokens)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), p.GetErrors())
	class, ok := stmts[0].(*Class)
	require.True(t, ok)
	require.NotNil(t, class.Superclass)
	assert.Equal(t, "B", class.Superclass.Name.Lexeme)
	require.Len(t, class.Methods, 1)
	assert.Equal(t, "init", class.Methods[0].Name.Lexeme)
}

func TestAnonymousClosureExpression(t *testing.T) {
	expr := parseExpr(t, "(fun (a) { return a; })(1);")
	call, ok := expr.(*Call)
	require.True(t, ok)
	grouping, ok := call.Callee.(*Grouping)
	require.True(t, ok)
	_, isClosure := grouping.Expression.(*Closure)
	assert.True(t, isClosure)
}
