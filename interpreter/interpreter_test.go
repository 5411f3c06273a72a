package interpreter

import (
	"bytes"
	"testing"

	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/parser"
	"github.com/akashmaji946/lox/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run scans, parses, resolves, and interprets src, returning stdout and
// any error the run produced. Mirrors the pipeline cmd/lox and repl run.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	tokens, lexErrs := lexer.New(src).Scan()
	require.Empty(t, lexErrs)

	p := parser.New(tokens)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), p.GetErrors())

	r := resolver.New()
	r.Resolve(stmts)
	require.False(t, r.HasErrors(), r.GetErrors())

	var buf bytes.Buffer
	in := New()
	in.Stdout = &buf
	in.SetLocals(r.Locals())

	err := in.Interpret(stmts)
	return buf.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestClosureCapturesDeclarationTimeEnvironment(t *testing.T) {
	out, err := run(t, `var a = "global"; { fun show() { print a; } var a = "block"; show(); }`)
	require.NoError(t, err)
	assert.Equal(t, "global\n", out)
}

func TestSingleInheritanceMethodLookup(t *testing.T) {
	out, err := run(t, `
		class Doughnut { cook() { print "Fry until golden."; } }
		class BostonCream < Doughnut {}
		BostonCream().cook();
	`)
	require.NoError(t, err)
	assert.Equal(t, "Fry until golden.\n", out)
}

func TestBoundMethodRetainsThis(t *testing.T) {
	out, err := run(t, `
		class Bacon { eat() { print "Crunch crunch crunch!"; } }
		var m = Bacon().eat;
		m();
	`)
	require.NoError(t, err)
	assert.Equal(t, "Crunch crunch crunch!\n", out)
}

func TestBreakExitsInnermostLoopOnly(t *testing.T) {
	out, err := run(t, `
		fun count(n) {
			while (n < 3) {
				if (n == 1) { break; }
				print n;
				n = n + 1;
			}
		}
		count(0);
	`)
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestBareReturnInInitializerReturnsInstance(t *testing.T) {
	out, err := run(t, `class Foo { init() { return; } } var f = Foo(); print f;`)
	require.NoError(t, err)
	assert.Equal(t, "Foo instance\n", out)
}

func TestShortCircuitAnd(t *testing.T) {
	out, err := run(t, `
		fun sideEffect() { print "evaluated"; return true; }
		if (false and sideEffect()) {}
	`)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestShortCircuitOr(t *testing.T) {
	out, err := run(t, `
		fun sideEffect() { print "evaluated"; return true; }
		if (true or sideEffect()) {}
	`)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestLeftToRightArgumentEvaluation(t *testing.T) {
	out, err := run(t, `
		fun a() { print "a"; return 1; }
		fun b() { print "b"; return 2; }
		fun f(x, y) {}
		f(a(), b());
	`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", out)
}

func TestDivisionByZeroIsARuntimeError(t *testing.T) {
	_, err := run(t, "print 1 / 0;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot divide by zero")
}

func TestStringNumberConcatenation(t *testing.T) {
	out, err := run(t, `print "count: " + 1;`)
	require.NoError(t, err)
	assert.Equal(t, "count: 1\n", out)
}

func TestRuntimeErrorInFunctionBodyStopsExecution(t *testing.T) {
	out, err := run(t, `
		var a = "outer";
		fun boom() {
			var a = "inner";
			print 1 / 0;
		}
		boom();
	`)
	require.Error(t, err)
	assert.Equal(t, "", out)
}

func TestSuperCallsAncestorMethod(t *testing.T) {
	out, err := run(t, `
		class A { greet() { print "A"; } }
		class B < A { greet() { super.greet(); print "B"; } }
		B().greet();
	`)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\n", out)
}

func TestTagStabilityAcrossDistinctValueKinds(t *testing.T) {
	out, err := run(t, `print 1 == "1"; print nil == false;`)
	require.NoError(t, err)
	assert.Equal(t, "false\nfalse\n", out)
}

func TestClockIsCallableAndMonotonic(t *testing.T) {
	out, err := run(t, `
		var t0 = clock();
		var t1 = clock();
		print t1 >= t0;
	`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}
