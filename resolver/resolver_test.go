package resolver

import (
	"testing"

	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveSource(t *testing.T, src string) (*Resolver, []parser.Stmt) {
	t.Helper()
	tokens, lexErrs := lexer.New(src).Scan()
	require.Empty(t, lexErrs)
	p := parser.New(tokens)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), p.GetErrors())
	r := New()
	r.Resolve(stmts)
	return r, stmts
}

func TestGlobalReferenceIsNotRecorded(t *testing.T) {
	r, _ := resolveSource(t, "var a = 1; print a;")
	require.False(t, r.HasErrors())
	assert.Empty(t, r.Locals())
}

func TestBlockLocalReferenceRecordsDepthZero(t *testing.T) {
	r, _ := resolveSource(t, "{ var a = 1; print a; }")
	require.False(t, r.HasErrors())
	require.Len(t, r.Locals(), 1)
	for _, depth := range r.Locals() {
		assert.Equal(t, 0, depth)
	}
}

func TestClosureCapturesOuterScopeDepth(t *testing.T) {
	r, _ := resolveSource(t, `
		var a = "global";
		{
			fun show() { print a; }
			var a = "block";
			show();
		}
	`)
	require.False(t, r.HasErrors())
	// "show()" call resolves to the block-scoped `show`, declared in the
	// same scope as its call site (depth 0); `a` inside show() is global
	// and unrecorded.
	found := false
	for _, depth := range r.Locals() {
		if depth == 0 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDuplicateDeclarationInSameScopeIsAnError(t *testing.T) {
	r, _ := resolveSource(t, "{ var a = 1; var a = 2; }")
	require.True(t, r.HasErrors())
	assert.Contains(t, r.GetErrors()[0], "Already a variable named")
}

func TestReadingOwnInitializerIsAnError(t *testing.T) {
	r, _ := resolveSource(t, "{ var a = a; }")
	require.True(t, r.HasErrors())
	assert.Contains(t, r.GetErrors()[0], "own initializer")
}

func TestReturnOutsideFunctionIsAnError(t *testing.T) {
	r, _ := resolveSource(t, "return 1;")
	require.True(t, r.HasErrors())
	assert.Contains(t, r.GetErrors()[0], "Can't return from top-level code")
}

func TestReturnValueInsideInitializerIsAnError(t *testing.T) {
	r, _ := resolveSource(t, "class A { init() { return 1; } }")
	require.True(t, r.HasErrors())
	assert.Contains(t, r.GetErrors()[0], "Can't return a value from an initializer")
}

func TestThisOutsideClassIsAnError(t *testing.T) {
	r, _ := resolveSource(t, "print this;")
	require.True(t, r.HasErrors())
	assert.Contains(t, r.GetErrors()[0], "'this' outside of a class")
}

func TestSuperWithoutSuperclassIsAnError(t *testing.T) {
	r, _ := resolveSource(t, "class A { method() { super.x(); } }")
	require.True(t, r.HasErrors())
	assert.Contains(t, r.GetErrors()[0], "no superclass")
}

func TestClassInheritingFromItselfIsAnError(t *testing.T) {
	r, _ := resolveSource(t, "class A < A {}")
	require.True(t, r.HasErrors())
	assert.Contains(t, r.GetErrors()[0], "can't inherit from itself")
}
