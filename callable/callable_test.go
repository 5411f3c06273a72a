package callable

import (
	"testing"

	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/object"
	"github.com/akashmaji946/lox/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInterp is a minimal object.Interp stand-in: it executes nothing and
// reports err as the body's outcome (nil for normal completion, a
// ReturnSignal to simulate a `return`), which is enough to drive
// UserFunction.Call's own bookkeeping (environment setup, initializer
// special-casing) without depending on the real interpreter package.
type fakeInterp struct {
	err error
}

func (f fakeInterp) ExecuteBlock(stmts []parser.Stmt, env *object.Environment) error {
	return f.err
}

func tok(lexeme string) lexer.Token {
	return lexer.Token{Type: lexer.Identifier, Lexeme: lexeme, Line: 1}
}

func TestUserFunctionStringRendersName(t *testing.T) {
	named := &UserFunction{Name: "add"}
	assert.Equal(t, "<fn add>", named.String())

	anon := &UserFunction{}
	assert.Equal(t, "<fn>", anon.String())
}

func TestUserFunctionCallWithArgsReturnsNilOnNormalCompletion(t *testing.T) {
	env := object.NewEnvironment(nil)
	fn := &UserFunction{Params: []lexer.Token{tok("a"), tok("b")}, Closure: env}
	v, err := fn.Call(fakeInterp{}, []object.Value{1.0, 2.0})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestUserFunctionCallReturnSignal(t *testing.T) {
	env := object.NewEnvironment(nil)
	fn := &UserFunction{Closure: env}
	v, err := fn.Call(fakeInterp{err: &object.ReturnSignal{Value: 42.0}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestInitializerAlwaysReturnsBoundThis(t *testing.T) {
	instance := NewInstance(&Class{Name: "Foo"})
	env := object.NewEnvironment(nil)
	fn := &UserFunction{IsInitializer: true, Closure: env}
	bound := fn.Bind(instance)

	v, err := bound.Call(fakeInterp{err: &object.ReturnSignal{Value: 99.0}}, nil)
	require.NoError(t, err)
	assert.Same(t, instance, v)
}

func TestNativeFunctionArityAndCall(t *testing.T) {
	n := NewNativeFunction("clock", 0, func(args []object.Value) (object.Value, error) {
		return 123.0, nil
	})
	assert.Equal(t, 0, n.Arity())
	assert.Equal(t, "<native fn>", n.String())
	v, err := n.Call(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 123.0, v)
}

func TestInstanceFieldsShadowMethods(t *testing.T) {
	class := &Class{Name: "Foo", Methods: map[string]*UserFunction{
		"bar": {Name: "bar"},
	}}
	instance := NewInstance(class)
	instance.Set(tok("bar"), "shadowed")

	v, err := instance.Get(tok("bar"))
	require.NoError(t, err)
	assert.Equal(t, "shadowed", v)
}

func TestInstanceMethodLookupWalksSuperclass(t *testing.T) {
	base := &Class{Name: "Base", Methods: map[string]*UserFunction{"greet": {Name: "greet"}}}
	derived := &Class{Name: "Derived", Superclass: base, Methods: map[string]*UserFunction{}}
	instance := NewInstance(derived)

	v, err := instance.Get(tok("greet"))
	require.NoError(t, err)
	bound, ok := v.(*UserFunction)
	require.True(t, ok)
	assert.Equal(t, "greet", bound.Name)
}

func TestInstanceUndefinedPropertyIsAnError(t *testing.T) {
	instance := NewInstance(&Class{Name: "Foo"})
	_, err := instance.Get(tok("missing"))
	require.Error(t, err)
}

func TestClassArityMatchesInitializer(t *testing.T) {
	withInit := &Class{Name: "Foo", Methods: map[string]*UserFunction{
		"init": {Params: []lexer.Token{tok("a"), tok("b")}},
	}}
	assert.Equal(t, 2, withInit.Arity())

	withoutInit := &Class{Name: "Bar", Methods: map[string]*UserFunction{}}
	assert.Equal(t, 0, withoutInit.Arity())
}

func TestClassCallProducesDistinctInstances(t *testing.T) {
	class := &Class{Name: "Foo", Methods: map[string]*UserFunction{}}
	a, err := class.Call(fakeInterp{}, nil)
	require.NoError(t, err)
	b, err := class.Call(fakeInterp{}, nil)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestInstanceString(t *testing.T) {
	instance := NewInstance(&Class{Name: "Foo"})
	assert.Equal(t, "Foo instance", instance.String())
}
