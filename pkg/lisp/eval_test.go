package lisp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(v ...LVal) LVal {
	return ListVal(FromSlice(v...))
}

func TestNewLambda(t *testing.T) {
	env := newTestScope()
	fn, err := NewLambda("f", env, FromSlice(Symbol("a"), Symbol("b"), Symbol("&rest"), Symbol("more")), End())
	require.NoError(t, err)
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, Symbol("more").sym, fn.Rest)
	assert.Contains(t, fn.String(), "#<lambda f ")

	_, err = NewLambda("", env, FromSlice(Int(1)), End())
	assert.True(t, errors.Is(err, ErrArgument))
	_, err = NewLambda("", env, FromSlice(Symbol("&rest")), End())
	assert.True(t, errors.Is(err, ErrArgument))
	_, err = NewLambda("", env, FromSlice(Symbol("&rest"), Symbol("a"), Symbol("b")), End())
	assert.True(t, errors.Is(err, ErrArgument))
}

func TestLambda_closure(t *testing.T) {
	env := newTestScope()
	closure := newTestScope()
	closure.bind("y", Int(100))
	fn, err := NewLambda("", closure, FromSlice(Symbol("x")), FromSlice(Symbol("y")))
	require.NoError(t, err)
	env.bind("f", LambdaVal(fn))
	env.bind("y", Int(1))

	v, err := call(Symbol("f"), Int(5)).Eval(env)
	require.NoError(t, err)
	requireLispEqual(t, Int(100), v)

	// parameters are not visible in the caller or the closure afterwards
	_, ok := closure.Get(Symbol("x").sym)
	assert.False(t, ok)
}

func TestLambda_argsEvaluatedOnce(t *testing.T) {
	env := newTestScope()
	count := 0
	env.bind("tick", Fun("tick", func(env Scope, args List) (LVal, error) {
		count++
		return Int(int64(count)), nil
	}))
	fn, err := NewLambda("", env, FromSlice(Symbol("a"), Symbol("b")), FromSlice(Symbol("a"), Symbol("b")))
	require.NoError(t, err)
	env.bind("f", LambdaVal(fn))

	v, err := call(Symbol("f"), call(Symbol("tick")), call(Symbol("tick"))).Eval(env)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	requireLispEqual(t, Int(2), v)
}

func TestLambda_rest(t *testing.T) {
	env := newTestScope()
	fn, err := NewLambda("", env, FromSlice(Symbol("a"), Symbol("&rest"), Symbol("r")), FromSlice(Symbol("r")))
	require.NoError(t, err)
	env.bind("f", LambdaVal(fn))

	v, err := call(Symbol("f"), Int(1)).Eval(env)
	require.NoError(t, err)
	requireLispEqual(t, ListVal(End()), v)

	v, err = call(Symbol("f"), Int(1), Int(2), Int(3)).Eval(env)
	require.NoError(t, err)
	requireLispEqual(t, ListVal(FromSlice(Int(2), Int(3))), v)

	_, err = call(Symbol("f")).Eval(env)
	var arity *ArityError
	require.True(t, errors.As(err, &arity))
	assert.True(t, arity.Variadic)
	assert.Equal(t, 1, arity.Want)
	assert.Equal(t, 0, arity.Got)
}

func TestLambda_arity(t *testing.T) {
	env := newTestScope()
	fn, err := NewLambda("pair", env, FromSlice(Symbol("a"), Symbol("b")), End())
	require.NoError(t, err)
	_, err = fn.Apply(FromSlice(Int(1), Int(2), Int(3)))
	assert.EqualError(t, err, "pair: expected 2 arguments (got 3)")
	v, err := fn.Apply(FromSlice(Int(1), Int(2)))
	require.NoError(t, err)
	assert.True(t, IsNil(v))
}

func TestLambda_argError(t *testing.T) {
	env := newTestScope()
	fn, err := NewLambda("", env, FromSlice(Symbol("a")), FromSlice(Symbol("a")))
	require.NoError(t, err)
	env.bind("f", LambdaVal(fn))
	_, err = call(Symbol("f"), Symbol("missing")).Eval(env)
	assert.True(t, errors.Is(err, ErrUnkSymbol))
}

func TestErrors(t *testing.T) {
	for _, test := range []struct {
		err    error
		target error
		msg    string
	}{
		{&UnboundSymbolError{Name: "x"}, ErrUnkSymbol, "unbound symbol: x"},
		{&InvalidCallError{TypeName: "Number"}, ErrInvalidCall, "invalid call: Number is not a function"},
		{&ArityError{Name: "car", Want: 1, Got: 2}, ErrArity, "car: expected 1 arguments (got 2)"},
		{&ArityError{Name: "if", Want: 2, Max: 3, Got: 1}, ErrArity, "if: expected 2 to 3 arguments (got 1)"},
		{ArgumentErrorf("car", "not a list: %v", "Number"), ErrArgument, "car: not a list: Number"},
	} {
		assert.True(t, errors.Is(test.err, test.target))
		assert.EqualError(t, test.err, test.msg)
	}
	assert.NoError(t, CheckArity("f", FromSlice(Int(1)), 1))
	assert.Error(t, CheckArity("f", End(), 1))
	assert.NoError(t, CheckMinArity("f", FromSlice(Int(1), Int(2)), 1))
	assert.True(t, errors.Is(CheckMinArity("f", End(), 1), ErrArity))
}
