package lisp

import (
	"errors"
	"math/big"
	"testing"

	"github.com/nukata/goarith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(xs ...int64) []LVal {
	v := make([]LVal, len(xs))
	for i, x := range xs {
		v[i] = Int(x)
	}
	return v
}

func TestFromSlice(t *testing.T) {
	for _, xs := range [][]LVal{
		nil,
		ints(1),
		ints(1, 2, 3),
		{String("a"), Symbol("b"), Nil(), ListVal(FromSlice(ints(4, 5)...))},
	} {
		lis := FromSlice(xs...)
		assert.Equal(t, len(xs), lis.Len())
		out := lis.Slice()
		require.Len(t, out, len(xs))
		for i := range xs {
			requireLispEqual(t, xs[i], out[i])
		}
	}
}

func TestCons_sharing(t *testing.T) {
	tail := FromSlice(ints(2, 3)...)
	a := Cons(Int(1), tail)
	b := Cons(Int(0), tail)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 3, b.Len())
	assert.True(t, a.Tail().Equal(b.Tail()))
	// consing does not change the shared tail
	assert.Equal(t, 2, tail.Len())
	requireLispEqual(t, Int(2), tail.Head())
}

func TestList_headTail(t *testing.T) {
	assert.True(t, IsNil(End().Head()))
	assert.True(t, End().Tail().IsEnd())
	lis := FromSlice(ints(1, 2)...)
	requireLispEqual(t, Int(1), lis.Head())
	requireLispEqual(t, Int(2), lis.Tail().Head())
	assert.True(t, lis.Tail().Tail().IsEnd())
}

func TestIter(t *testing.T) {
	lis := FromSlice(ints(1, 2, 3)...)
	for round := 0; round < 2; round++ {
		var got []LVal
		it := lis.Iter()
		for it.Next() {
			got = append(got, it.Value())
		}
		assert.False(t, it.Next())
		assert.True(t, IsNil(it.Value()))
		require.Len(t, got, 3, "round %d", round)
		for i, x := range ints(1, 2, 3) {
			requireLispEqual(t, x, got[i])
		}
	}
	assert.False(t, End().Iter().Next())
}

func TestList_Equal(t *testing.T) {
	for _, test := range []struct {
		a, b  List
		equal bool
	}{
		{End(), End(), true},
		{End(), Cons(Nil(), End()), false},
		{Cons(Int(1), End()), End(), false},
		{FromSlice(ints(1, 2, 3)...), FromSlice(ints(1, 2, 3)...), true},
		{FromSlice(ints(1, 2, 3)...), FromSlice(ints(1, 2)...), false},
		{FromSlice(ints(1, 2)...), FromSlice(ints(1, 2, 3)...), false},
		{FromSlice(ints(1, 2, 3)...), FromSlice(ints(1, 5, 3)...), false},
		{
			FromSlice(ListVal(FromSlice(ints(1)...)), String("x")),
			FromSlice(ListVal(FromSlice(ints(1)...)), String("x")),
			true,
		},
	} {
		assert.Equal(t, test.equal, test.a.Equal(test.b), "%v = %v", test.a, test.b)
		assert.Equal(t, test.equal, test.b.Equal(test.a), "%v = %v", test.b, test.a)
	}
}

func TestFold(t *testing.T) {
	sum, err := Fold(FromSlice(ints(1, 2, 3)...), goarith.AsNumber(big.NewInt(0)), func(acc goarith.Number, v LVal) (goarith.Number, error) {
		n, _ := GetNumber(v)
		return acc.Add(n), nil
	})
	require.NoError(t, err)
	requireLispEqual(t, Int(6), Number(sum))

	n, err := Fold(End(), 10, func(acc int, v LVal) (int, error) { return acc + 1, nil })
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestFold_shortCircuit(t *testing.T) {
	errStop := errors.New("stop")
	calls := 0
	_, err := Fold(FromSlice(ints(1, 2, 3, 4)...), 0, func(acc int, v LVal) (int, error) {
		calls++
		if calls == 2 {
			return acc, errStop
		}
		return acc + 1, nil
	})
	assert.Equal(t, errStop, err)
	assert.Equal(t, 2, calls)
}

func TestList_Eval(t *testing.T) {
	env := newTestScope()
	env.bind("a", Int(1))
	env.bind("c", Int(3))
	res, err := FromSlice(Symbol("a"), Int(2), Symbol("c")).Eval(env)
	require.NoError(t, err)
	requireLispEqual(t, ListVal(FromSlice(ints(1, 2, 3)...)), ListVal(res))
}

func TestList_Eval_shortCircuit(t *testing.T) {
	env := newTestScope()
	var evaluated []string
	env.bind("note", Fun("note", func(env Scope, args List) (LVal, error) {
		s, _ := GetString(args.Head())
		evaluated = append(evaluated, s)
		return Nil(), nil
	}))
	a := ListVal(FromSlice(Symbol("note"), String("A")))
	c := ListVal(FromSlice(Symbol("note"), String("C")))
	res, err := FromSlice(a, Symbol("x"), c).Eval(env)
	require.Error(t, err)
	var unk *UnboundSymbolError
	require.True(t, errors.As(err, &unk))
	assert.Equal(t, "x", unk.Name)
	assert.True(t, res.IsEnd())
	assert.Equal(t, []string{"A"}, evaluated)
}

func TestEvalToValue(t *testing.T) {
	env := newTestScope()
	v, err := End().EvalToValue(env)
	require.NoError(t, err)
	assert.True(t, IsNil(v))

	v, err = FromSlice(ints(1, 2, 3)...).EvalToValue(env)
	require.NoError(t, err)
	requireLispEqual(t, Int(3), v)

	_, err = FromSlice(Int(1), Symbol("missing"), Int(3)).EvalToValue(env)
	assert.True(t, errors.Is(err, ErrUnkSymbol))
}

func TestListBuilder(t *testing.T) {
	b := NewListBuilder(0)
	assert.True(t, b.List().IsEnd())
	b.Append(Int(1))
	b.Append(Int(2), Int(3))
	assert.Equal(t, 3, b.Len())
	assert.True(t, b.List().Equal(FromSlice(ints(1, 2, 3)...)))
}
