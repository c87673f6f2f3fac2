package lisplib

import (
	"io"
	"unicode/utf8"

	"github.com/bmatsuo/conslisp/pkg/lisp"
)

// listArg returns the list held by v.  Nil is accepted as the empty list.
func listArg(name string, v lisp.LVal) (lisp.List, error) {
	if lisp.IsNil(v) {
		return lisp.End(), nil
	}
	lis, ok := lisp.GetList(v)
	if !ok {
		return lisp.End(), lisp.ArgumentErrorf(name, "argument is not a list: %v", v.TypeName())
	}
	return lis, nil
}

func builtinCons(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckArity("cons", args, 2); err != nil {
		return lisp.Nil(), err
	}
	tail, err := listArg("cons", args.Tail().Head())
	if err != nil {
		return lisp.Nil(), err
	}
	return lisp.ListVal(lisp.Cons(args.Head(), tail)), nil
}

func builtinCAR(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckArity("car", args, 1); err != nil {
		return lisp.Nil(), err
	}
	lis, err := listArg("car", args.Head())
	if err != nil {
		return lisp.Nil(), err
	}
	return lis.Head(), nil
}

func builtinCDR(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckArity("cdr", args, 1); err != nil {
		return lisp.Nil(), err
	}
	lis, err := listArg("cdr", args.Head())
	if err != nil {
		return lisp.Nil(), err
	}
	return lisp.ListVal(lis.Tail()), nil
}

func builtinList(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	return lisp.ListVal(args), nil
}

func builtinLength(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckArity("length", args, 1); err != nil {
		return lisp.Nil(), err
	}
	v := args.Head()
	if s, ok := lisp.GetString(v); ok {
		return lisp.Int(int64(utf8.RuneCountInString(s))), nil
	}
	lis, err := listArg("length", v)
	if err != nil {
		return lisp.Nil(), err
	}
	return lisp.Int(int64(lis.Len())), nil
}

func builtinNullP(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckArity("null?", args, 1); err != nil {
		return lisp.Nil(), err
	}
	v := args.Head()
	if lis, ok := lisp.GetList(v); ok {
		return lisp.Bool(lis.IsEnd()), nil
	}
	return lisp.Bool(lisp.IsNil(v)), nil
}

func builtinEqual(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckArity("equal?", args, 2); err != nil {
		return lisp.Nil(), err
	}
	return lisp.Bool(lisp.Equal(args.Head(), args.Tail().Head())), nil
}

func builtinNot(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckArity("not", args, 1); err != nil {
		return lisp.Nil(), err
	}
	return lisp.Bool(!lisp.IsTrue(args.Head())), nil
}

func builtinTypeOf(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckArity("type-of", args, 1); err != nil {
		return lisp.Nil(), err
	}
	return lisp.Symbol(args.Head().TypeName()), nil
}

func builtinEval(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckArity("eval", args, 1); err != nil {
		return lisp.Nil(), err
	}
	return args.Head().Eval(env)
}

// (apply fn arg... list)
func builtinApply(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckMinArity("apply", args, 2); err != nil {
		return lisp.Nil(), err
	}
	fn := args.Head()
	spread := args.Tail().Slice()
	last, err := listArg("apply", spread[len(spread)-1])
	if err != nil {
		return lisp.Nil(), err
	}
	callArgs := last
	for i := len(spread) - 2; i >= 0; i-- {
		callArgs = lisp.Cons(spread[i], callArgs)
	}
	return lisp.Apply(env, fn, callArgs)
}

// (foldl fn z list) computes (fn (fn (fn z x1) x2) x3)...
func builtinFoldLeft(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckArity("foldl", args, 3); err != nil {
		return lisp.Nil(), err
	}
	fn := args.Head()
	z := args.Tail().Head()
	lis, err := listArg("foldl", args.Tail().Tail().Head())
	if err != nil {
		return lisp.Nil(), err
	}
	return lisp.Fold(lis, z, func(acc lisp.LVal, v lisp.LVal) (lisp.LVal, error) {
		return lisp.Apply(env, fn, lisp.FromSlice(acc, v))
	})
}

// display writes its arguments separated by spaces.  Strings are written
// without quotes.
func (lib *Library) builtinDisplay(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	return lisp.Nil(), lib.write(args, false, "")
}

// print writes its arguments in their readable form followed by a newline.
func (lib *Library) builtinPrint(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	return lisp.Nil(), lib.write(args, true, "\n")
}

func (lib *Library) write(args lisp.List, readable bool, end string) error {
	it := args.Iter()
	first := true
	for it.Next() {
		if !first {
			if _, err := io.WriteString(lib.Stdout, " "); err != nil {
				return err
			}
		}
		first = false
		v := it.Value()
		var err error
		if s, ok := lisp.GetString(v); ok && !readable {
			_, err = io.WriteString(lib.Stdout, s)
		} else {
			_, err = lisp.Format(lib.Stdout, v)
		}
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(lib.Stdout, end)
	return err
}
