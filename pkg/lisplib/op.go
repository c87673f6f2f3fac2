package lisplib

import (
	"github.com/bmatsuo/conslisp/pkg/lisp"
)

func opQuote(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckArity("quote", args, 1); err != nil {
		return lisp.Nil(), err
	}
	return args.Head(), nil
}

// (if condition then [else])
func opIf(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	n := args.Len()
	if n != 2 && n != 3 {
		return lisp.Nil(), &lisp.ArityError{Name: "if", Want: 2, Max: 3, Got: n}
	}
	cond, err := args.Head().Eval(env)
	if err != nil {
		return lisp.Nil(), err
	}
	branches := args.Tail()
	if lisp.IsTrue(cond) {
		return branches.Head().Eval(env)
	}
	// Head of End is Nil so a missing else yields Nil.
	return branches.Tail().Head().Eval(env)
}

// (lambda formals expr...)
func opLambda(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckMinArity("lambda", args, 1); err != nil {
		return lisp.Nil(), err
	}
	formals, err := listArg("lambda", args.Head())
	if err != nil {
		return lisp.Nil(), err
	}
	fn, err := lisp.NewLambda("", env, formals, args.Tail())
	if err != nil {
		return lisp.Nil(), err
	}
	return lisp.LambdaVal(fn), nil
}

// (define name expr) or (define (name formals...) expr...)
func opDefine(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckMinArity("define", args, 1); err != nil {
		return lisp.Nil(), err
	}
	head := args.Head()
	if sym, ok := lisp.GetSymbol(head); ok {
		if err := lisp.CheckArity("define", args, 2); err != nil {
			return lisp.Nil(), err
		}
		v, err := args.Tail().Head().Eval(env)
		if err != nil {
			return lisp.Nil(), err
		}
		env.Put(sym, v)
		return head, nil
	}
	sig, ok := lisp.GetList(head)
	if !ok || sig.IsEnd() {
		return lisp.Nil(), lisp.ArgumentErrorf("define", "first argument is not a symbol or function signature: %v", head)
	}
	sym, ok := lisp.GetSymbol(sig.Head())
	if !ok {
		return lisp.Nil(), lisp.ArgumentErrorf("define", "function name is not a symbol: %v", sig.Head())
	}
	fn, err := lisp.NewLambda(sym.String(), env, sig.Tail(), args.Tail())
	if err != nil {
		return lisp.Nil(), err
	}
	env.Put(sym, lisp.LambdaVal(fn))
	return sig.Head(), nil
}

func opProgn(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	return args.EvalToValue(env)
}

// (let ((name expr)...) body...)
//
// Binding expressions are evaluated in the enclosing scope before any name is
// bound.
func opLet(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckMinArity("let", args, 1); err != nil {
		return lisp.Nil(), err
	}
	bindings, err := listArg("let", args.Head())
	if err != nil {
		return lisp.Nil(), err
	}
	local := env.Child()
	it := bindings.Iter()
	for it.Next() {
		b := it.Value()
		if sym, ok := lisp.GetSymbol(b); ok {
			local.Put(sym, lisp.Nil())
			continue
		}
		pair, ok := lisp.GetList(b)
		if !ok || pair.IsEnd() || pair.Len() > 2 {
			return lisp.Nil(), lisp.ArgumentErrorf("let", "invalid binding: %v", b)
		}
		sym, ok := lisp.GetSymbol(pair.Head())
		if !ok {
			return lisp.Nil(), lisp.ArgumentErrorf("let", "binding name is not a symbol: %v", pair.Head())
		}
		v, err := pair.Tail().Head().Eval(env)
		if err != nil {
			return lisp.Nil(), err
		}
		local.Put(sym, v)
	}
	return args.Tail().EvalToValue(local)
}

func opAnd(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	v := lisp.SymbolID(symTrue)
	it := args.Iter()
	for it.Next() {
		var err error
		v, err = it.Value().Eval(env)
		if err != nil {
			return lisp.Nil(), err
		}
		if !lisp.IsTrue(v) {
			return v, nil
		}
	}
	return v, nil
}

func opOr(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	it := args.Iter()
	for it.Next() {
		v, err := it.Value().Eval(env)
		if err != nil {
			return lisp.Nil(), err
		}
		if lisp.IsTrue(v) {
			return v, nil
		}
	}
	return lisp.Nil(), nil
}

// (cond (test expr...)...)
func opCond(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	it := args.Iter()
	for it.Next() {
		branch, ok := lisp.GetList(it.Value())
		if !ok || branch.IsEnd() {
			return lisp.Nil(), lisp.ArgumentErrorf("cond", "branch is not a non-empty list: %v", it.Value())
		}
		test, err := branch.Head().Eval(env)
		if err != nil {
			return lisp.Nil(), err
		}
		if !lisp.IsTrue(test) {
			continue
		}
		if branch.Tail().IsEnd() {
			return test, nil
		}
		return branch.Tail().EvalToValue(env)
	}
	return lisp.Nil(), nil
}
