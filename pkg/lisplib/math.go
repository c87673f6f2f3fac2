package lisplib

import (
	"math/big"

	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/nukata/goarith"
)

func numberArgs(name string, args lisp.List) ([]goarith.Number, error) {
	nums := make([]goarith.Number, 0, args.Len())
	it := args.Iter()
	for it.Next() {
		x, ok := lisp.GetNumber(it.Value())
		if !ok {
			return nil, lisp.ArgumentErrorf(name, "argument is not a number: %v", it.Value().TypeName())
		}
		nums = append(nums, x)
	}
	return nums, nil
}

func builtinAdd(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	nums, err := numberArgs("+", args)
	if err != nil {
		return lisp.Nil(), err
	}
	sum := goarith.AsNumber(big.NewInt(0))
	for _, x := range nums {
		sum = sum.Add(x)
	}
	return lisp.Number(sum), nil
}

// (- x) negates x.  (- x y...) subtracts each y from x.
func builtinSub(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	if err := lisp.CheckMinArity("-", args, 1); err != nil {
		return lisp.Nil(), err
	}
	nums, err := numberArgs("-", args)
	if err != nil {
		return lisp.Nil(), err
	}
	if len(nums) == 1 {
		return lisp.Number(goarith.AsNumber(big.NewInt(0)).Sub(nums[0])), nil
	}
	diff := nums[0]
	for _, x := range nums[1:] {
		diff = diff.Sub(x)
	}
	return lisp.Number(diff), nil
}

func builtinMul(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	nums, err := numberArgs("*", args)
	if err != nil {
		return lisp.Nil(), err
	}
	prod := goarith.AsNumber(big.NewInt(1))
	for _, x := range nums {
		prod = prod.Mul(x)
	}
	return lisp.Number(prod), nil
}

// compare reports whether test holds for the comparison of every adjacent
// pair of arguments.
func compare(name string, args lisp.List, test func(cmp int) bool) (lisp.LVal, error) {
	if err := lisp.CheckMinArity(name, args, 1); err != nil {
		return lisp.Nil(), err
	}
	nums, err := numberArgs(name, args)
	if err != nil {
		return lisp.Nil(), err
	}
	for i := 1; i < len(nums); i++ {
		if !test(nums[i-1].Cmp(nums[i])) {
			return lisp.Bool(false), nil
		}
	}
	return lisp.Bool(true), nil
}

func builtinEqNum(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	return compare("=", args, func(cmp int) bool { return cmp == 0 })
}

func builtinLT(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	return compare("<", args, func(cmp int) bool { return cmp < 0 })
}

func builtinGT(env lisp.Scope, args lisp.List) (lisp.LVal, error) {
	return compare(">", args, func(cmp int) bool { return cmp > 0 })
}
