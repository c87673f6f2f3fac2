// Package lisplib provides the default special operators and procedures of a
// conslisp environment.
package lisplib

import (
	"io"

	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/bmatsuo/conslisp/pkg/symbol"
)

type langBuiltin struct {
	name string
	fn   lisp.BuiltinFunc
}

// Library holds state shared by the default builtins.
type Library struct {
	Stdout io.Writer
}

// LoadLibrary binds the default special operators, procedures and constants
// in env.  Output procedures write to stdout.
func LoadLibrary(env lisp.Scope, stdout io.Writer) error {
	lib := &Library{Stdout: stdout}
	return lib.Load(env)
}

// Load binds the library in env.
func (lib *Library) Load(env lisp.Scope) error {
	if lib.Stdout == nil {
		lib.Stdout = io.Discard
	}
	for _, op := range lib.specialOps() {
		env.Put(symbol.Intern(op.name), lisp.SpecialOp(op.name, op.fn))
	}
	for _, fn := range lib.builtins() {
		env.Put(symbol.Intern(fn.name), lisp.Fun(fn.name, fn.fn))
	}
	env.Put(symTrue, lisp.SymbolID(symTrue))
	env.Put(symbol.Intern("nil"), lisp.Nil())
	return nil
}

var symTrue = symbol.Intern("t")

func (lib *Library) specialOps() []*langBuiltin {
	return []*langBuiltin{
		{"quote", opQuote},
		{"if", opIf},
		{"lambda", opLambda},
		{"define", opDefine},
		{"progn", opProgn},
		{"let", opLet},
		{"and", opAnd},
		{"or", opOr},
		{"cond", opCond},
	}
}

func (lib *Library) builtins() []*langBuiltin {
	return []*langBuiltin{
		{"cons", builtinCons},
		{"car", builtinCAR},
		{"cdr", builtinCDR},
		{"list", builtinList},
		{"length", builtinLength},
		{"null?", builtinNullP},
		{"equal?", builtinEqual},
		{"not", builtinNot},
		{"+", builtinAdd},
		{"-", builtinSub},
		{"*", builtinMul},
		{"=", builtinEqNum},
		{"<", builtinLT},
		{">", builtinGT},
		{"type-of", builtinTypeOf},
		{"eval", builtinEval},
		{"apply", builtinApply},
		{"foldl", builtinFoldLeft},
		{"display", lib.builtinDisplay},
		{"print", lib.builtinPrint},
	}
}
