package lisp

import (
	"fmt"

	"github.com/bmatsuo/conslisp/pkg/symbol"
	"github.com/google/uuid"
)

// Scope is a mutable environment of symbol bindings.  Evaluation passes a
// single Scope down through every nested call.
type Scope interface {
	// Get returns the value bound to sym, searching enclosing scopes.
	Get(sym symbol.ID) (LVal, bool)
	// Put binds sym to v in the receiver.
	Put(sym symbol.ID, v LVal)
	// Child returns a new empty Scope enclosed by the receiver.
	Child() Scope
}

// Callable is implemented by every value that can appear at the head of a
// call.  The args are the unevaluated tail of the call expression.
type Callable interface {
	Call(env Scope, args List) (LVal, error)
}

// Eval evaluates v in env.  Symbols resolve to their binding and lists are
// evaluated as function calls.  All other values evaluate to themselves.
func (v LVal) Eval(env Scope) (LVal, error) {
	switch v.typ {
	case LSymbol:
		val, ok := env.Get(v.sym)
		if !ok {
			return Nil(), &UnboundSymbolError{Name: v.sym.String()}
		}
		return val, nil
	case LList:
		return v.native.(List).Call(env)
	default:
		return v, nil
	}
}

// Eval evaluates each element of lis in order and returns a list of the
// results.  The first error aborts evaluation of the remaining elements.
func (lis List) Eval(env Scope) (List, error) {
	b := NewListBuilder(lis.Len())
	it := lis.Iter()
	for it.Next() {
		v, err := it.Value().Eval(env)
		if err != nil {
			return End(), err
		}
		b.Append(v)
	}
	return b.List(), nil
}

// EvalToValue evaluates each element of lis in order and returns the value
// of the last one.  The empty list evaluates to LNil.
func (lis List) EvalToValue(env Scope) (LVal, error) {
	return Fold(lis, Nil(), func(_ LVal, v LVal) (LVal, error) {
		return v.Eval(env)
	})
}

// Call evaluates lis as a function call.  The head is evaluated to obtain a
// function which is then called with the tail of lis.  Calling the empty
// list returns LNil.
func (lis List) Call(env Scope) (LVal, error) {
	if lis.IsEnd() {
		return Nil(), nil
	}
	f, err := lis.cell.car.Eval(env)
	if err != nil {
		return Nil(), err
	}
	switch f.typ {
	case LBuiltin, LLambda:
		return f.native.(Callable).Call(env, lis.cell.cdr)
	default:
		return Nil(), &InvalidCallError{TypeName: f.TypeName()}
	}
}

// Apply calls the function f with args that have already been evaluated.
// Unlike Call, the arguments are never evaluated, even for a Builtin whose
// EvalArgs policy is set.
func Apply(env Scope, f LVal, args List) (LVal, error) {
	switch f.typ {
	case LBuiltin:
		return f.native.(*Builtin).Fn(env, args)
	case LLambda:
		return f.native.(*Lambda).Apply(args)
	default:
		return Nil(), &InvalidCallError{TypeName: f.TypeName()}
	}
}

// BuiltinFunc is the signature of functions implemented in Go.
type BuiltinFunc func(env Scope, args List) (LVal, error)

// Builtin is a function implemented in Go.  EvalArgs is the evaluation
// policy: procedures receive evaluated arguments while special operators
// receive the raw tail of the call and decide what to evaluate themselves.
type Builtin struct {
	Name     string
	EvalArgs bool
	Fn       BuiltinFunc
}

var _ Callable = (*Builtin)(nil)

// Fun returns a builtin procedure whose arguments are evaluated before fn is
// called.
func Fun(name string, fn BuiltinFunc) LVal {
	return LVal{typ: LBuiltin, native: &Builtin{Name: name, EvalArgs: true, Fn: fn}}
}

// SpecialOp returns a builtin special operator which receives its arguments
// unevaluated.
func SpecialOp(name string, fn BuiltinFunc) LVal {
	return LVal{typ: LBuiltin, native: &Builtin{Name: name, EvalArgs: false, Fn: fn}}
}

// Call implements Callable.
func (b *Builtin) Call(env Scope, args List) (LVal, error) {
	if b.EvalArgs {
		var err error
		args, err = args.Eval(env)
		if err != nil {
			return Nil(), err
		}
	}
	return b.Fn(env, args)
}

var symRest = symbol.Intern("&rest")

// Lambda is a user defined function.  The body is evaluated in a new scope
// enclosed by Env, the scope in which the lambda was created.
type Lambda struct {
	ID     uuid.UUID
	Name   string
	Env    Scope
	Params []symbol.ID
	// Rest is bound to a list of any arguments following Params.  Rest is
	// zero for functions with a fixed number of arguments.
	Rest symbol.ID
	Body List
}

var _ Callable = (*Lambda)(nil)

// NewLambda parses the parameter list formals and returns a function closing
// over env.  The formals are a list of symbols optionally ending with
// "&rest name".
func NewLambda(name string, env Scope, formals List, body List) (*Lambda, error) {
	fn := &Lambda{
		ID:   uuid.New(),
		Name: name,
		Env:  env,
		Body: body,
	}
	it := formals.Iter()
	for it.Next() {
		sym, ok := GetSymbol(it.Value())
		if !ok {
			return nil, ArgumentErrorf("lambda", "parameter is not a symbol: %v", it.Value())
		}
		if sym != symRest {
			fn.Params = append(fn.Params, sym)
			continue
		}
		rest := it.Rest()
		if rest.Len() != 1 {
			return nil, ArgumentErrorf("lambda", "&rest must be followed by exactly one symbol")
		}
		fn.Rest, ok = GetSymbol(rest.Head())
		if !ok {
			return nil, ArgumentErrorf("lambda", "parameter is not a symbol: %v", rest.Head())
		}
		break
	}
	return fn, nil
}

// LambdaVal wraps fn as an LLambda value.
func LambdaVal(fn *Lambda) LVal {
	return LVal{typ: LLambda, native: fn}
}

// Call implements Callable.  Arguments are evaluated in env exactly once, in
// order, before parameters are bound.
func (fn *Lambda) Call(env Scope, args List) (LVal, error) {
	vals, err := args.Eval(env)
	if err != nil {
		return Nil(), err
	}
	return fn.Apply(vals)
}

// Apply binds args to the function parameters in a new child of fn.Env and
// evaluates the body there.
func (fn *Lambda) Apply(args List) (LVal, error) {
	n := args.Len()
	if n < len(fn.Params) || (fn.Rest == 0 && n > len(fn.Params)) {
		return Nil(), &ArityError{
			Name:     fn.displayName(),
			Want:     len(fn.Params),
			Got:      n,
			Variadic: fn.Rest != 0,
		}
	}
	local := fn.Env.Child()
	for _, sym := range fn.Params {
		local.Put(sym, args.Head())
		args = args.Tail()
	}
	if fn.Rest != 0 {
		local.Put(fn.Rest, ListVal(args))
	}
	return fn.Body.EvalToValue(local)
}

func (fn *Lambda) displayName() string {
	if fn.Name == "" {
		return "lambda"
	}
	return fn.Name
}

func (fn *Lambda) String() string {
	id := fn.ID.String()[:8]
	if fn.Name == "" {
		return fmt.Sprintf("#<lambda %s>", id)
	}
	return fmt.Sprintf("#<lambda %s %s>", fn.Name, id)
}
