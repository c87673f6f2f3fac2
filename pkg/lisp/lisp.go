// Package lisp implements the values of the language and the evaluator that
// interprets them.  Programs are represented with the same persistent lists
// they manipulate as data.
package lisp

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/bmatsuo/conslisp/pkg/symbol"
	"github.com/nukata/goarith"
)

// LType is the type of an LVal
type LType uint8

// Possible LType values
const (
	// LNil is the absense of a value.
	LNil LType = iota
	// LNumber is a numeric scalar backed by goarith.Number.
	LNumber
	// LSymbol is an interned name used for environment lookup.
	LSymbol
	// LString is literal text.
	LString
	// LBuiltin is a function implemented in Go.
	LBuiltin
	// LLambda is a user defined function.
	LLambda
	// LList is a List used as data.
	LList
)

var ltypeStrings = []string{
	LNil:     "Nil",
	LNumber:  "Number",
	LSymbol:  "Symbol",
	LString:  "String",
	LBuiltin: "Builtin",
	LLambda:  "Lambda",
	LList:    "List",
}

func (t LType) String() string {
	if int(t) >= len(ltypeStrings) {
		return "INVALID"
	}
	return ltypeStrings[t]
}

// LVal is a lisp value.  The zero LVal is a valid LNil value.  An LVal is
// immutable and copying one shares any underlying list structure.
type LVal struct {
	typ    LType
	sym    symbol.ID
	native interface{}
}

var symQuote = symbol.Intern("quote")

// Nil returns an LNil value
func Nil() LVal {
	return LVal{}
}

// Number returns an LNumber value holding x.  A nil x yields LNil.
func Number(x goarith.Number) LVal {
	if x == nil {
		return Nil()
	}
	return LVal{typ: LNumber, native: x}
}

// Int returns an LNumber value holding the integer x.
func Int(x int64) LVal {
	return Number(goarith.AsNumber(big.NewInt(x)))
}

// BigInt returns an LNumber value holding the integer x.
func BigInt(x *big.Int) LVal {
	return Number(goarith.AsNumber(x))
}

// Float returns an LNumber value holding the float x.
func Float(x float64) LVal {
	return Number(goarith.AsNumber(x))
}

// GetNumber returns the number held by v.
// GetNumber returns false if v is not LNumber.
func GetNumber(v LVal) (goarith.Number, bool) {
	if v.typ != LNumber {
		return nil, false
	}
	return v.native.(goarith.Number), true
}

// Symbol returns an LSymbol value for name, interning it in
// symbol.DefaultTable.
func Symbol(name string) LVal {
	return SymbolID(symbol.Intern(name))
}

// SymbolID returns an LSymbol value for an already interned symbol.
func SymbolID(id symbol.ID) LVal {
	return LVal{typ: LSymbol, sym: id}
}

// GetSymbol extracts the symbol.ID from v.
// GetSymbol returns false if v is not LSymbol.
func GetSymbol(v LVal) (symbol.ID, bool) {
	if v.typ != LSymbol {
		return 0, false
	}
	return v.sym, true
}

// String returns an LString value
func String(s string) LVal {
	return LVal{typ: LString, native: s}
}

// GetString extracts string data from v.
// GetString returns false if v is not LString.
func GetString(v LVal) (string, bool) {
	if v.typ != LString {
		return "", false
	}
	return v.native.(string), true
}

// ListVal wraps lis as an LList value.
func ListVal(lis List) LVal {
	return LVal{typ: LList, native: lis}
}

// GetList extracts the List from v.
// GetList returns false if v is not LList.
func GetList(v LVal) (List, bool) {
	if v.typ != LList {
		return End(), false
	}
	return v.native.(List), true
}

// GetBuiltin extracts the Builtin from v.
// GetBuiltin returns false if v is not LBuiltin.
func GetBuiltin(v LVal) (*Builtin, bool) {
	if v.typ != LBuiltin {
		return nil, false
	}
	return v.native.(*Builtin), true
}

// GetLambda extracts the Lambda from v.
// GetLambda returns false if v is not LLambda.
func GetLambda(v LVal) (*Lambda, bool) {
	if v.typ != LLambda {
		return nil, false
	}
	return v.native.(*Lambda), true
}

// Type returns the type of v.
func (v LVal) Type() LType {
	return v.typ
}

// TypeName returns a human readable name for the type of v.  TypeName is
// meant for diagnostics.
func (v LVal) TypeName() string {
	return v.typ.String()
}

// IsNil returns true if v is LNil.
func IsNil(v LVal) bool {
	return v.typ == LNil
}

// IsTrue returns false if v is LNil or an empty list and true otherwise.
func IsTrue(v LVal) bool {
	switch v.typ {
	case LNil:
		return false
	case LList:
		return !v.native.(List).IsEnd()
	default:
		return true
	}
}

var symTrue = symbol.Intern("t")

// Bool returns the symbol t if ok is true and LNil otherwise.
func Bool(ok bool) LVal {
	if ok {
		return SymbolID(symTrue)
	}
	return Nil()
}

// Quote returns the expression (quote v).  Evaluating the result when quote
// is bound to the standard special operator produces v.
func Quote(v LVal) LVal {
	return ListVal(Cons(SymbolID(symQuote), Cons(v, End())))
}

// Equal returns true if v1 and v2 are structurally equal.  Numbers are equal
// when they compare equal regardless of representation.  Functions are only
// equal to themselves.
func Equal(v1 LVal, v2 LVal) bool {
	if v1.typ != v2.typ {
		return false
	}
	switch v1.typ {
	case LNil:
		return true
	case LNumber:
		return v1.native.(goarith.Number).Cmp(v2.native.(goarith.Number)) == 0
	case LSymbol:
		return v1.sym == v2.sym
	case LString:
		return v1.native.(string) == v2.native.(string)
	case LBuiltin:
		return v1.native.(*Builtin) == v2.native.(*Builtin)
	case LLambda:
		return v1.native.(*Lambda) == v2.native.(*Lambda)
	case LList:
		return v1.native.(List).Equal(v2.native.(List))
	default:
		return false
	}
}

// Format writes a source-code representation of v to w.
func Format(w io.Writer, v LVal) (int, error) {
	switch v.typ {
	case LNil:
		return io.WriteString(w, "nil")
	case LNumber:
		return fmt.Fprint(w, v.native)
	case LSymbol:
		return io.WriteString(w, v.sym.String())
	case LString:
		return fmt.Fprintf(w, "%q", v.native.(string))
	case LBuiltin:
		b := v.native.(*Builtin)
		if b.EvalArgs {
			return fmt.Fprintf(w, "#<builtin %s>", b.Name)
		}
		return fmt.Fprintf(w, "#<special-op %s>", b.Name)
	case LLambda:
		return io.WriteString(w, v.native.(*Lambda).String())
	case LList:
		return v.native.(List).Format(w)
	default:
		return 0, fmt.Errorf("unrecognized type: %v", v.typ)
	}
}

func (v LVal) String() string {
	var buf strings.Builder
	// strings.Builder never fails a write
	_, _ = Format(&buf, v)
	return buf.String()
}
