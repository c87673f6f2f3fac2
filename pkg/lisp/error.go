package lisp

import (
	"errors"
	"fmt"
)

// Runtime error conditions.  Every error returned by evaluation matches one
// of these with errors.Is.
var (
	ErrUnkSymbol   = errors.New("unbound symbol")
	ErrInvalidCall = errors.New("invalid call")
	ErrArity       = errors.New("wrong number of arguments")
	ErrArgument    = errors.New("invalid argument")
)

// UnboundSymbolError is returned when a symbol has no binding in scope.
type UnboundSymbolError struct {
	Name string
}

func (e *UnboundSymbolError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnkSymbol, e.Name)
}

// Is reports whether target is ErrUnkSymbol.
func (e *UnboundSymbolError) Is(target error) bool {
	return target == ErrUnkSymbol
}

// InvalidCallError is returned when the head of a call evaluates to a value
// which cannot be called.  TypeName is the TypeName of that value.
type InvalidCallError struct {
	TypeName string
}

func (e *InvalidCallError) Error() string {
	return fmt.Sprintf("%v: %s is not a function", ErrInvalidCall, e.TypeName)
}

// Is reports whether target is ErrInvalidCall.
func (e *InvalidCallError) Is(target error) bool {
	return target == ErrInvalidCall
}

// ArityError is returned when a function receives the wrong number of
// arguments.  When Variadic is true Want is a minimum.  A Max greater than
// Want makes Want..Max an inclusive range.
type ArityError struct {
	Name     string
	Want     int
	Max      int
	Got      int
	Variadic bool
}

func (e *ArityError) Error() string {
	if e.Max > e.Want {
		return fmt.Sprintf("%s: expected %d to %d arguments (got %d)", e.Name, e.Want, e.Max, e.Got)
	}
	if e.Variadic {
		return fmt.Sprintf("%s: expected at least %d arguments (got %d)", e.Name, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: expected %d arguments (got %d)", e.Name, e.Want, e.Got)
}

// Is reports whether target is ErrArity.
func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

// ArgumentError is returned by builtins given an argument of the wrong type
// or shape.
type ArgumentError struct {
	Name string
	Msg  string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

// Is reports whether target is ErrArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

// ArgumentErrorf returns an ArgumentError for the function name with a
// formatted message.
func ArgumentErrorf(name string, format string, v ...interface{}) error {
	return &ArgumentError{Name: name, Msg: fmt.Sprintf(format, v...)}
}

// CheckArity returns an ArityError if args does not contain exactly n
// elements.
func CheckArity(name string, args List, n int) error {
	if got := args.Len(); got != n {
		return &ArityError{Name: name, Want: n, Got: got}
	}
	return nil
}

// CheckMinArity returns an ArityError if args contains fewer than n elements.
func CheckMinArity(name string, args List, n int) error {
	if got := args.Len(); got < n {
		return &ArityError{Name: name, Want: n, Got: got, Variadic: true}
	}
	return nil
}
