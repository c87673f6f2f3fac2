package lisp

import (
	"io"

	"github.com/bmatsuo/conslisp/pkg/internal/lfmt"
)

// List is a persistent singly-linked list of LVal.  The zero List is the
// empty list, End.  A non-empty List points at an immutable cons cell which
// may be shared by any number of other lists as their tail.  Because cells
// can only be created in front of an existing list a List is always finite
// and acyclic.
type List struct {
	cell *consData
}

// consData is the cell backing a non-empty List.
type consData struct {
	car LVal
	cdr List
}

// End returns the empty list.
func End() List {
	return List{}
}

// Cons returns a new list with head car followed by the elements of cdr.  The
// cdr is shared, not copied.
// 	(cons car cdr)
func Cons(car LVal, cdr List) List {
	return List{&consData{car: car, cdr: cdr}}
}

// FromSlice returns a list containing the elements of v in order.
func FromSlice(v ...LVal) List {
	lis := End()
	for i := len(v) - 1; i >= 0; i-- {
		lis = Cons(v[i], lis)
	}
	return lis
}

// IsEnd returns true if lis is the empty list.
func (lis List) IsEnd() bool {
	return lis.cell == nil
}

// Head returns the first element of lis.  Head returns LNil if lis is empty.
func (lis List) Head() LVal {
	if lis.cell == nil {
		return Nil()
	}
	return lis.cell.car
}

// Tail returns all but the first element of lis.  Tail of the empty list is
// the empty list.
func (lis List) Tail() List {
	if lis.cell == nil {
		return End()
	}
	return lis.cell.cdr
}

// Len returns the number of elements in lis.
func (lis List) Len() int {
	n := 0
	for c := lis.cell; c != nil; c = c.cdr.cell {
		n++
	}
	return n
}

// Slice collects the elements of lis into a slice.
func (lis List) Slice() []LVal {
	s := make([]LVal, 0, lis.Len())
	for c := lis.cell; c != nil; c = c.cdr.cell {
		s = append(s, c.car)
	}
	return s
}

// Iter returns a ListIterator positioned before the first element of lis.
// Each call returns an independent iterator.
func (lis List) Iter() *ListIterator {
	return &ListIterator{rest: lis}
}

// Equal returns true if lis and other have the same length and their
// elements are pairwise Equal.  Comparison stops at the first mismatch.
func (lis List) Equal(other List) bool {
	a, b := lis.cell, other.cell
	for a != nil && b != nil {
		if a == b {
			// shared tail
			return true
		}
		if !Equal(a.car, b.car) {
			return false
		}
		a, b = a.cdr.cell, b.cdr.cell
	}
	return a == nil && b == nil
}

// Format writes the source representation of lis to w.
func (lis List) Format(w io.Writer) (int, error) {
	cw := lfmt.NewCountingWriter(w)
	cw.WriteString("(")
	for c := lis.cell; c != nil; c = c.cdr.cell {
		car := c.car
		cw.DeferCount(func(w io.Writer) (int, error) { return Format(w, car) })
		if c.cdr.cell != nil {
			cw.WriteString(" ")
		}
	}
	cw.WriteString(")")
	return cw.Result()
}

func (lis List) String() string {
	return ListVal(lis).String()
}

// Fold applies fn to each element of lis from left to right, threading an
// accumulator that starts as acc.  Fold stops at the first error returned by
// fn and does not call fn for the remaining elements.
func Fold[T any](lis List, acc T, fn func(T, LVal) (T, error)) (T, error) {
	var err error
	it := lis.Iter()
	for it.Next() {
		acc, err = fn(acc, it.Value())
		if err != nil {
			return acc, err
		}
	}
	return acc, nil
}

// ListIterator iterates through the elements of a List.
type ListIterator struct {
	v    LVal
	rest List
}

// Value returns the iteration's current value.  Value will return LNil if Next
// has not been called.
func (it *ListIterator) Value() LVal {
	return it.v
}

// Rest returns the elements remaining to be iterated over
func (it *ListIterator) Rest() List {
	return it.rest
}

// Next advances the iterator to the next list element.  Next returns false
// once the end of the list is reached.
func (it *ListIterator) Next() bool {
	if it.rest.cell == nil {
		it.v = Nil()
		return false
	}
	it.v = it.rest.cell.car
	it.rest = it.rest.cell.cdr
	return true
}

// ListBuilder collects values in order and produces a List.  Cells are only
// allocated when List is called so no cell is modified after it is linked.
type ListBuilder struct {
	vals []LVal
}

// NewListBuilder returns a ListBuilder with room for n values.
func NewListBuilder(n int) *ListBuilder {
	return &ListBuilder{vals: make([]LVal, 0, n)}
}

// Append adds elements to the end of the list being built.
func (b *ListBuilder) Append(v ...LVal) {
	b.vals = append(b.vals, v...)
}

// Len returns the number of values appended so far.
func (b *ListBuilder) Len() int {
	return len(b.vals)
}

// List returns a list containing the appended values.
func (b *ListBuilder) List() List {
	return FromSlice(b.vals...)
}
