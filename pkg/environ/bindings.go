package environ

import (
	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/bmatsuo/conslisp/pkg/symbol"
)

// Bindings is a set of variable bindings (e.g. function arguments).
type Bindings interface {
	// Len returns the number of variables bound
	Len() int
	// Get returns the value bound to the given symbol.
	Get(symbol.ID) (lisp.LVal, bool)
	// Put creates or updates a binding for the given symbol with the given
	// value.
	Put(symbol.ID, lisp.LVal)
	// Symbols returns the bound symbols in the order they were first bound.
	Symbols() []symbol.ID
}

// NewBindings creates and initializes a new set of variable bindings that has
// initial capacity to hold n values.
func NewBindings(n int) Bindings {
	return newBindings(n)
}

type bindingPair struct {
	name  symbol.ID
	value lisp.LVal
}

// bindings keeps variables in binding order.  Lambda frames are small so the
// index map is only built once a frame grows past a few variables.
type bindings struct {
	pairs []bindingPair
	index map[symbol.ID]int
}

const indexThreshold = 8

var _ Bindings = (*bindings)(nil)

func newBindings(n int) *bindings {
	b := &bindings{pairs: make([]bindingPair, 0, n)}
	if n > indexThreshold {
		b.index = make(map[symbol.ID]int, n)
	}
	return b
}

// Len returns the number of symbols bound.
func (s *bindings) Len() int {
	return len(s.pairs)
}

func (s *bindings) lookup(variable symbol.ID) (int, bool) {
	if s.index != nil {
		i, ok := s.index[variable]
		return i, ok
	}
	for i := range s.pairs {
		if s.pairs[i].name == variable {
			return i, true
		}
	}
	return -1, false
}

// Get returns the value bound to variable.
func (s *bindings) Get(variable symbol.ID) (lisp.LVal, bool) {
	i, ok := s.lookup(variable)
	if !ok {
		return lisp.Nil(), false
	}
	return s.pairs[i].value, true
}

// Put binds variable to v.  If variable was previously bound its entry will be
// updated.  Otherwise Put creates a new variable binding.
func (s *bindings) Put(variable symbol.ID, v lisp.LVal) {
	i, ok := s.lookup(variable)
	if ok {
		s.pairs[i].value = v
		return
	}
	s.pairs = append(s.pairs, bindingPair{variable, v})
	if s.index != nil {
		s.index[variable] = len(s.pairs) - 1
	} else if len(s.pairs) > indexThreshold {
		s.index = make(map[symbol.ID]int, len(s.pairs))
		for i := range s.pairs {
			s.index[s.pairs[i].name] = i
		}
	}
}

// Symbols implements Bindings
func (s *bindings) Symbols() []symbol.ID {
	ids := make([]symbol.ID, len(s.pairs))
	for i := range s.pairs {
		ids[i] = s.pairs[i].name
	}
	return ids
}
