// Package environ provides the lexical environments used to evaluate lisp
// programs.
package environ

import (
	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/bmatsuo/conslisp/pkg/symbol"
)

// Environ is an lexical environment.  Environ contains local symbol bindings
// and a parent environment.  Environ is in the scope of its parent's bindings.
type Environ struct {
	parent   *Environ
	root     *Environ
	bindings Bindings
}

var _ lisp.Scope = (*Environ)(nil)

// New returns a new environment.  If parent is nil a root Environ will be
// returned.
func New(parent *Environ, bindings Bindings) *Environ {
	if bindings == nil {
		bindings = NewBindings(0)
	}
	env := &Environ{
		parent:   parent,
		bindings: bindings,
	}
	if parent != nil {
		env.root = parent.Root()
	}
	return env
}

// Parent returns the enclosing environment, nil for a root.
func (env *Environ) Parent() *Environ {
	return env.parent
}

// Root returns the outermost environment enclosing env.
func (env *Environ) Root() *Environ {
	if env.root != nil {
		return env.root
	}
	return env
}

// Len returns the number of local bindings in env.
func (env *Environ) Len() int {
	return env.bindings.Len()
}

// Get returns the value bound to the given symbol in env or the nearest
// enclosing environment that binds it.
func (env *Environ) Get(id symbol.ID) (lisp.LVal, bool) {
	for ; env != nil; env = env.parent {
		if v, ok := env.bindings.Get(id); ok {
			return v, true
		}
	}
	return lisp.Nil(), false
}

// Put binds id to v in env.
func (env *Environ) Put(id symbol.ID, v lisp.LVal) {
	env.bindings.Put(id, v)
}

// Child implements lisp.Scope.
func (env *Environ) Child() lisp.Scope {
	return New(env, nil)
}

// Symbols returns the symbols bound locally in env in binding order.
func (env *Environ) Symbols() []symbol.ID {
	return env.bindings.Symbols()
}
