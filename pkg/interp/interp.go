// Package interp provides a configured conslisp interpreter: a root
// environment with the default library loaded, a source reader, and the
// output streams used by builtins.
package interp

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatsuo/conslisp/pkg/environ"
	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/bmatsuo/conslisp/pkg/lisplib"
	"github.com/bmatsuo/conslisp/pkg/parser"
	"github.com/bmatsuo/conslisp/pkg/symbol"
	"github.com/sirupsen/logrus"
)

// Loader binds values in a root environment.
type Loader func(env lisp.Scope, stdout io.Writer) error

// Interp evaluates programs in a persistent root environment.  An Interp is
// not safe for concurrent use.
type Interp struct {
	Stdout io.Writer
	Stderr io.Writer
	Reader parser.Reader
	Logger *logrus.Logger

	env     *environ.Environ
	trace   bool
	loaders []Loader
}

// New returns an Interp with the default library loaded.
func New(configs ...Config) (*Interp, error) {
	in := &Interp{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Reader: parser.NewReader(),
		env:    environ.New(nil, nil),
	}
	for _, config := range configs {
		if err := config(in); err != nil {
			return nil, err
		}
	}
	if in.Logger == nil {
		in.Logger = newLogger(in.Stderr, in.trace)
	}
	loaders := append([]Loader{lisplib.LoadLibrary}, in.loaders...)
	for _, fn := range loaders {
		if err := fn(in.env, in.Stdout); err != nil {
			return nil, fmt.Errorf("loading library: %w", err)
		}
	}
	return in, nil
}

// newLogger returns a logger writing traces to w, or discarding them unless
// trace is set.
func newLogger(w io.Writer, trace bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetOutput(io.Discard)
	if trace {
		logger.SetOutput(w)
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// Env returns the root environment.
func (in *Interp) Env() *environ.Environ {
	return in.env
}

// Load reads a program from r and evaluates its forms in order, returning
// the value of the last one.  Evaluation stops at the first error.
func (in *Interp) Load(name string, r io.Reader) (lisp.LVal, error) {
	log := in.Logger.WithField("source", name)
	prog, err := in.Reader.Read(name, r)
	if err != nil {
		log.WithError(err).Debug("read failed")
		return lisp.Nil(), err
	}
	result := lisp.Nil()
	it := prog.Iter()
	for i := 0; it.Next(); i++ {
		log := log.WithField("form", i)
		result, err = it.Value().Eval(in.env)
		if err != nil {
			log.WithError(err).Debugf("%v", it.Value())
			return lisp.Nil(), err
		}
		log.Debugf("%v => %v", it.Value(), result)
	}
	return result, nil
}

// LoadString evaluates the program in source.
func (in *Interp) LoadString(name string, source string) (lisp.LVal, error) {
	return in.Load(name, strings.NewReader(source))
}

// LoadFile evaluates the program in the file at path.
func (in *Interp) LoadFile(path string) (lisp.LVal, error) {
	f, err := os.Open(path)
	if err != nil {
		return lisp.Nil(), err
	}
	defer f.Close()
	return in.Load(path, f)
}

// Eval evaluates v in the root environment.
func (in *Interp) Eval(v lisp.LVal) (lisp.LVal, error) {
	return v.Eval(in.env)
}

// Define binds name to v in the root environment.
func (in *Interp) Define(name string, v lisp.LVal) {
	in.env.Put(symbol.Intern(name), v)
}

// Lookup returns the value bound to name in the root environment.
func (in *Interp) Lookup(name string) (lisp.LVal, bool) {
	id, ok := symbol.DefaultTable.Peek(name)
	if !ok {
		return lisp.Nil(), false
	}
	return in.env.Get(id)
}

// Bindings returns the sorted names bound in the root environment.
func (in *Interp) Bindings() []string {
	ids := in.env.Symbols()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = symbol.Name(id, symbol.DefaultTable)
	}
	sort.Strings(names)
	return names
}
