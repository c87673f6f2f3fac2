package interp

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/bmatsuo/conslisp/pkg/parser"
	"github.com/bmatsuo/conslisp/pkg/symbol"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterp(t *testing.T, configs ...Config) (*Interp, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	in, err := New(append([]Config{WithStdout(&out), WithStderr(&out)}, configs...)...)
	require.NoError(t, err)
	return in, &out
}

func TestLoadString(t *testing.T) {
	in, out := newInterp(t)
	v, err := in.LoadString("test", `
		(define (sum xs) (foldl + 0 xs))
		(print "sum")
		(sum '(1 2 3))`)
	require.NoError(t, err)
	assert.Equal(t, "6", v.String())
	assert.Equal(t, "\"sum\"\n", out.String())

	// the root environment persists across loads
	v, err = in.LoadString("test", "(sum '(4 5))")
	require.NoError(t, err)
	assert.Equal(t, "9", v.String())
}

func TestLoadString_empty(t *testing.T) {
	in, _ := newInterp(t)
	v, err := in.LoadString("test", "; nothing")
	require.NoError(t, err)
	assert.True(t, lisp.IsNil(v))
}

func TestLoadString_stopsAtError(t *testing.T) {
	in, _ := newInterp(t)
	_, err := in.LoadString("test", "(define a 1) (undefined) (define b 2)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, lisp.ErrUnkSymbol))
	_, ok := in.Lookup("a")
	assert.True(t, ok)
	_, ok = in.Lookup("b")
	assert.False(t, ok)
}

func TestLoadString_parseError(t *testing.T) {
	in, _ := newInterp(t)
	_, err := in.LoadString("test", "(define a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrIncomplete))
	_, ok := in.Lookup("a")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.lisp")
	require.NoError(t, os.WriteFile(path, []byte("(* 6 7)\n"), 0600))
	in, _ := newInterp(t)
	v, err := in.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())

	_, err = in.LoadFile(filepath.Join(t.TempDir(), "missing.lisp"))
	assert.Error(t, err)
}

func TestEvalDefine(t *testing.T) {
	in, _ := newInterp(t)
	in.Define("x", lisp.Int(4))
	v, err := in.Eval(lisp.ListVal(lisp.FromSlice(lisp.Symbol("*"), lisp.Symbol("x"), lisp.Symbol("x"))))
	require.NoError(t, err)
	assert.Equal(t, "16", v.String())
}

func TestBindings(t *testing.T) {
	in, _ := newInterp(t)
	names := in.Bindings()
	assert.IsIncreasing(t, names)
	for _, name := range []string{"quote", "lambda", "define", "car", "foldl", "t", "nil"} {
		assert.Contains(t, names, name)
	}
	assert.NotContains(t, names, "zzz")
	_, err := in.LoadString("test", "(define zzz 1)")
	require.NoError(t, err)
	assert.Contains(t, in.Bindings(), "zzz")
}

func TestWithLibrary(t *testing.T) {
	in, _ := newInterp(t, WithLibrary(func(env lisp.Scope, stdout io.Writer) error {
		env.Put(symbol.Intern("answer"), lisp.Int(42))
		return nil
	}))
	v, err := in.LoadString("test", "(+ answer 1)")
	require.NoError(t, err)
	assert.Equal(t, "43", v.String())

	errLoad := errors.New("load failed")
	_, err = New(WithLibrary(func(env lisp.Scope, _ io.Writer) error {
		return errLoad
	}))
	assert.True(t, errors.Is(err, errLoad))
}

func TestTrace(t *testing.T) {
	in, out := newInterp(t, WithTrace(true))
	_, err := in.LoadString("prog", "(+ 1 2)")
	require.NoError(t, err)
	assert.Contains(t, out.String(), `level=debug msg="(+ 1 2) => 3" form=0 source=prog`)

	in, out = newInterp(t)
	_, err = in.LoadString("prog", "(+ 1 2)")
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestWithLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.DebugLevel)
	in, _ := newInterp(t, WithLogger(logger))
	_, err := in.LoadString("prog", "(car 1)")
	require.Error(t, err)
	assert.Contains(t, logs.String(), `"error":"car: argument is not a list: Number"`)
	assert.Contains(t, logs.String(), `"source":"prog"`)

	logs.Reset()
	logger.SetLevel(logrus.InfoLevel)
	_, err = in.LoadString("prog", "(car 1)")
	require.Error(t, err)
	assert.Empty(t, logs.String())
}
