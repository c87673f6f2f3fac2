package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatsuo/conslisp/pkg/interp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSource(t *testing.T) {
	var out bytes.Buffer
	in, err := interp.New(interp.WithStdout(&out))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "lib.lisp")
	require.NoError(t, os.WriteFile(path, []byte("(define (double x) (* 2 x))"), 0600))

	defer func(e bool) { runExpression = e }(runExpression)
	runExpression = false
	_, err = runSource(in, 0, path)
	require.NoError(t, err)

	runExpression = true
	v, err := runSource(in, 1, "(double 21)")
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())

	_, err = runSource(in, 2, "(double")
	assert.Error(t, err)
}
