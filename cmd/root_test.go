package cmd

import (
	"testing"

	"github.com/bmatsuo/conslisp/pkg/interp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithNamedReader(t *testing.T) {
	for _, name := range []string{"", "rd", "parsec"} {
		in, err := interp.New(withNamedReader(name))
		require.NoError(t, err, "reader: %q", name)
		v, err := in.LoadString("test", "(car '(1 2))")
		require.NoError(t, err, "reader: %q", name)
		assert.Equal(t, "1", v.String())
	}
	_, err := interp.New(withNamedReader("yacc"))
	assert.EqualError(t, err, `unknown reader: "yacc"`)
}
