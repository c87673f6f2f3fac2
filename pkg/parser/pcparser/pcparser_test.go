package pcparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/bmatsuo/conslisp/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		source string
		expect string
	}{
		{"empty", "", "()"},
		{"whitespace", " \n\t", "()"},
		{"int", "42", "(42)"},
		{"negative", "-7", "(-7)"},
		{"float", "2.5", "(2.5)"},
		{"symbols", "a + - null? &rest type-of", "(a + - null? &rest type-of)"},
		{"string", `"hi"`, `("hi")`},
		{"list", "(+ 1 (* 2 3))", "((+ 1 (* 2 3)))"},
		{"empty list", "()", "(())"},
		{"quote", "'(a b)", "((quote (a b)))"},
		{"program", "(define x 1)\n(+ x 2)", "((define x 1) (+ x 2))"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			prog, err := Parse("test", []byte(test.source))
			require.NoError(t, err)
			assert.Equal(t, test.expect, prog.String())
		})
	}
}

// Both readers produce the same forms.
func TestParse_sameAsParser(t *testing.T) {
	source := `
		(define (fact n)
		  (if (< n 2) 1 (* n (fact (- n 1)))))
		(fact 30)
		'(x "y" 3.25)`
	expect, err := parser.ParseString("test", source)
	require.NoError(t, err)
	prog, err := NewReader().Read("test", strings.NewReader(source))
	require.NoError(t, err)
	assert.True(t, prog.Equal(expect), "expected %v (got %v)", expect, prog)
}

func TestParse_bigInt(t *testing.T) {
	prog, err := Parse("test", []byte("123456789012345678901234567890"))
	require.NoError(t, err)
	require.Equal(t, 1, prog.Len())
	assert.Equal(t, lisp.LNumber, prog.Head().Type())
	assert.Equal(t, "123456789012345678901234567890", prog.Head().String())
}

func TestParse_errors(t *testing.T) {
	for _, source := range []string{"(a", "(a (b)", `"abc`} {
		_, err := Parse("test", []byte(source))
		require.Error(t, err, "source: %q", source)
		assert.True(t, errors.Is(err, parser.ErrIncomplete), "source: %q error: %v", source, err)
	}
	_, err := Parse("test", []byte("(a))"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, parser.ErrIncomplete))
	assert.EqualError(t, err, "test[3]: unmatched )")
}

func TestScanDepth(t *testing.T) {
	for _, test := range []struct {
		text     string
		depth    int
		inString bool
	}{
		{"", 0, false},
		{"((", 2, false},
		{"(a)", 0, false},
		{`("(" `, 1, false},
		{`("\"`, 1, true},
		{"(; )\n", 1, false},
		{")(", -1, false},
	} {
		depth, inString := scanDepth([]byte(test.text))
		assert.Equal(t, test.depth, depth, "text: %q", test.text)
		assert.Equal(t, test.inString, inString, "text: %q", test.text)
	}
}

func TestParse_unterminatedString(t *testing.T) {
	for _, test := range []struct {
		source string
		msg    string
	}{
		{`"abc`, "test[0]: unterminated string literal: incomplete expression"},
		{`(display "x") "ab`, "test[14]: unterminated string literal: incomplete expression"},
		{`(f "a\"`, "test[3]: unterminated string literal: incomplete expression"},
		{`"abc\`, "test[0]: unterminated string literal: incomplete expression"},
	} {
		_, err := Parse("test", []byte(test.source))
		require.Error(t, err, "source: %q", test.source)
		assert.True(t, errors.Is(err, parser.ErrIncomplete), "source: %q", test.source)
		assert.EqualError(t, err, test.msg, "source: %q", test.source)
	}

	// a quote inside a comment does not open a string
	prog, err := Parse("test", []byte("; \"\n(a)"))
	require.NoError(t, err)
	assert.Equal(t, "((a))", prog.String())
}

func TestUnterminatedString(t *testing.T) {
	for _, test := range []struct {
		text string
		pos  int
		ok   bool
	}{
		{"", -1, false},
		{`"a"`, -1, false},
		{`"a\""`, -1, false},
		{`x "a`, 2, true},
		{`"a" "b`, 4, true},
		{"; \"\n", -1, false},
		{`"; x`, 0, true},
	} {
		pos, ok := unterminatedString([]byte(test.text))
		assert.Equal(t, test.ok, ok, "text: %q", test.text)
		assert.Equal(t, test.pos, pos, "text: %q", test.text)
	}
}
