// Package token defines the lexical tokens of conslisp source text and the
// Scanner used to produce them.
package token

import "fmt"

// Token is a lexical token and the location of its first rune.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	if tok.Type == EOF {
		return tok.Type.String()
	}
	return fmt.Sprintf("%s %q", tok.Type, tok.Text)
}

// Type is the lexical class of a Token.
type Type uint

// Type constants produced by the lexer.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Atoms
	SYMBOL
	INT
	FLOAT
	STRING

	COMMENT

	QUOTE

	// Delimiters
	PAREN_L
	PAREN_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		SYMBOL:  "symbol",
		INT:     "int",
		FLOAT:   "float",
		STRING:  "string",
		COMMENT: ";",
		QUOTE:   "'",
		PAREN_L: "(",
		PAREN_R: ")",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location is a position in a named source.
type Location struct {
	File string
	Pos  int // byte offset
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc == nil:
		return "<unknown>"
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
