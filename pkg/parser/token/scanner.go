package token

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from a rune stream.  The text of
// the current token accumulates as runes are scanned until it is emitted or
// ignored.
type Scanner struct {
	file string
	r    *bufio.Reader
	err  error

	pos  int // byte offset of the next rune
	line int // line of the next rune
	col  int // column of the next rune

	start Location // location of the first rune of the current token
	text  strings.Builder
	c     rune

	peeked bool
	peek   rune
	peekN  int
}

// NewScanner initializes and returns a new Scanner reading from r.  The file
// name is used only for locations.
func NewScanner(file string, r io.Reader) *Scanner {
	s := &Scanner{
		file: file,
		r:    bufio.NewReader(r),
		line: 1,
		col:  1,
	}
	s.Ignore()
	return s
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.text.Reset()
	s.start = Location{
		File: s.file,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}

// Text returns the text scanned since the last call to either EmitToken or
// Ignore.
func (s *Scanner) Text() string {
	return s.text.String()
}

// Rune returns the last rune scanned.
func (s *Scanner) Rune() rune {
	return s.c
}

// Err returns the error which stopped the scanner, if any.  Err returns
// io.EOF once the input is exhausted.
func (s *Scanner) Err() error {
	return s.err
}

// Peek returns the next rune to be scanned.  If Peek returns false the
// scanner has stopped and Err reports the reason.
func (s *Scanner) Peek() (rune, bool) {
	if s.peeked {
		return s.peek, true
	}
	if s.err != nil {
		return 0, false
	}
	c, n, err := s.r.ReadRune()
	if err != nil {
		s.err = err
		return 0, false
	}
	if c == utf8.RuneError && n == 1 {
		s.err = fmt.Errorf("%s: invalid utf-8 sequence", s.Loc())
		return 0, false
	}
	s.peeked = true
	s.peek = c
	s.peekN = n
	return c, true
}

// ScanRune adds the next rune to the current token.
func (s *Scanner) ScanRune() error {
	if _, ok := s.Peek(); !ok {
		return s.err
	}
	s.peeked = false
	s.c = s.peek
	s.text.WriteRune(s.c)
	s.pos += s.peekN
	if s.c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// LocStart returns the Location of the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	loc := s.start
	return &loc
}

// Loc returns the Location of the next rune to be scanned.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}
