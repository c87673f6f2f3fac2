package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/bmatsuo/conslisp/pkg/parser/token"
)

const delimRunes = "()'\";"

// Lexer splits the text of a token.Scanner into tokens.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune
	err     error
}

// NewLexer returns a Lexer reading from s.
func NewLexer(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

// Err returns the error described by the last ERROR token.
func (lex *Lexer) Err() error {
	return lex.err
}

// NextToken returns the next token in the input.  At the end of input NextToken
// returns an EOF token and after an error it continues to return ERROR
// tokens.
func (lex *Lexer) NextToken() *token.Token {
	if lex.err != nil {
		return lex.emit(token.ERROR, lex.err.Error())
	}
	lex.skipWhitespace()
	if !lex.readChar() {
		return lex.emitScanError(true)
	}
	switch lex.ch {
	case '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	case '\'':
		return lex.scanner.EmitToken(token.QUOTE)
	case ';':
		for lex.peekRune() != '\n' {
			if !lex.readChar() {
				if lex.scanner.Err() == io.EOF {
					break
				}
				return lex.emitScanError(false)
			}
		}
		return lex.scanner.EmitToken(token.COMMENT)
	case '"':
		return lex.readString()
	default:
		return lex.readWord()
	}
}

func (lex *Lexer) readString() *token.Token {
	for {
		if !lex.readChar() {
			if lex.scanner.Err() == io.EOF {
				return lex.fail(fmt.Errorf("%s: unterminated string literal: %w", lex.scanner.LocStart(), ErrIncomplete))
			}
			return lex.emitScanError(false)
		}
		switch lex.ch {
		case '"':
			return lex.scanner.EmitToken(token.STRING)
		case '\\':
			// The escaped character is checked when the token is parsed.
			if !lex.readChar() {
				continue
			}
		}
	}
}

func (lex *Lexer) readWord() *token.Token {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || unicode.IsSpace(c) || strings.ContainsRune(delimRunes, c) {
			break
		}
		lex.readChar()
	}
	if err := lex.scanner.Err(); err != nil && err != io.EOF {
		return lex.emitScanError(false)
	}
	text := lex.scanner.Text()
	typ := wordType(text)
	if typ == token.INVALID {
		return lex.fail(fmt.Errorf("%s: invalid numeric literal: %s", lex.scanner.LocStart(), text))
	}
	return lex.scanner.EmitToken(typ)
}

// wordType classifies a run of non-delimiter text.  Words that start like a
// number must be a valid number.
func wordType(text string) token.Type {
	body := text
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	if body == "" {
		return token.SYMBOL
	}
	if !isDigit(rune(body[0])) && !(body[0] == '.' && len(body) > 1 && isDigit(rune(body[1]))) {
		return token.SYMBOL
	}
	if strings.IndexFunc(body, func(c rune) bool { return !isDigit(c) }) < 0 {
		return token.INT
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return token.FLOAT
	}
	return token.INVALID
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) fail(err error) *token.Token {
	lex.err = err
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) emitScanError(expectEOF bool) *token.Token {
	err := lex.scanner.Err()
	if err == io.EOF {
		if expectEOF {
			return lex.emit(token.EOF, "")
		}
		return lex.fail(fmt.Errorf("%s: unexpected end of input: %w", lex.scanner.LocStart(), ErrIncomplete))
	}
	return lex.fail(err)
}

func (lex *Lexer) skipWhitespace() {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !unicode.IsSpace(c) {
			break
		}
		lex.readChar()
	}
	lex.scanner.Ignore()
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() bool {
	if lex.scanner.ScanRune() != nil {
		return false
	}
	lex.ch = lex.scanner.Rune()
	return true
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
