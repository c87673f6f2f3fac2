// Package parser reads conslisp source text into lisp values.
package parser

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/bmatsuo/conslisp/pkg/parser/token"
)

// ErrIncomplete is wrapped by errors caused by input ending inside an
// expression.  More input may allow the expression to be read.
var ErrIncomplete = errors.New("incomplete expression")

// Reader reads a program, a list of top-level forms, from source text.
type Reader interface {
	Read(name string, r io.Reader) (lisp.List, error)
}

type reader struct{}

// NewReader returns a Reader which uses Parse.
func NewReader() Reader {
	return reader{}
}

// Read implements Reader.
func (reader) Read(name string, r io.Reader) (lisp.List, error) {
	return Parse(name, r)
}

// Parse reads all forms from r.  The name is used in error locations.
func Parse(name string, r io.Reader) (lisp.List, error) {
	return New(token.NewScanner(name, r)).ParseProgram()
}

// ParseString reads all forms from src.
func ParseString(name string, src string) (lisp.List, error) {
	return Parse(name, strings.NewReader(src))
}

// Parser is a recursive descent parser for lisp expressions.
type Parser struct {
	lex  *Lexer
	curr *token.Token
	peek *token.Token
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	p := &Parser{
		lex: NewLexer(scanner),
	}
	p.ReadToken()
	return p
}

// ParseProgram parses expressions until the end of input and returns them in
// order.
func (p *Parser) ParseProgram() (lisp.List, error) {
	b := lisp.NewListBuilder(0)
	for {
		p.skipComments()
		if p.expect(token.EOF) {
			break
		}
		if p.PeekType() == token.PAREN_R {
			p.ReadToken()
			return lisp.End(), p.errorf("unmatched %s", p.Token().Text)
		}
		expr, err := p.ParseExpression()
		if err != nil {
			return lisp.End(), err
		}
		b.Append(expr)
	}
	return b.List(), nil
}

// ParseExpression parses a single expression.
func (p *Parser) ParseExpression() (lisp.LVal, error) {
	p.skipComments()
	switch p.PeekType() {
	case token.INT:
		return p.ParseLiteralInt()
	case token.FLOAT:
		return p.ParseLiteralFloat()
	case token.STRING:
		return p.ParseLiteralString()
	case token.SYMBOL:
		p.ReadToken()
		return lisp.Symbol(p.Token().Text), nil
	case token.QUOTE:
		return p.ParseQuote()
	case token.PAREN_L:
		return p.ParseConsExpression()
	case token.EOF:
		p.ReadToken()
		return lisp.Nil(), p.errorf("unexpected end of input: %w", ErrIncomplete)
	case token.ERROR, token.INVALID:
		p.ReadToken()
		return lisp.Nil(), p.lex.Err()
	default:
		p.ReadToken()
		return lisp.Nil(), p.errorf("unexpected %s", p.Token().Type)
	}
}

// ParseLiteralInt parses an integer of any size.
func (p *Parser) ParseLiteralInt() (lisp.LVal, error) {
	if !p.expect(token.INT) {
		return lisp.Nil(), p.errorf("invalid integer literal: %v", p.PeekType())
	}
	text := p.Token().Text
	if x, err := strconv.ParseInt(text, 10, 64); err == nil {
		return lisp.Int(x), nil
	}
	x, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return lisp.Nil(), p.errorf("invalid integer literal: %s", text)
	}
	return lisp.BigInt(x), nil
}

// ParseLiteralFloat parses a floating point number.
func (p *Parser) ParseLiteralFloat() (lisp.LVal, error) {
	if !p.expect(token.FLOAT) {
		return lisp.Nil(), p.errorf("invalid float literal: %v", p.PeekType())
	}
	text := p.Token().Text
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return lisp.Nil(), p.errorf("invalid floating point literal: %s", text)
	}
	return lisp.Float(x), nil
}

// ParseLiteralString parses a double quoted string with Go escape sequences.
// Strings may span lines.
func (p *Parser) ParseLiteralString() (lisp.LVal, error) {
	if !p.expect(token.STRING) {
		return lisp.Nil(), p.errorf("invalid string literal: %v", p.PeekType())
	}
	text := p.Token().Text
	s, err := strconv.Unquote(strings.ReplaceAll(text, "\n", `\n`))
	if err != nil {
		return lisp.Nil(), p.errorf("invalid string literal: %s", text)
	}
	return lisp.String(s), nil
}

// ParseQuote parses 'x as (quote x).
func (p *Parser) ParseQuote() (lisp.LVal, error) {
	if !p.expect(token.QUOTE) {
		return lisp.Nil(), p.errorf("invalid quote: %v", p.PeekType())
	}
	v, err := p.ParseExpression()
	if err != nil {
		return lisp.Nil(), err
	}
	return lisp.Quote(v), nil
}

// ParseConsExpression parses a parenthesized list.
func (p *Parser) ParseConsExpression() (lisp.LVal, error) {
	if !p.expect(token.PAREN_L) {
		return lisp.Nil(), p.errorf("invalid list: %v", p.PeekType())
	}
	open := p.Token()
	b := lisp.NewListBuilder(0)
	for {
		p.skipComments()
		if p.expect(token.EOF) {
			return lisp.Nil(), fmt.Errorf("%s: unmatched %s: %w", open.Source, open.Text, ErrIncomplete)
		}
		if p.expect(token.PAREN_R) {
			break
		}
		x, err := p.ParseExpression()
		if err != nil {
			return lisp.Nil(), err
		}
		b.Append(x)
	}
	return lisp.ListVal(b.List()), nil
}

// ReadToken advances the parser by one token and returns it.
func (p *Parser) ReadToken() *token.Token {
	p.curr = p.peek
	p.peek = p.lex.NextToken()
	return p.curr
}

// Token returns the last token read.
func (p *Parser) Token() *token.Token {
	return p.curr
}

// PeekType returns the type of the next token.
func (p *Parser) PeekType() token.Type {
	return p.peek.Type
}

func (p *Parser) skipComments() {
	for p.expect(token.COMMENT) {
	}
}

func (p *Parser) expect(typ token.Type) bool {
	if p.peek.Type == typ {
		p.ReadToken()
		return true
	}
	return false
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	var loc *token.Location
	if p.curr != nil {
		loc = p.curr.Source
	}
	return fmt.Errorf("%s: "+format, append([]interface{}{loc}, v...)...)
}
