// Package pcparser provides a lisp reader built from parser combinators.
//
//	expr     := <comment> | <term> | '(' <expr>* ')' | '\'' <expr>
//	term     := <string> | <number> | <symbol>
//	number   := /[+-]?[0-9]+/ <fraction>? <exponent>?
//	fraction := '.' /[0-9]+/
//	exponent := e /[+-]?[0-9]+/
//	comment  := ';' <text to end of line>
//
// It reads the same language as package parser.  Errors report byte offsets
// instead of lines and columns.
package pcparser

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/bmatsuo/conslisp/pkg/parser"
	"github.com/bmatsuo/conslisp/pkg/parser/token"
	parsec "github.com/prataprc/goparsec"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
	nodeQuote
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeSExpr:   "SEXPR",
	nodeQuote:   "QUOTE",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

type reader struct{}

// NewReader returns a parser.Reader backed by goparsec.
func NewReader() parser.Reader {
	return reader{}
}

// Read implements parser.Reader.
func (reader) Read(name string, r io.Reader) (lisp.List, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return lisp.End(), err
	}
	return Parse(name, text)
}

// Parse reads all forms in text.
func Parse(name string, text []byte) (lisp.List, error) {
	// goparsec's string scanner reads past the end of an unterminated
	// literal so those are rejected before parsing.
	if pos, ok := unterminatedString(text); ok {
		loc := &token.Location{File: name, Pos: pos}
		return lisp.End(), fmt.Errorf("%s: unterminated string literal: %w", loc, parser.ErrIncomplete)
	}
	b := &builder{}
	p := b.newParsecParser()
	s := parsec.NewScanner(text)

	forms := lisp.NewListBuilder(0)
	root, s := p(s)
	for root != nil {
		if b.err != nil {
			return lisp.End(), b.located(name, b.errPos)
		}
		if v, ok := getLVal(root); ok {
			forms.Append(v)
		}
		root, s = p(s)
	}
	pos := s.GetCursor()
	if rest := text[pos:]; strings.TrimSpace(string(rest)) != "" {
		return lisp.End(), restError(name, pos, rest)
	}
	return forms.List(), nil
}

// restError explains why text starting at pos could not be parsed.
func restError(name string, pos int, rest []byte) error {
	loc := &token.Location{File: name, Pos: pos}
	depth, inString := scanDepth(rest)
	switch {
	case inString:
		return fmt.Errorf("%s: unterminated string literal: %w", loc, parser.ErrIncomplete)
	case depth > 0:
		return fmt.Errorf("%s: unmatched (: %w", loc, parser.ErrIncomplete)
	case depth < 0:
		return fmt.Errorf("%s: unmatched )", loc)
	default:
		return fmt.Errorf("%s: invalid syntax", loc)
	}
}

// scanDepth returns the parenthesis depth at the end of text, ignoring string
// contents and comments.
func scanDepth(text []byte) (depth int, inString bool) {
	comment := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case comment:
			comment = c != '\n'
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == ';':
			comment = true
		case c == '"':
			inString = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return depth, false
			}
		}
	}
	return depth, inString
}

// unterminatedString returns the offset of a string literal in text that is
// not closed before the end of input.  Comments are skipped.
func unterminatedString(text []byte) (int, bool) {
	comment := false
	start := -1
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case comment:
			comment = c != '\n'
		case start >= 0:
			if c == '\\' {
				i++
			} else if c == '"' {
				start = -1
			}
		case c == ';':
			comment = true
		case c == '"':
			start = i
		}
	}
	return start, start >= 0
}

// builder converts parsec nodes to lisp values.  Conversion errors cannot be
// returned through a parsec.Nodify so the first one is held until the
// enclosing form has been read.
type builder struct {
	err    error
	errPos int
}

func (b *builder) located(name string, pos int) error {
	return fmt.Errorf("%s: %w", &token.Location{File: name, Pos: pos}, b.err)
}

func (b *builder) newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	q := parsec.Atom("'", "QUOTE")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	decimal := parsec.Token(`[+-]?[0-9]+([.][0-9]+)?([eE][+-]?[0-9]+)?`, "DECIMAL")
	symbol := parsec.Token(`(?:\pL|[_+\-*/\=<>!&~%?.])(?:\pL|[0-9]|[_+\-*/\=<>!&~%?.])*`, "SYMBOL")
	term := parsec.OrdChoice(b.astNode(nodeTerm),
		parsec.String(),
		decimal,
		symbol, // symbol comes last because it swallows anything
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(b.astNode(nodeSExpr), openP, exprList, closeP)
	quoted := parsec.And(b.astNode(nodeQuote), q, &expr)
	expr = parsec.OrdChoice(nil, comment, term, sexpr, quoted)
	return expr
}

func (b *builder) astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return b.newAST(t, nodes)
	}
}

func (b *builder) newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		switch term := nodes[0].(type) {
		case string:
			return b.stringVal(term, 0)
		case *parsec.Terminal:
			switch term.Name {
			case "DECIMAL":
				return b.numberVal(term)
			case "SYMBOL":
				return lisp.Symbol(term.Value)
			default:
				return b.stringVal(term.Value, term.Position)
			}
		}
	case nodeSExpr:
		lis := lisp.NewListBuilder(len(nodes))
		// The terminal nodes '(' and ')' are dropped along with comments.
		for _, c := range nodes {
			if v, ok := c.(lisp.LVal); ok {
				lis.Append(v)
			}
		}
		return lisp.ListVal(lis.List())
	case nodeQuote:
		for _, c := range nodes[1:] {
			if v, ok := c.(lisp.LVal); ok {
				return lisp.Quote(v)
			}
		}
	}
	return b.fail(0, fmt.Errorf("invalid %s node", typ))
}

func (b *builder) numberVal(term *parsec.Terminal) lisp.LVal {
	text := term.Value
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return b.fail(term.Position, fmt.Errorf("invalid floating point literal: %s", text))
		}
		return lisp.Float(f)
	}
	x, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return b.fail(term.Position, fmt.Errorf("invalid integer literal: %s", text))
	}
	return lisp.BigInt(x)
}

func (b *builder) stringVal(text string, pos int) lisp.LVal {
	if !strings.HasPrefix(text, `"`) {
		return lisp.String(text)
	}
	s, err := strconv.Unquote(strings.ReplaceAll(text, "\n", `\n`))
	if err != nil {
		return b.fail(pos, fmt.Errorf("invalid string literal: %s", text))
	}
	return lisp.String(s)
}

func (b *builder) fail(pos int, err error) lisp.LVal {
	if b.err == nil {
		b.err = err
		b.errPos = pos
	}
	return lisp.Nil()
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// getLVal returns the value of a top-level node.  Comments have no value.
func getLVal(root parsec.ParsecNode) (lisp.LVal, bool) {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		return lisp.Nil(), false
	}
	v, ok := nodes[0].(lisp.LVal)
	return v, ok
}
