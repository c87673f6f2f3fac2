// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bmatsuo/conslisp/pkg/interp"
	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/bmatsuo/conslisp/pkg/parser"
	"github.com/chzyer/readline"
)

// RunRepl runs a simple repl reading lines from the terminal.  Lines are
// accumulated until they form complete expressions.
func RunRepl(prompt string, configs ...interp.Config) error {
	in, err := interp.New(configs...)
	if err != nil {
		return err
	}

	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	s := newSession(in)
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err == readline.ErrInterrupt {
			s.reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			break
		}
		if s.feed(line) {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(contPrompt)
		}
	}
	if err != io.EOF {
		return err
	}
	return nil
}

// session holds source text that has not yet formed complete expressions.
type session struct {
	in  *interp.Interp
	buf []byte
	n   int
}

func newSession(in *interp.Interp) *session {
	return &session{in: in}
}

// feed adds a line of input and evaluates the buffered source once it is
// complete.  The value of the last expression is printed to stdout and errors
// are printed to stderr.  feed returns false while more input is needed.
func (s *session) feed(line []byte) bool {
	if len(s.buf) != 0 {
		s.buf = append(s.buf, '\n')
	}
	s.buf = append(s.buf, line...)
	if strings.TrimSpace(string(s.buf)) == "" {
		s.reset()
		return true
	}
	s.n++
	v, err := s.in.LoadString(fmt.Sprintf("repl[%d]", s.n), string(s.buf))
	if errors.Is(err, parser.ErrIncomplete) {
		s.n--
		return false
	}
	s.reset()
	if err != nil {
		fmt.Fprintln(s.in.Stderr, err)
		return true
	}
	lisp.Format(s.in.Stdout, v)
	fmt.Fprintln(s.in.Stdout)
	return true
}

func (s *session) reset() {
	s.buf = s.buf[:0]
}
