package interp

import (
	"io"

	"github.com/bmatsuo/conslisp/pkg/parser"
	"github.com/sirupsen/logrus"
)

// Config is a function that configures an Interp.
type Config func(in *Interp) error

// WithStdout returns a Config that makes output procedures write to w instead
// of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(in *Interp) error {
		in.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes the interpreter write debugging
// output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(in *Interp) error {
		in.Stderr = w
		return nil
	}
}

// WithTrace returns a Config that logs every top-level form and its result to
// the interpreter's stderr.
func WithTrace(trace bool) Config {
	return func(in *Interp) error {
		in.trace = trace
		return nil
	}
}

// WithLogger returns a Config that makes the interpreter log to logger.  Form
// traces are logged at debug level so the level of logger decides whether
// they are written.
func WithLogger(logger *logrus.Logger) Config {
	return func(in *Interp) error {
		in.Logger = logger
		return nil
	}
}

// WithReader returns a Config that makes the interpreter use r to parse
// source streams.
func WithReader(r parser.Reader) Config {
	return func(in *Interp) error {
		in.Reader = r
		return nil
	}
}

// WithLibrary returns a Config that runs fn after the default library has
// been loaded into the root environment.
func WithLibrary(fn Loader) Config {
	return func(in *Interp) error {
		in.loaders = append(in.loaders, fn)
		return nil
	}
}
