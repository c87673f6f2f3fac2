// Package lfmt contains writer helpers shared by the value formatters.
package lfmt

import "io"

// WriteOp is a function that looks like w.Write but may involve many calls to
// w.Write and aggregate the result.
type WriteOp func(w io.Writer) (int, error)

// CountingWriter is an io.Writer that tracks the total number of bytes written
// across all calls to its methods.  After the first error every further write
// is skipped and the error is returned again, so a formatter can issue a
// sequence of writes and check the error once.
type CountingWriter struct {
	w   io.Writer
	n   int
	err error
}

// NewCountingWriter wraps w as a CountingWriter.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

// N returns the total number of bytes written.
func (cw *CountingWriter) N() int {
	return cw.n
}

// Err returns the first error encountered by cw.
func (cw *CountingWriter) Err() error {
	return cw.err
}

// Write implements io.Writer
func (cw *CountingWriter) Write(b []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	return cw.count(cw.w.Write(b))
}

// WriteString writes s to the underlying writer.
func (cw *CountingWriter) WriteString(s string) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	return cw.count(io.WriteString(cw.w, s))
}

// DeferCount passes the underlying io.Writer to fn and counts the bytes
// reported by its return value.  DeferCount avoids updating the counter once
// per nested write when fn formats a large value.
func (cw *CountingWriter) DeferCount(fn WriteOp) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	return cw.count(fn(cw.w))
}

// Result returns the byte count and first error, the usual return value of a
// formatting function.
func (cw *CountingWriter) Result() (int, error) {
	return cw.n, cw.err
}

func (cw *CountingWriter) count(n int, err error) (int, error) {
	cw.n += n
	if err != nil {
		cw.err = err
	}
	return n, err
}
