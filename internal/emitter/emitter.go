// Package emitter writes lines to the output stream, keeping the running
// line counter that numbering relies on.
package emitter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/draganm/purr/internal/source"
)

// Emitter numbers and writes lines. The counter spans every source of a run
// and is never reset, so one Emitter must be shared across all inputs.
type Emitter struct {
	w       io.Writer
	number  bool
	lineNum uint64
	emitted prometheus.Counter
}

// Option configures an Emitter
type Option func(*Emitter)

// WithLineNumbers prefixes every line with its 1-based position and two spaces
func WithLineNumbers(enabled bool) Option {
	return func(e *Emitter) {
		e.number = enabled
	}
}

// WithCounter increments c once per emitted line
func WithCounter(c prometheus.Counter) Option {
	return func(e *Emitter) {
		e.emitted = c
	}
}

// New creates an Emitter writing to w
func New(w io.Writer, opts ...Option) *Emitter {
	e := &Emitter{w: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit advances the counter and writes line followed by a newline in a single
// write. Write failures are not retried.
func (e *Emitter) Emit(line string) error {
	e.lineNum++

	var buf []byte
	if e.number {
		buf = strconv.AppendUint(buf, e.lineNum, 10)
		buf = append(buf, "  "...)
	}
	buf = append(buf, line...)
	buf = append(buf, '\n')

	if _, err := e.w.Write(buf); err != nil {
		return fmt.Errorf("%w: %w", source.ErrWrite, err)
	}

	if e.emitted != nil {
		e.emitted.Inc()
	}
	return nil
}

// Count returns how many lines have been emitted so far
func (e *Emitter) Count() uint64 {
	return e.lineNum
}

// Numbered reports whether lines are prefixed with their number
func (e *Emitter) Numbered() bool {
	return e.number
}
