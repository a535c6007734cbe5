// Package textio reads line oriented text, normalizing it to UTF-8.
package textio

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/draganm/purr/internal/source"
)

// Reader yields lines from a byte stream decoded as UTF-8. A leading byte
// order mark is dropped and invalid sequences are replaced with U+FFFD, so
// binary input never fails the read.
type Reader struct {
	name    string
	buf     *bufio.Reader
	counter *countingReader
	closer  io.Closer
	eof     bool
}

var openFile = os.Open

// Open opens the file at path for reading. Open failures are classified into
// the source sentinels so callers can tell a denied open from a missing file.
func Open(path string) (*Reader, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, source.Classify(path, err)
	}
	r := newReader(path, f)
	r.closer = f
	return r, nil
}

// NewReader wraps an already open stream, such as standard input. Closing the
// returned Reader does not close r.
func NewReader(r io.Reader) *Reader {
	return newReader(source.StdinArg, r)
}

func newReader(name string, r io.Reader) *Reader {
	counter := &countingReader{reader: r}
	decoded := transform.NewReader(counter, unicode.UTF8BOM.NewDecoder())
	return &Reader{
		name:    name,
		buf:     bufio.NewReader(decoded),
		counter: counter,
	}
}

// ReadLine returns the next line without its terminator ("\n" or "\r\n").
// A final line that lacks a terminator is still returned. io.EOF is returned
// only once the stream holds no more bytes.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.buf.ReadString('\n')
	switch {
	case err == nil:
		return trimEOL(line), nil
	case errors.Is(err, io.EOF):
		if line == "" {
			r.eof = true
			return "", io.EOF
		}
		return trimEOL(line), nil
	default:
		return "", source.Classify(r.name, err)
	}
}

// Resume lets a reader that reported io.EOF read from its stream again. A
// terminal keeps delivering input after an end of file (Ctrl-D), so each "-"
// argument resumes standard input. Nothing is buffered once io.EOF has been
// returned, so no data is lost; before that Resume does nothing.
func (r *Reader) Resume() {
	if !r.eof {
		return
	}
	r.eof = false
	// A byte order mark is only meaningful at the very start of the stream.
	r.buf = bufio.NewReader(transform.NewReader(r.counter, unicode.UTF8.NewDecoder()))
}

// Lines calls yield for every remaining line, in order, stopping at the
// first error returned by yield or by the underlying stream.
func (r *Reader) Lines(yield func(line string) error) error {
	for {
		line, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := yield(line); err != nil {
			return err
		}
	}
}

// BytesRead returns the number of raw bytes consumed from the stream so far.
func (r *Reader) BytesRead() int64 {
	return r.counter.bytesRead
}

// Name returns the path the reader was opened with, or "-" for a wrapped stream.
func (r *Reader) Name() string {
	return r.name
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// countingReader wraps an io.Reader to track how many bytes were read
type countingReader struct {
	reader    io.Reader
	bytesRead int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.bytesRead += int64(n)
	return n, err
}
