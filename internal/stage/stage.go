// Package stage implements the Input Store: it writes every input the
// run will process, one per line, into an on-disk "unprocessed" file
// before any worker starts, so the total input count is always known
// up front (and {##} is always defined) even when inputs originate
// from an unbounded stdin stream or a lazy permutation.
package stage

import (
	"bufio"
	"io"

	"github.com/gorun/parallel/internal/buffer"
)

// Writer appends staged input lines to an unprocessed file through a
// disk buffer that auto-flushes on overflow.
type Writer struct {
	w     *buffer.Writer
	count int
}

// Create truncates (or creates) path and returns a Writer over it.
func Create(path string) (*Writer, error) {
	w, err := buffer.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{w: w}, nil
}

// Stage appends line followed by a newline. line must not itself
// contain a newline.
func (s *Writer) Stage(line string) error {
	if _, err := s.w.Write([]byte(line)); err != nil {
		return err
	}
	if _, err := s.w.Write([]byte{'\n'}); err != nil {
		return err
	}
	s.count++
	return nil
}

// Count returns the number of lines staged so far.
func (s *Writer) Count() int { return s.count }

// Close flushes any buffered bytes and closes the underlying file.
func (s *Writer) Close() error { return s.w.Close() }

// ReadLines reads newline-separated input lines from r (a file,
// stdin, or any other reader), one per call to yield, stopping at the
// first error other than io.EOF.
func ReadLines(r io.Reader, yield func(string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := yield(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
