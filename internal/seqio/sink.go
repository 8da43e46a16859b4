package seqio

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

const defaultSinkBuffer = 1 << 20

// Sink is a buffered byte sink over a file, a gzip-encoding file, or
// stdout. Close flushes buffered data and releases the underlying
// resources; for the stdout variant it only flushes.
type Sink struct {
	w       *bufio.Writer
	closers []func() error
}

func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Close flushes the buffer and then runs the variant's teardown steps in
// order, stopping at the first failure.
func (s *Sink) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	for _, fn := range s.closers {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func newFileSink(path string, bufSize int) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Sink{
		w:       bufio.NewWriterSize(f, bufSize),
		closers: []func() error{f.Close},
	}, nil
}

func newGzipSink(path string, bufSize int) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	gz := gzip.NewWriter(f)
	return &Sink{
		w:       bufio.NewWriterSize(gz, bufSize),
		closers: []func() error{gz.Close, f.Close},
	}, nil
}

func newStdoutSink(bufSize int) *Sink {
	return &Sink{w: bufio.NewWriterSize(os.Stdout, bufSize)}
}

// newWriterSink wraps an arbitrary writer for tests and in-memory use.
func newWriterSink(w io.Writer, bufSize int) *Sink {
	return &Sink{w: bufio.NewWriterSize(w, bufSize)}
}
