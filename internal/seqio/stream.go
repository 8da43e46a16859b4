package seqio

import (
	"bufio"
	"errors"
	"io"

	"fastxkit/internal/fastx"
)

// Stream is a record stream whose errors carry the locator and record-kind
// context of the input it was opened from. Enrichment is applied lazily,
// as each record is pulled; io.EOF passes through untouched.
type Stream struct {
	inner  fastx.Reader
	wrap   func(error) error
	format fastx.Format
	src    io.Closer
}

// Next returns the next record, io.EOF at end of stream, or a decode error
// enriched with the input's context.
func (s *Stream) Next() (*fastx.Record, error) {
	rec, err := s.inner.Next()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, s.wrap(err)
	}
	return rec, err
}

// Format reports the record grammar this stream decodes. For streams
// opened with format sniffing this is the sniffed result.
func (s *Stream) Format() fastx.Format {
	return s.format
}

// Close releases the underlying source.
func (s *Stream) Close() error {
	if s.src == nil {
		return nil
	}
	return s.src.Close()
}

// RecordReaders is the uniform paired-input shape consumed by
// subcommands. Reader2 is non-nil iff a second path was supplied; its
// absence means single-end or interleaved input.
type RecordReaders struct {
	Reader1 *Stream
	Reader2 *Stream
}

// Close closes both streams, returning the first error.
func (r *RecordReaders) Close() error {
	err := r.Reader1.Close()
	if r.Reader2 != nil {
		if cerr := r.Reader2.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// LineStream is a raw line stream for record grammars this layer does not
// parse (SAM). Lines are yielded without their trailing newline; errors
// carry the input's context and io.EOF marks the end.
type LineStream struct {
	reader *bufio.Reader
	line   []byte
	wrap   func(error) error
	src    io.Closer
}

func newLineStream(r io.Reader, wrap func(error) error, src io.Closer) *LineStream {
	return &LineStream{
		reader: bufio.NewReaderSize(r, 1<<20),
		line:   make([]byte, 0, 512),
		wrap:   wrap,
		src:    src,
	}
}

// Next returns the next line, or io.EOF when the stream is exhausted.
func (s *LineStream) Next() ([]byte, error) {
	line, err := readLine(s.reader, &s.line)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, s.wrap(err)
	}
	return line, nil
}

func (s *LineStream) Close() error {
	if s.src == nil {
		return nil
	}
	return s.src.Close()
}

// LineReaders is the paired shape for raw line streams.
type LineReaders struct {
	Reader1 *LineStream
	Reader2 *LineStream
}

// Close closes both streams, returning the first error.
func (r *LineReaders) Close() error {
	err := r.Reader1.Close()
	if r.Reader2 != nil {
		if cerr := r.Reader2.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// readLine reads a line from the input, stripping the newline. Reuses the
// provided buffer to minimize allocations.
func readLine(reader *bufio.Reader, buf *[]byte) ([]byte, error) {
	*buf = (*buf)[:0]

	for {
		segment, isPrefix, err := reader.ReadLine()
		if err != nil {
			return nil, err
		}

		*buf = append(*buf, segment...)

		if !isPrefix {
			break
		}
	}

	if n := len(*buf); n > 0 && (*buf)[n-1] == '\r' {
		*buf = (*buf)[:n-1]
	}

	return *buf, nil
}
