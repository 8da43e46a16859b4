// Package seqio resolves sequence file sources and sinks, attaches error
// context to paired I/O, and exposes staged option builders for opening
// record readers and writers.
package seqio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"
)

// IsGzipPath reports whether the path selects gzip handling. Only an
// extension of exactly "gz" qualifies; the check is case-sensitive and no
// magic bytes are inspected.
func IsGzipPath(path string) bool {
	return strings.TrimPrefix(filepath.Ext(path), ".") == "gz"
}

// stdinSource wraps os.Stdin with a no-op Close so the process handle
// stays usable after the reader is discarded.
type stdinSource struct {
	io.Reader
}

func (stdinSource) Close() error { return nil }

func newStdinSource() io.ReadCloser {
	return stdinSource{os.Stdin}
}

func newFileSource(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// lazyGzipSource decodes inline with each Read call on the caller's
// goroutine.
type lazyGzipSource struct {
	gz   *gzip.Reader
	file *os.File
}

func newLazyGzipSource(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &lazyGzipSource{gz: gz, file: f}, nil
}

func (s *lazyGzipSource) Read(p []byte) (int, error) {
	return s.gz.Read(p)
}

func (s *lazyGzipSource) Close() error {
	err := s.gz.Close()
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// threadedGzipSource decodes eagerly on a dedicated worker goroutine into
// an in-process pipe; the consumer only reads already-decoded bytes. The
// pipe provides backpressure, so the worker blocks once the consumer falls
// behind. The worker is joined exactly once, when the consumer observes
// EOF; a source closed before EOF leaves the worker's error unobserved.
type threadedGzipSource struct {
	pr     *io.PipeReader
	group  *errgroup.Group
	join   sync.Once
	joined error
}

func newThreadedGzipSource(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	pr, pw := io.Pipe()
	var group errgroup.Group
	group.Go(func() error {
		_, err := io.Copy(pw, gz)
		if cerr := gz.Close(); err == nil {
			err = cerr
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		// Readers past this point see err instead of a clean EOF.
		_ = pw.CloseWithError(err)
		return err
	})

	return &threadedGzipSource{pr: pr, group: &group}, nil
}

func (s *threadedGzipSource) Read(p []byte) (int, error) {
	n, err := s.pr.Read(p)
	if errors.Is(err, io.EOF) {
		s.join.Do(func() { s.joined = s.group.Wait() })
		if s.joined != nil {
			return n, s.joined
		}
	}
	return n, err
}

func (s *threadedGzipSource) Close() error {
	return s.pr.Close()
}
