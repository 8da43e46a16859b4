package seqio

import (
	"fmt"
	"io"

	"fastxkit/internal/fastx"
)

// InputOptions is the first stage of the input builder for inputs backed
// by concrete paths. The next stage is choosing a decoding strategy.
type InputOptions struct {
	path1, path2 string // path2 "" means a single input
}

// NewInput starts an input builder over one file path.
func NewInput(path string) InputOptions {
	return InputOptions{path1: path}
}

// NewInputPair starts an input builder over one mandatory and one optional
// file path. An empty path2 means single-end or interleaved input.
func NewInputPair(path1, path2 string) InputOptions {
	return InputOptions{path1: path1, path2: path2}
}

// UseFile reads each path as a plain file regardless of extension.
func (o InputOptions) UseFile() *InputSource {
	return o.build(newFileSource)
}

// UseFileOrGzip reads each path as a plain file, or decodes it lazily when
// the extension selects gzip. Decoding happens inline with each read.
func (o InputOptions) UseFileOrGzip() *InputSource {
	return o.build(func(path string) (io.ReadCloser, error) {
		if IsGzipPath(path) {
			return newLazyGzipSource(path)
		}
		return newFileSource(path)
	})
}

// UseFileOrGzipThreaded reads each path as a plain file, or decodes it on
// a background worker when the extension selects gzip.
func (o InputOptions) UseFileOrGzipThreaded() *InputSource {
	return o.build(func(path string) (io.ReadCloser, error) {
		if IsGzipPath(path) {
			return newThreadedGzipSource(path)
		}
		return newFileSource(path)
	})
}

func (o InputOptions) build(open func(string) (io.ReadCloser, error)) *InputSource {
	src := &InputSource{ctx: newInputContext(o.path1, o.path2)}
	r1, err := open(o.path1)
	if err != nil {
		src.err = err1(err)
		return src
	}
	src.r1 = r1
	if o.path2 != "" {
		r2, err := open(o.path2)
		if err != nil {
			_ = r1.Close()
			src.r1 = nil
			src.err = err2(err)
			return src
		}
		src.r2 = r2
	}
	return src
}

// OptionalInputOptions is the first stage of the input builder for inputs
// that fall back to stdin when no path is supplied.
type OptionalInputOptions struct {
	path1, path2 string
	paired       bool
}

// NewOptionalInput starts an input builder over an optional path. An empty
// path or "-" selects stdin.
func NewOptionalInput(path string) OptionalInputOptions {
	return OptionalInputOptions{path1: normalizeStd(path)}
}

// NewOptionalInputPair starts an input builder over two optional paths.
// The second position exists only when path2 is non-empty.
func NewOptionalInputPair(path1, path2 string) OptionalInputOptions {
	return OptionalInputOptions{
		path1:  normalizeStd(path1),
		path2:  normalizeStd(path2),
		paired: normalizeStd(path2) != "",
	}
}

func normalizeStd(path string) string {
	if path == "-" {
		return ""
	}
	return path
}

// UseFileOrStdin reads each position from its file, or from stdin when the
// path is absent. Gzip decoding is not offered on this route; compressed
// input requires a concrete path.
func (o OptionalInputOptions) UseFileOrStdin() *InputSource {
	open := func(path string) (io.ReadCloser, error) {
		if path == "" {
			return newStdinSource(), nil
		}
		return newFileSource(path)
	}

	src := &InputSource{ctx: newInputContext(o.path1, o.path2)}
	r1, err := open(o.path1)
	if err != nil {
		src.err = err1(err)
		return src
	}
	src.r1 = r1
	if o.paired {
		r2, err := open(o.path2)
		if err != nil {
			_ = r1.Close()
			src.r1 = nil
			src.err = err2(err)
			return src
		}
		src.r2 = r2
	}
	return src
}

// InputSource is the strategy stage of the input builder: byte sources are
// resolved, and the caller either opens them raw or chooses a record
// format first. A failure from the previous stage is carried through and
// rendered at Open.
type InputSource struct {
	ctx    InputContext
	r1, r2 io.ReadCloser
	err    *PairedError
}

// RawInputs holds opened byte sources when no parse step was chosen.
type RawInputs struct {
	Reader1 io.ReadCloser
	Reader2 io.ReadCloser
}

// Close closes both sources, returning the first error.
func (r *RawInputs) Close() error {
	err := r.Reader1.Close()
	if r.Reader2 != nil {
		if cerr := r.Reader2.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns the raw byte sources, or the accumulated error rendered
// with full context.
func (s *InputSource) Open() (*RawInputs, error) {
	if s.err != nil {
		return nil, s.ctx.wrap(s.err)
	}
	return &RawInputs{Reader1: s.r1, Reader2: s.r2}, nil
}

// ParseFASTQ decodes each position as FASTQ records.
func (s *InputSource) ParseFASTQ() *InputRecords {
	return s.parseFixed(KindFASTQ, fastx.FormatFASTQ)
}

// ParseFASTA decodes each position as FASTA records.
func (s *InputSource) ParseFASTA() *InputRecords {
	return s.parseFixed(KindFASTA, fastx.FormatFASTA)
}

func (s *InputSource) parseFixed(kind ReaderKind, format fastx.Format) *InputRecords {
	s.ctx = s.ctx.withReaders(kind)
	if s.err != nil {
		return &InputRecords{ctx: s.ctx, err: s.err}
	}
	readers := &RecordReaders{
		Reader1: newStream(s.r1, format, kind, s.ctx.input1),
	}
	if s.r2 != nil {
		readers.Reader2 = newStream(s.r2, format, kind, s.ctx.input2)
	}
	return &InputRecords{ctx: s.ctx, readers: readers}
}

// ParseFastX sniffs each position and decodes it as FASTA or FASTQ
// according to its leading byte. The two positions may sniff to different
// formats; callers that require agreement check Stream.Format themselves.
func (s *InputSource) ParseFastX() *InputRecords {
	s.ctx = s.ctx.withReaders(KindFastX)
	if s.err != nil {
		return &InputRecords{ctx: s.ctx, err: s.err}
	}

	stream1, err := newSniffedStream(s.r1, s.ctx.input1)
	if err != nil {
		_ = s.r1.Close()
		if s.r2 != nil {
			_ = s.r2.Close()
		}
		return &InputRecords{ctx: s.ctx, err: err1(err)}
	}
	readers := &RecordReaders{Reader1: stream1}
	if s.r2 != nil {
		stream2, err := newSniffedStream(s.r2, s.ctx.input2)
		if err != nil {
			_ = s.r1.Close()
			_ = s.r2.Close()
			return &InputRecords{ctx: s.ctx, err: err2(err)}
		}
		readers.Reader2 = stream2
	}
	return &InputRecords{ctx: s.ctx, readers: readers}
}

// ParseSAM exposes each position as a raw line stream; SAM line grammar
// belongs to the consumer.
func (s *InputSource) ParseSAM() *InputLines {
	s.ctx = s.ctx.withReaders(KindSAM)
	if s.err != nil {
		return &InputLines{ctx: s.ctx, err: s.err}
	}
	readers := &LineReaders{
		Reader1: newLineStream(s.r1, recordWrapper(KindSAM, s.ctx.input1), s.r1),
	}
	if s.r2 != nil {
		readers.Reader2 = newLineStream(s.r2, recordWrapper(KindSAM, s.ctx.input2), s.r2)
	}
	return &InputLines{ctx: s.ctx, readers: readers}
}

func newStream(src io.ReadCloser, format fastx.Format, kind ReaderKind, in locator) *Stream {
	var inner fastx.Reader
	if format == fastx.FormatFASTA {
		inner = fastx.NewFASTAReader(src)
	} else {
		inner = fastx.NewFASTQReader(src)
	}
	return &Stream{
		inner:  inner,
		wrap:   recordWrapper(kind, in),
		format: format,
		src:    src,
	}
}

func newSniffedStream(src io.ReadCloser, in locator) (*Stream, error) {
	format, buffered, err := fastx.Sniff(src)
	if err != nil {
		return nil, err
	}
	var inner fastx.Reader
	if format == fastx.FormatFASTA {
		inner = fastx.NewFASTAReader(buffered)
	} else {
		inner = fastx.NewFASTQReader(buffered)
	}
	return &Stream{
		inner:  inner,
		wrap:   recordWrapper(KindFastX, in),
		format: format,
		src:    src,
	}, nil
}

// InputRecords is the final stage of the input builder once a record
// format has been chosen.
type InputRecords struct {
	ctx     InputContext
	readers *RecordReaders
	err     *PairedError
}

// Open returns the paired record readers, or the accumulated error
// rendered with full context.
func (o *InputRecords) Open() (*RecordReaders, error) {
	if o.err != nil {
		return nil, o.ctx.wrap(o.err)
	}
	return o.readers, nil
}

// InputLines is the final stage of the input builder for raw line parsing.
type InputLines struct {
	ctx     InputContext
	readers *LineReaders
	err     *PairedError
}

// Open returns the paired line readers, or the accumulated error rendered
// with full context.
func (o *InputLines) Open() (*LineReaders, error) {
	if o.err != nil {
		return nil, o.ctx.wrap(o.err)
	}
	return o.readers, nil
}

// CheckDistinctFiles rejects using the same path for more than one leg of
// an operation. Empty paths (standard streams) are ignored.
func CheckDistinctFiles(paths ...string) error {
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		p = normalizeStd(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("The file '%s' was provided more than once. Input and output files must be distinct.", p)
		}
		seen[p] = struct{}{}
	}
	return nil
}
