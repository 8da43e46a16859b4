package seqio

// OutputOptions is the first stage of the output builder. An empty path
// selects stdout on the strategies that allow it.
type OutputOptions struct {
	path1, path2 string
	paired       bool
	bufSize      int
}

// NewOutput starts an output builder over one file path.
func NewOutput(path string) OutputOptions {
	return OutputOptions{path1: path, bufSize: defaultSinkBuffer}
}

// NewOutputPair starts an output builder over one mandatory and one
// optional file path. An empty path2 means a single interleaved output.
func NewOutputPair(path1, path2 string) OutputOptions {
	return OutputOptions{path1: path1, path2: path2, paired: path2 != "", bufSize: defaultSinkBuffer}
}

// NewOptionalOutput starts an output builder over an optional path. An
// empty path or "-" selects stdout.
func NewOptionalOutput(path string) OutputOptions {
	return OutputOptions{path1: normalizeStd(path), bufSize: defaultSinkBuffer}
}

// NewOptionalOutputPair starts an output builder over two optional paths.
// The second position exists only when path2 is non-empty.
func NewOptionalOutputPair(path1, path2 string) OutputOptions {
	p2 := normalizeStd(path2)
	return OutputOptions{path1: normalizeStd(path1), path2: p2, paired: p2 != "", bufSize: defaultSinkBuffer}
}

// NewStdout starts an output builder writing to stdout.
func NewStdout() OutputOptions {
	return OutputOptions{bufSize: defaultSinkBuffer}
}

// WithCapacity overrides the sink buffer size in bytes.
func (o OutputOptions) WithCapacity(n int) OutputOptions {
	if n > 0 {
		o.bufSize = n
	}
	return o
}

// UseFile writes each position to a plain file regardless of extension.
// Paths must be present on this route.
func (o OutputOptions) UseFile() *OutputSink {
	return o.build(false)
}

// UseFileGzipOrStdout writes each position to a plain file, a
// gzip-encoding file when the extension selects gzip, or stdout when the
// path is absent.
func (o OutputOptions) UseFileGzipOrStdout() *OutputSink {
	return o.build(true)
}

func (o OutputOptions) build(gzipOrStdout bool) *OutputSink {
	open := func(path string) (*Sink, error) {
		if gzipOrStdout {
			switch {
			case path == "":
				return newStdoutSink(o.bufSize), nil
			case IsGzipPath(path):
				return newGzipSink(path, o.bufSize)
			}
		}
		return newFileSink(path, o.bufSize)
	}

	sink := &OutputSink{ctx: newOutputContext(o.path1, o.path2)}
	w1, err := open(o.path1)
	if err != nil {
		sink.err = err1(err)
		return sink
	}
	sink.w1 = w1
	if o.paired {
		w2, err := open(o.path2)
		if err != nil {
			_ = w1.Close()
			sink.w1 = nil
			sink.err = err2(err)
			return sink
		}
		sink.w2 = w2
	}
	return sink
}

// OutputSink is the final stage of the output builder.
type OutputSink struct {
	ctx    OutputContext
	w1, w2 *Sink
	err    *PairedError
}

// Open returns the record writers, or the accumulated error rendered with
// full context.
func (s *OutputSink) Open() (*RecordWriters, error) {
	if s.err != nil {
		return nil, s.ctx.wrap(s.err)
	}
	return &RecordWriters{writer1: s.w1, writer2: s.w2}, nil
}
