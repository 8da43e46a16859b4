package seqio

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastxkit/internal/fastx"
)

func fq(header, seq string) *fastx.Record {
	qual := make([]byte, len(seq))
	for i := range qual {
		qual[i] = 'I'
	}
	return &fastx.Record{Header: header, Sequence: []byte(seq), Quality: qual}
}

// slicePairs yields fixed pairs then io.EOF.
type slicePairs struct {
	pairs [][2]*fastx.Record
	pos   int
}

func (s *slicePairs) NextPair() ([2]*fastx.Record, error) {
	if s.pos >= len(s.pairs) {
		return [2]*fastx.Record{}, io.EOF
	}
	p := s.pairs[s.pos]
	s.pos++
	return p, nil
}

func singleWriters(buf *bytes.Buffer) *RecordWriters {
	return &RecordWriters{writer1: newWriterSink(buf, 64)}
}

func pairedWriters(buf1, buf2 *bytes.Buffer) *RecordWriters {
	return &RecordWriters{writer1: newWriterSink(buf1, 64), writer2: newWriterSink(buf2, 64)}
}

func TestWritePairsInterleaves(t *testing.T) {
	var buf bytes.Buffer
	writers := singleWriters(&buf)

	src := &slicePairs{pairs: [][2]*fastx.Record{
		{fq("p1/1", "AAAA"), fq("p1/2", "CCCC")},
		{fq("p2/1", "GGGG"), fq("p2/2", "TTTT")},
	}}
	require.NoError(t, WritePairs(src, writers))
	require.NoError(t, writers.Close())

	want := "@p1/1\nAAAA\n+\nIIII\n@p1/2\nCCCC\n+\nIIII\n@p2/1\nGGGG\n+\nIIII\n@p2/2\nTTTT\n+\nIIII\n"
	assert.Equal(t, want, buf.String())
}

func TestWritePairsSplits(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	writers := pairedWriters(&buf1, &buf2)

	src := &slicePairs{pairs: [][2]*fastx.Record{
		{fq("p1/1", "AAAA"), fq("p1/2", "CCCC")},
		{fq("p2/1", "GGGG"), fq("p2/2", "TTTT")},
	}}
	require.NoError(t, WritePairs(src, writers))
	require.NoError(t, writers.Close())

	assert.Equal(t, "@p1/1\nAAAA\n+\nIIII\n@p2/1\nGGGG\n+\nIIII\n", buf1.String())
	assert.Equal(t, "@p1/2\nCCCC\n+\nIIII\n@p2/2\nTTTT\n+\nIIII\n", buf2.String())
}

// failingPairs yields one good pair, then an error.
type failingPairs struct {
	served bool
}

func (s *failingPairs) NextPair() ([2]*fastx.Record, error) {
	if s.served {
		return [2]*fastx.Record{}, errors.New("stream broke")
	}
	s.served = true
	return [2]*fastx.Record{fq("p1/1", "AAAA"), fq("p1/2", "CCCC")}, nil
}

func TestWritePairsPropagatesSourceError(t *testing.T) {
	var buf bytes.Buffer
	writers := singleWriters(&buf)

	err := WritePairs(&failingPairs{}, writers)
	require.Error(t, err)
	assert.EqualError(t, err, "stream broke")

	// The failed pair wrote nothing; only the good pair is present.
	require.NoError(t, writers.Close())
	assert.Equal(t, "@p1/1\nAAAA\n+\nIIII\n@p1/2\nCCCC\n+\nIIII\n", buf.String())
}

// sliceRecords yields fixed records then io.EOF.
type sliceRecords struct {
	recs []*fastx.Record
	pos  int
}

func (s *sliceRecords) Next() (*fastx.Record, error) {
	if s.pos >= len(s.recs) {
		return nil, io.EOF
	}
	rec := s.recs[s.pos]
	s.pos++
	return rec, nil
}

func TestWriteRecordsStreams(t *testing.T) {
	var buf bytes.Buffer
	writers := singleWriters(&buf)

	src := &sliceRecords{recs: []*fastx.Record{fq("r1", "AAAA"), fq("r2", "CCCC")}}
	require.NoError(t, WriteRecords(src, writers.SingleEnd()))
	require.NoError(t, writers.Close())

	assert.Equal(t, "@r1\nAAAA\n+\nIIII\n@r2\nCCCC\n+\nIIII\n", buf.String())
}

// brokenWriter fails every write.
type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPairedFlushFailsFast(t *testing.T) {
	var ok bytes.Buffer
	writers := &RecordWriters{
		writer1: newWriterSink(brokenWriter{}, 8),
		// Buffer sized so the record stays buffered until Flush.
		writer2: newWriterSink(&ok, 64),
	}
	pw := writers.PairedEnd()

	require.NoError(t, pw.WriteRecord2(fq("r2", "ACGT")))
	err := pw.WritePair([2]*fastx.Record{fq("p/1", "AAAAAAAAAAAAAAAA"), fq("p/2", "CCCC")})
	if err == nil {
		err = pw.Flush()
	}
	require.Error(t, err)
	assert.EqualError(t, err, "disk full")

	// Fail-fast: the second sink was not flushed.
	assert.Empty(t, ok.String())
}

func TestSingleEndPanicsOnPaired(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	writers := pairedWriters(&buf1, &buf2)
	assert.Panics(t, func() { writers.SingleEnd() })

	single := singleWriters(&buf1)
	assert.Panics(t, func() { single.PairedEnd() })
}

func TestOutputBuilderGzipSink(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.fastq.gz")

	writers, err := NewOutput(path).UseFileGzipOrStdout().Open()
	require.NoError(t, err)
	sw := writers.SingleEnd()
	require.NoError(t, sw.WriteRecord(fq("r1", "ACGT")))
	require.NoError(t, writers.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	content, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, "@r1\nACGT\n+\nIIII\n", string(content))
}

func TestOutputBuilderPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.fastq")

	writers, err := NewOutputPair(path, "").UseFile().Open()
	require.NoError(t, err)
	assert.False(t, writers.IsPaired())
	sw := writers.SingleEnd()
	require.NoError(t, sw.WriteRecord(fq("r1", "ACGT")))
	require.NoError(t, writers.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "@r1\nACGT\n+\nIIII\n", string(content))
}

func TestOutputBuilderOpenErrorContext(t *testing.T) {
	missingDir := filepath.Join(t.TempDir(), "no_such_dir", "out.fastq")

	_, err := NewOutput(missingDir).UseFile().Open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to open file for writing '"+missingDir+"'")
}

func TestOutputBuilderSecondLegError(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "out1.fastq")
	bad := filepath.Join(dir, "no_such_dir", "out2.fastq")

	_, err := NewOutputPair(good, bad).UseFile().Open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to open file for writing '"+bad+"'")
}
