package fastx

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// FASTQReader reads four-line FASTQ records from an input stream.
type FASTQReader struct {
	reader *bufio.Reader
	line   []byte // reusable buffer for reading lines
}

// NewFASTQReader creates a FASTQ reader over r. If r is already a
// *bufio.Reader it is used directly so previously peeked bytes are kept.
func NewFASTQReader(r io.Reader) *FASTQReader {
	return &FASTQReader{
		reader: ensureBuffered(r),
		line:   make([]byte, 0, 512),
	}
}

// Next reads and returns the next FASTQ record.
// Returns io.EOF when no more records are available.
func (p *FASTQReader) Next() (*Record, error) {
	rec := &Record{}

	// Line 1: Header (starts with @)
	line, err := readLine(p.reader, &p.line)
	if err != nil {
		return nil, err
	}
	if len(line) == 0 || line[0] != '@' {
		return nil, errors.New("invalid FASTQ: header line must start with @")
	}
	rec.Header = string(line[1:])

	// Line 2: Sequence
	line, err = readLine(p.reader, &p.line)
	if err != nil {
		return nil, truncated(err)
	}
	rec.Sequence = append([]byte(nil), line...)

	// Line 3: Plus line (we ignore it)
	line, err = readLine(p.reader, &p.line)
	if err != nil {
		return nil, truncated(err)
	}
	if len(line) == 0 || line[0] != '+' {
		return nil, errors.New("invalid FASTQ: separator line must start with +")
	}

	// Line 4: Quality scores
	line, err = readLine(p.reader, &p.line)
	if err != nil {
		return nil, truncated(err)
	}
	rec.Quality = append([]byte(nil), line...)

	if len(rec.Sequence) != len(rec.Quality) {
		return nil, errors.New("invalid FASTQ: sequence and quality lengths must match")
	}

	return rec, nil
}

// FASTAReader reads FASTA records, accumulating wrapped sequence lines
// until the next header or EOF.
type FASTAReader struct {
	reader  *bufio.Reader
	line    []byte
	pending string // header of the record whose sequence is being read
	started bool
	done    bool
}

// NewFASTAReader creates a FASTA reader over r. If r is already a
// *bufio.Reader it is used directly so previously peeked bytes are kept.
func NewFASTAReader(r io.Reader) *FASTAReader {
	return &FASTAReader{
		reader: ensureBuffered(r),
		line:   make([]byte, 0, 512),
	}
}

// Next reads and returns the next FASTA record.
// Returns io.EOF when no more records are available.
func (p *FASTAReader) Next() (*Record, error) {
	if p.done {
		return nil, io.EOF
	}

	if !p.started {
		for {
			line, err := readLine(p.reader, &p.line)
			if err != nil {
				return nil, err
			}
			if len(line) == 0 {
				continue
			}
			if line[0] != '>' {
				return nil, errors.New("invalid FASTA: header line must start with >")
			}
			p.pending = string(line[1:])
			p.started = true
			break
		}
	}

	rec := &Record{Header: p.pending}
	for {
		line, err := readLine(p.reader, &p.line)
		if errors.Is(err, io.EOF) {
			p.done = true
			if len(rec.Sequence) == 0 {
				return nil, errors.New("invalid FASTA: record has no sequence")
			}
			return rec, nil
		}
		if err != nil {
			return nil, err
		}
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			p.pending = string(line[1:])
			if len(rec.Sequence) == 0 {
				return nil, errors.New("invalid FASTA: record has no sequence")
			}
			return rec, nil
		}
		rec.Sequence = append(rec.Sequence, line...)
	}
}

func ensureBuffered(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReaderSize(r, 1<<20)
}

// truncated converts an EOF in the middle of a record into a decode error.
func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return errors.New("invalid FASTQ: truncated record")
	}
	return err
}

// readLine reads a line from the input, stripping the newline.
// Reuses the provided buffer to minimize allocations.
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

	// Trim any trailing CR (for Windows line endings)
	*buf = bytes.TrimSuffix(*buf, []byte{'\r'})

	return *buf, nil
}
