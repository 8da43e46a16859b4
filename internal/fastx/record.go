// Package fastx provides FASTA and FASTQ record parsing with automatic
// format detection.
package fastx

import (
	"fmt"
	"io"
)

// Format identifies the record grammar of a sequence stream.
type Format int

const (
	FormatFASTQ Format = iota
	FormatFASTA
)

func (f Format) String() string {
	switch f {
	case FormatFASTQ:
		return "FASTQ"
	case FormatFASTA:
		return "FASTA"
	default:
		return "unknown"
	}
}

// Record represents a single sequence record. Quality is nil for FASTA
// records and non-nil (possibly empty) for FASTQ records.
type Record struct {
	Header   string // Header line without the leading '@' or '>'
	Sequence []byte
	Quality  []byte
}

// IsFASTQ reports whether the record carries quality scores.
func (r *Record) IsFASTQ() bool {
	return r.Quality != nil
}

// WriteTo serializes the record in its native format, FASTQ when quality
// scores are present and FASTA otherwise.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	var n int
	var err error
	if r.IsFASTQ() {
		n, err = fmt.Fprintf(w, "@%s\n%s\n+\n%s\n", r.Header, r.Sequence, r.Quality)
	} else {
		n, err = fmt.Fprintf(w, ">%s\n%s\n", r.Header, r.Sequence)
	}
	return int64(n), err
}

// Reader is a pull-based stream of records. Next returns io.EOF when no
// more records are available.
type Reader interface {
	Next() (*Record, error)
}
