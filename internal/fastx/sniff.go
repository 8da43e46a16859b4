package fastx

import (
	"errors"
	"io"
)

// ErrIndeterminateFormat is returned when the leading content of a stream
// identifies neither FASTA nor FASTQ.
var ErrIndeterminateFormat = errors.New("Unable to determine whether the file is FASTA or FASTQ!")

// Sniff inspects the stream without consuming it and reports its format.
// The first non-whitespace byte decides: '>' means FASTA, '@' means FASTQ,
// anything else (including an all-whitespace or empty stream) is an error.
// The returned reader holds the buffered bytes and must be used in place of
// r for subsequent reads.
func Sniff(r io.Reader) (Format, io.Reader, error) {
	br := ensureBuffered(r)

	for n := 1; ; n++ {
		window, err := br.Peek(n)
		if len(window) < n {
			if err == nil || errors.Is(err, io.EOF) {
				return 0, br, ErrIndeterminateFormat
			}
			return 0, br, err
		}
		switch c := window[n-1]; c {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			continue
		case '>':
			return FormatFASTA, br, nil
		case '@':
			return FormatFASTQ, br, nil
		default:
			return 0, br, ErrIndeterminateFormat
		}
	}
}

// NewReader sniffs the stream and returns a record reader for the detected
// format along with the format itself.
func NewReader(r io.Reader) (Reader, Format, error) {
	format, buffered, err := Sniff(r)
	if err != nil {
		return nil, 0, err
	}
	switch format {
	case FormatFASTA:
		return NewFASTAReader(buffered), format, nil
	default:
		return NewFASTQReader(buffered), format, nil
	}
}
