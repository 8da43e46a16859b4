package pairing

import (
	"errors"
	"fmt"
	"io"

	"fastxkit/internal/fastx"
)

// RecordSource is a pull-based stream of records ending in io.EOF.
type RecordSource interface {
	Next() (*fastx.Record, error)
}

// Zip pulls one record from each of two streams per step, like a zipped
// iterator that also verifies the streams are the same length and,
// optionally, that mates share a molecular ID.
type Zip struct {
	reads1, reads2 RecordSource
	checked        bool
}

// NewZip zips two streams with paired-header checking.
func NewZip(reads1, reads2 RecordSource) *Zip {
	return &Zip{reads1: reads1, reads2: reads2, checked: true}
}

// NewZipUnchecked zips two streams without header checking. Length
// mismatches are still reported.
func NewZipUnchecked(reads1, reads2 RecordSource) *Zip {
	return &Zip{reads1: reads1, reads2: reads2}
}

// NextPair returns the next pair, io.EOF when both streams are exhausted,
// or an error describing the desynchronization. I/O errors from either
// stream propagate unchanged.
func (z *Zip) NextPair() ([2]*fastx.Record, error) {
	var none [2]*fastx.Record

	rec1, errA := z.reads1.Next()
	rec2, errB := z.reads2.Next()
	if errA != nil && !errors.Is(errA, io.EOF) {
		return none, errA
	}
	if errB != nil && !errors.Is(errB, io.EOF) {
		return none, errB
	}

	switch {
	case errA == nil && errB == nil:
		if z.checked {
			if err := CheckPairedHeaders(rec1.Header, rec2.Header); err != nil {
				return none, err
			}
		}
		return [2]*fastx.Record{rec1, rec2}, nil
	case errA == nil:
		return none, fmt.Errorf("An extra read in the first file was found with header %s", rec1.Header)
	case errB == nil:
		return none, fmt.Errorf("An extra read in the second file was found with header %s", rec2.Header)
	default:
		return none, io.EOF
	}
}

// Deinterleave re-pairs a single stream holding alternating mates,
// checking that each consecutive pair shares a molecular ID.
type Deinterleave struct {
	src RecordSource
}

// NewDeinterleave wraps a stream of alternating mates.
func NewDeinterleave(src RecordSource) *Deinterleave {
	return &Deinterleave{src: src}
}

// NextPair returns the next pair, io.EOF at a clean end, an "odd number of
// reads" error when a record has no mate, or a synchronization error when
// consecutive records disagree on their molecular ID.
func (d *Deinterleave) NextPair() ([2]*fastx.Record, error) {
	var none [2]*fastx.Record

	rec1, err := d.src.Next()
	if err != nil {
		return none, err
	}
	rec2, err := d.src.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return none, fmt.Errorf("An odd number of reads was found while de-interleaving: %s", rec1.Header)
		}
		return none, err
	}
	if err := CheckPairedHeaders(rec1.Header, rec2.Header); err != nil {
		return none, err
	}
	return [2]*fastx.Record{rec1, rec2}, nil
}
