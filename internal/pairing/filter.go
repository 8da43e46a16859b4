package pairing

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fastxkit/internal/fastx"
)

// Mode selects how a Filter treats paired-stream desynchronization.
type Mode int

const (
	// ModeNone processes records pair-agnostically: sides alternate while
	// both last, then each remainder drains independently.
	ModeNone Mode = iota
	// ModeStrict aborts on a missing mate or a molecular-ID mismatch.
	ModeStrict
	// ModeWeak warns on desynchronization and degrades to ModeNone for the
	// remainder of the run. No record is lost or processed twice.
	ModeWeak
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeWeak:
		return "weak"
	default:
		return "none"
	}
}

const rerunNote = "Consider rerunning with corrected inputs."

// Filter is the per-record processing machine shared by QC pipelines.
// Process may reject a record by returning nil; Output runs only for
// survivors. A nil Process keeps every record; a nil Warnf writes to
// stderr.
type Filter struct {
	Process func(*fastx.Record) *fastx.Record
	Output  func(*fastx.Record) error
	Warnf   func(format string, args ...any)
}

func (f *Filter) warnf(format string, args ...any) {
	if f.Warnf != nil {
		f.Warnf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func (f *Filter) handle(rec *fastx.Record) error {
	if f.Process != nil {
		rec = f.Process(rec)
		if rec == nil {
			return nil
		}
	}
	return f.Output(rec)
}

func (f *Filter) drain(src RecordSource) error {
	for {
		rec, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := f.handle(rec); err != nil {
			return err
		}
	}
}

// Run consumes one or two record streams under the given mode. reads2 may
// be nil for single-end input, in which case the mode is irrelevant.
func (f *Filter) Run(reads1, reads2 RecordSource, mode Mode) error {
	if reads2 == nil {
		return f.drain(reads1)
	}
	if mode == ModeNone {
		return f.runUnpaired(reads1, reads2)
	}
	return f.runPaired(reads1, reads2, mode)
}

// runUnpaired alternates sides so output order roughly interleaves, then
// drains whichever side remains.
func (f *Filter) runUnpaired(reads1, reads2 RecordSource) error {
	for {
		rec1, err := reads1.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return f.drain(reads2)
			}
			return err
		}
		if err := f.handle(rec1); err != nil {
			return err
		}

		rec2, err := reads2.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return f.drain(reads1)
			}
			return err
		}
		if err := f.handle(rec2); err != nil {
			return err
		}
	}
}

func (f *Filter) runPaired(reads1, reads2 RecordSource, mode Mode) error {
	for {
		rec1, errA := reads1.Next()
		rec2, errB := reads2.Next()
		if errA != nil && !errors.Is(errA, io.EOF) {
			return errA
		}
		if errB != nil && !errors.Is(errB, io.EOF) {
			return errB
		}

		switch {
		case errA == nil && errB == nil:
			if err := CheckPairedHeaders(rec1.Header, rec2.Header); err != nil {
				if mode == ModeStrict {
					return err
				}
				// Weak: the mismatched pair is reprocessed unpaired,
				// exactly once, then both remainders drain.
				f.warnf("WARNING! %v Paired-read checking is being disabled for the remainder of the processing. %s", err, rerunNote)
				if err := f.handle(rec1); err != nil {
					return err
				}
				if err := f.handle(rec2); err != nil {
					return err
				}
				return f.runUnpaired(reads1, reads2)
			}
			if err := f.handle(rec1); err != nil {
				return err
			}
			if err := f.handle(rec2); err != nil {
				return err
			}

		case errA == nil:
			err := fmt.Errorf("An extra read in the first file was found with header %s", rec1.Header)
			if mode == ModeStrict {
				return err
			}
			f.warnf("WARNING! %v. Paired-read checking is being disabled for the remainder of the processing. %s", err, rerunNote)
			if err := f.handle(rec1); err != nil {
				return err
			}
			return f.drain(reads1)

		case errB == nil:
			err := fmt.Errorf("An extra read in the second file was found with header %s", rec2.Header)
			if mode == ModeStrict {
				return err
			}
			f.warnf("WARNING! %v. Paired-read checking is being disabled for the remainder of the processing. %s", err, rerunNote)
			if err := f.handle(rec2); err != nil {
				return err
			}
			return f.drain(reads2)

		default:
			return nil
		}
	}
}

// RunInterleaved consumes a single stream of alternating mates under the
// given mode. ModeNone ignores pairing entirely.
func (f *Filter) RunInterleaved(src RecordSource, mode Mode) error {
	if mode == ModeNone {
		return f.drain(src)
	}

	for {
		rec1, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		rec2, err := src.Next()
		if errors.Is(err, io.EOF) {
			oddErr := fmt.Errorf("An odd number of reads was found while de-interleaving: %s", rec1.Header)
			if mode == ModeStrict {
				return oddErr
			}
			f.warnf("WARNING! %v. Paired-read checking is being disabled for the remainder of the processing. %s", oddErr, rerunNote)
			return f.handle(rec1)
		}
		if err != nil {
			return err
		}

		if err := CheckPairedHeaders(rec1.Header, rec2.Header); err != nil {
			if mode == ModeStrict {
				return err
			}
			f.warnf("WARNING! %v Paired-read checking is being disabled for the remainder of the processing. %s", err, rerunNote)
			if err := f.handle(rec1); err != nil {
				return err
			}
			if err := f.handle(rec2); err != nil {
				return err
			}
			return f.drain(src)
		}

		if err := f.handle(rec1); err != nil {
			return err
		}
		if err := f.handle(rec2); err != nil {
			return err
		}
	}
}
