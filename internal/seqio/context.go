package seqio

import (
	"fmt"
)

// ReaderKind tags which record grammar a builder position was asked to
// parse, for the purpose of rendering error context.
type ReaderKind int

const (
	// KindNone means no parse step was chosen; the position carries raw bytes.
	KindNone ReaderKind = iota
	KindFASTQ
	KindFASTA
	// KindFastX means the position is FASTQ or FASTA, decided by sniffing.
	KindFastX
	KindSAM
)

// locator records where a builder position reads from or writes to.
type locator struct {
	path   string
	isFile bool // false means the standard stream
}

func newLocator(path string) locator {
	if path == "" {
		return locator{}
	}
	return locator{path: path, isFile: true}
}

// PairedError tags an I/O failure with which leg of a paired operation it
// came from, without altering the underlying error's message. Unpaired
// operations use leg 1.
type PairedError struct {
	Leg int // 1 or 2
	Err error
}

func (e *PairedError) Error() string { return e.Err.Error() }

func (e *PairedError) Unwrap() error { return e.Err }

func err1(err error) *PairedError { return &PairedError{Leg: 1, Err: err} }

func err2(err error) *PairedError { return &PairedError{Leg: 2, Err: err} }

// InputContext is the descriptive metadata carried alongside an input
// builder chain. It is refined each time a parse step is chosen and
// consumed once, to enrich an open error or wrap a record stream.
type InputContext struct {
	reader1, reader2 ReaderKind
	input1, input2   locator
}

func newInputContext(path1, path2 string) InputContext {
	return InputContext{
		input1: newLocator(path1),
		input2: newLocator(path2),
	}
}

func (c InputContext) withReaders(kind ReaderKind) InputContext {
	c.reader1 = kind
	c.reader2 = kind
	return c
}

// wrap renders a paired open error with the locator and record kind of the
// failing leg.
func (c InputContext) wrap(e *PairedError) error {
	if e == nil {
		return nil
	}
	if e.Leg == 2 {
		return wrapOpenInput(e.Err, c.reader2, c.input2)
	}
	return wrapOpenInput(e.Err, c.reader1, c.input1)
}

func wrapOpenInput(err error, kind ReaderKind, in locator) error {
	var msg string
	if in.isFile {
		switch kind {
		case KindFASTQ:
			msg = "Failed to read FASTQ records from file"
		case KindFASTA:
			msg = "Failed to read FASTA records from file"
		case KindFastX:
			msg = "Failed to read records from file"
		case KindSAM:
			msg = "Failed to read SAM records from file"
		default:
			msg = "Failed to open file"
		}
		return fmt.Errorf("%s '%s': %w", msg, in.path, err)
	}
	switch kind {
	case KindFASTQ:
		msg = "Failed to read FASTQ records from stdin"
	case KindFASTA:
		msg = "Failed to read FASTA records from stdin"
	case KindFastX:
		msg = "Failed to read records from stdin"
	case KindSAM:
		msg = "Failed to read SAM records from stdin"
	default:
		msg = "Failed to read from stdin"
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// recordWrapper builds the lazy per-record enrichment applied to each
// error a record stream yields after a successful open.
func recordWrapper(kind ReaderKind, in locator) func(error) error {
	var msg string
	if in.isFile {
		switch kind {
		case KindFASTQ:
			msg = "Invalid FASTQ record in file"
		case KindFASTA:
			msg = "Invalid FASTA record in file"
		case KindSAM:
			msg = "Invalid SAM record in file"
		default:
			msg = "Invalid record in file"
		}
		path := in.path
		return func(err error) error {
			return fmt.Errorf("%s '%s': %w", msg, path, err)
		}
	}
	switch kind {
	case KindFASTQ:
		msg = "Invalid FASTQ record from stdin"
	case KindFASTA:
		msg = "Invalid FASTA record from stdin"
	case KindFastX:
		msg = "Invalid record from stdin"
	case KindSAM:
		msg = "Invalid SAM record from stdin"
	default:
		msg = "Invalid record in stdin"
	}
	return func(err error) error {
		return fmt.Errorf("%s: %w", msg, err)
	}
}

// OutputContext is the descriptive metadata carried alongside an output
// builder chain.
type OutputContext struct {
	output1, output2 locator
}

func newOutputContext(path1, path2 string) OutputContext {
	return OutputContext{
		output1: newLocator(path1),
		output2: newLocator(path2),
	}
}

func (c OutputContext) wrap(e *PairedError) error {
	if e == nil {
		return nil
	}
	out := c.output1
	if e.Leg == 2 {
		out = c.output2
	}
	if out.isFile {
		return fmt.Errorf("Failed to open file for writing '%s': %w", out.path, e.Err)
	}
	return fmt.Errorf("Failed to write to stdout: %w", e.Err)
}
