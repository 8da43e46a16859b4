package seqio

import (
	"errors"
	"io"

	"fastxkit/internal/fastx"
)

// RecordWriters is the uniform paired-output shape consumed by
// subcommands: one interleaved sink, or two split sinks. The tag, not the
// sink types, governs interleave-vs-split behavior; callers match it once
// via SingleEnd or PairedEnd and stream all records through the resulting
// adapter.
type RecordWriters struct {
	writer1 *Sink
	writer2 *Sink // nil means single-end
}

// IsPaired reports whether a second output was supplied.
func (w *RecordWriters) IsPaired() bool {
	return w.writer2 != nil
}

// SingleEnd returns the interleaved-sink adapter. It panics when the
// writers are paired; callers dispatch on IsPaired first.
func (w *RecordWriters) SingleEnd() *SingleWriter {
	if w.writer2 != nil {
		panic("seqio: SingleEnd called on paired writers")
	}
	return &SingleWriter{sink: w.writer1}
}

// PairedEnd returns the split-sink adapter. It panics when the writers are
// single-end; callers dispatch on IsPaired first.
func (w *RecordWriters) PairedEnd() *PairedWriters {
	if w.writer2 == nil {
		panic("seqio: PairedEnd called on single-end writers")
	}
	return &PairedWriters{writer1: w.writer1, writer2: w.writer2}
}

// Close flushes and releases the sinks. It fails fast: an error on the
// first sink is returned without touching the second, so the original
// error is never masked.
func (w *RecordWriters) Close() error {
	if err := w.writer1.Close(); err != nil {
		return err
	}
	if w.writer2 != nil {
		return w.writer2.Close()
	}
	return nil
}

// SingleWriter writes records and record pairs to one sink; pairs are
// interleaved in order.
type SingleWriter struct {
	sink *Sink
}

// WriteRecord writes one record.
func (w *SingleWriter) WriteRecord(rec *fastx.Record) error {
	_, err := rec.WriteTo(w.sink)
	return err
}

// WritePair writes both records of a pair, first then second.
func (w *SingleWriter) WritePair(pair [2]*fastx.Record) error {
	if _, err := pair[0].WriteTo(w.sink); err != nil {
		return err
	}
	_, err := pair[1].WriteTo(w.sink)
	return err
}

// Flush flushes buffered data without releasing the sink.
func (w *SingleWriter) Flush() error {
	return w.sink.w.Flush()
}

// PairedWriters writes record pairs split across two sinks.
type PairedWriters struct {
	writer1 *Sink
	writer2 *Sink
}

// WritePair writes the first record to the first sink and the second
// record to the second sink.
func (w *PairedWriters) WritePair(pair [2]*fastx.Record) error {
	if _, err := pair[0].WriteTo(w.writer1); err != nil {
		return err
	}
	_, err := pair[1].WriteTo(w.writer2)
	return err
}

// WriteRecord1 writes an unpaired record to the first sink only.
func (w *PairedWriters) WriteRecord1(rec *fastx.Record) error {
	_, err := rec.WriteTo(w.writer1)
	return err
}

// WriteRecord2 writes an unpaired record to the second sink only.
func (w *PairedWriters) WriteRecord2(rec *fastx.Record) error {
	_, err := rec.WriteTo(w.writer2)
	return err
}

// Flush flushes both sinks. It fails fast on the first error and does not
// attempt the second sink.
func (w *PairedWriters) Flush() error {
	if err := w.writer1.w.Flush(); err != nil {
		return err
	}
	return w.writer2.w.Flush()
}

// RecordSource is a pull-based stream of single records ending in io.EOF.
type RecordSource interface {
	Next() (*fastx.Record, error)
}

// PairSource is a pull-based stream of record pairs ending in io.EOF. A
// pair is yielded whole or not at all; a failed pair carries no partial
// data.
type PairSource interface {
	NextPair() ([2]*fastx.Record, error)
}

// WriteRecords streams every record from src into the single-sink adapter.
// A source error propagates before anything further is written.
func WriteRecords(src RecordSource, w *SingleWriter) error {
	for {
		rec, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}
}

// WritePairs streams every pair from src into the writers, matching the
// single-vs-paired tag exactly once before the loop. Pairs interleave into
// a single sink and split across paired sinks. A failed pair propagates
// its error without writing partial data.
func WritePairs(src PairSource, w *RecordWriters) error {
	if w.IsPaired() {
		pw := w.PairedEnd()
		for {
			pair, err := src.NextPair()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
			if err := pw.WritePair(pair); err != nil {
				return err
			}
		}
	}

	sw := w.SingleEnd()
	for {
		pair, err := src.NextPair()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := sw.WritePair(pair); err != nil {
			return err
		}
	}
}
