package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastxkit/internal/fastx"
)

// countingFilter records every processed header and collects output order.
type countingFilter struct {
	Filter
	processed map[string]int
	output    []string
	warnings  []string
}

func newCountingFilter() *countingFilter {
	cf := &countingFilter{processed: make(map[string]int)}
	cf.Process = func(rec *fastx.Record) *fastx.Record {
		cf.processed[rec.Header]++
		return rec
	}
	cf.Output = func(rec *fastx.Record) error {
		cf.output = append(cf.output, rec.Header)
		return nil
	}
	cf.Warnf = func(format string, args ...any) {
		cf.warnings = append(cf.warnings, format)
	}
	return cf
}

func TestFilterSingleEnd(t *testing.T) {
	cf := newCountingFilter()
	err := cf.Run(reads("SRR1.1.1 x", "SRR1.2.1 x"), nil, ModeStrict)
	require.NoError(t, err)
	assert.Equal(t, []string{"SRR1.1.1 x", "SRR1.2.1 x"}, cf.output)
}

func TestFilterNoneAlternatesThenDrains(t *testing.T) {
	cf := newCountingFilter()
	err := cf.Run(
		reads("a/1", "b/1", "c/1", "d/1"),
		reads("a/2", "b/2"),
		ModeNone,
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "a/2", "b/1", "b/2", "c/1", "d/1"}, cf.output)
	assert.Empty(t, cf.warnings)
}

func TestFilterStrictMatchingPairs(t *testing.T) {
	cf := newCountingFilter()
	err := cf.Run(
		reads("a/1", "b/1"),
		reads("a/2", "b/2"),
		ModeStrict,
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "a/2", "b/1", "b/2"}, cf.output)
}

func TestFilterStrictMismatchIsFatal(t *testing.T) {
	cf := newCountingFilter()
	err := cf.Run(
		reads("a/1", "b/1"),
		reads("a/2", "x/2"),
		ModeStrict,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Paired read IDs out of sync:")
}

func TestFilterStrictMissingMateIsFatal(t *testing.T) {
	cf := newCountingFilter()
	err := cf.Run(
		reads("a/1", "b/1"),
		reads("a/2"),
		ModeStrict,
	)
	require.Error(t, err)
	assert.EqualError(t, err, "An extra read in the first file was found with header b/1")
}

// A weak-mode mismatch degrades to unpaired processing. Every record,
// including the mismatched pair itself, is processed exactly once.
func TestWeakModeMismatchProcessesEachOnce(t *testing.T) {
	cf := newCountingFilter()
	err := cf.Run(
		reads("a/1", "b/1", "c/1"),
		reads("a/2", "x/2", "c/2"),
		ModeWeak,
	)
	require.NoError(t, err)
	require.Len(t, cf.warnings, 1)

	for _, h := range []string{"a/1", "a/2", "b/1", "x/2", "c/1", "c/2"} {
		assert.Equal(t, 1, cf.processed[h], "header %s", h)
	}
	assert.Len(t, cf.output, 6)
}

func TestWeakModeMissingMateDrains(t *testing.T) {
	cf := newCountingFilter()
	err := cf.Run(
		reads("a/1", "b/1", "c/1"),
		reads("a/2"),
		ModeWeak,
	)
	require.NoError(t, err)
	require.Len(t, cf.warnings, 1)

	for _, h := range []string{"a/1", "a/2", "b/1", "c/1"} {
		assert.Equal(t, 1, cf.processed[h], "header %s", h)
	}
}

func TestFilterDropsRecords(t *testing.T) {
	cf := newCountingFilter()
	keep := cf.Process
	cf.Process = func(rec *fastx.Record) *fastx.Record {
		keep(rec)
		if rec.Header == "b/1" {
			return nil
		}
		return rec
	}

	err := cf.Run(reads("a/1", "b/1", "c/1"), nil, ModeNone)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "c/1"}, cf.output)
	assert.Equal(t, 1, cf.processed["b/1"])
}

func TestInterleavedStrict(t *testing.T) {
	cf := newCountingFilter()
	err := cf.RunInterleaved(reads("a/1", "a/2", "b/1", "b/2"), ModeStrict)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "a/2", "b/1", "b/2"}, cf.output)
}

func TestInterleavedStrictOddCount(t *testing.T) {
	cf := newCountingFilter()
	err := cf.RunInterleaved(reads("a/1", "a/2", "b/1"), ModeStrict)
	require.Error(t, err)
	assert.EqualError(t, err, "An odd number of reads was found while de-interleaving: b/1")
}

func TestInterleavedWeakMismatchDegrades(t *testing.T) {
	cf := newCountingFilter()
	err := cf.RunInterleaved(reads("a/1", "x/2", "b/1", "b/2"), ModeWeak)
	require.NoError(t, err)
	require.Len(t, cf.warnings, 1)

	for _, h := range []string{"a/1", "x/2", "b/1", "b/2"} {
		assert.Equal(t, 1, cf.processed[h], "header %s", h)
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "none", ModeNone.String())
	assert.Equal(t, "strict", ModeStrict.String())
	assert.Equal(t, "weak", ModeWeak.String())
}
