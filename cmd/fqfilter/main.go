// fqfilter length-filters and hard-trims FASTQ reads, preserving read
// pairing under a configurable synchronization policy.
package main

import (
	"flag"
	"fmt"
	"os"

	"fastxkit/internal/fastx"
	"fastxkit/internal/pairing"
	"fastxkit/internal/seqio"
)

var version = "dev"

const (
	exitSuccess = 0
	exitError   = 1
)

type config struct {
	inputFile1  string
	inputFile2  string
	outputFile1 string
	outputFile2 string
	minLength   int
	hardTrim    int
	pairing     string
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, done := parseFlags()
	if done {
		return exitSuccess
	}

	mode, err := parseMode(cfg.pairing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}

	if err := execute(cfg, mode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}

	return exitSuccess
}

func parseFlags() (config, bool) {
	var cfg config
	var showVersion, showHelp bool

	flag.StringVar(&cfg.outputFile1, "1", "", "output file (default: stdout)")
	flag.StringVar(&cfg.outputFile1, "o", "", "alias for -1")
	flag.StringVar(&cfg.outputFile2, "2", "", "second output file for split paired-end output")
	flag.IntVar(&cfg.minLength, "m", 0, "drop reads shorter than this length after trimming")
	flag.IntVar(&cfg.hardTrim, "t", 0, "hard-trim reads to this length (0 = no trimming)")
	flag.StringVar(&cfg.pairing, "p", "none", "pairing policy: none, strict, or weak")
	flag.BoolVar(&showVersion, "version", false, "show version and exit")
	flag.BoolVar(&showHelp, "h", false, "show help")

	flag.Usage = usage
	flag.Parse()

	if showHelp {
		flag.Usage()
		return cfg, true
	}

	if showVersion {
		fmt.Printf("fqfilter version %s\n", version)
		return cfg, true
	}

	args := flag.Args()
	if len(args) > 0 {
		cfg.inputFile1 = args[0]
	}
	if len(args) > 1 {
		cfg.inputFile2 = args[1]
	}

	return cfg, false
}

func usage() {
	fmt.Fprintf(os.Stderr, `fqfilter - length-filter and hard-trim FASTQ reads

Usage:
  fqfilter [options] reads.fastq                       Single-end or interleaved
  fqfilter [options] reads_R1.fastq reads_R2.fastq     Paired-end

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
With -p strict or -p weak and a single input, the input is treated as
interleaved pairs. Inputs may be gzip-compressed (.gz); with no input
argument, or with '-' in its place, reads come from stdin.
`)
}

func parseMode(s string) (pairing.Mode, error) {
	switch s {
	case "none":
		return pairing.ModeNone, nil
	case "strict":
		return pairing.ModeStrict, nil
	case "weak":
		return pairing.ModeWeak, nil
	default:
		return 0, fmt.Errorf("unknown pairing policy %q (want none, strict, or weak)", s)
	}
}

func execute(cfg config, mode pairing.Mode) error {
	if err := seqio.CheckDistinctFiles(cfg.inputFile1, cfg.inputFile2, cfg.outputFile1, cfg.outputFile2); err != nil {
		return err
	}

	readers, err := openReaders(cfg)
	if err != nil {
		return err
	}
	defer readers.Close()

	writers, err := seqio.NewOptionalOutputPair(cfg.outputFile1, cfg.outputFile2).
		UseFileGzipOrStdout().
		Open()
	if err != nil {
		return err
	}

	filter := &pairing.Filter{
		Process: processFunc(cfg),
		Output:  outputFunc(writers),
	}

	if err := runFilter(filter, readers, mode); err != nil {
		_ = writers.Close()
		return err
	}

	return writers.Close()
}

func openReaders(cfg config) (*seqio.RecordReaders, error) {
	if cfg.inputFile1 == "" || cfg.inputFile1 == "-" {
		return seqio.NewOptionalInputPair(cfg.inputFile1, cfg.inputFile2).
			UseFileOrStdin().
			ParseFASTQ().
			Open()
	}
	return seqio.NewInputPair(cfg.inputFile1, cfg.inputFile2).
		UseFileOrGzipThreaded().
		ParseFASTQ().
		Open()
}

func runFilter(filter *pairing.Filter, readers *seqio.RecordReaders, mode pairing.Mode) error {
	if readers.Reader2 == nil {
		if mode != pairing.ModeNone {
			return filter.RunInterleaved(readers.Reader1, mode)
		}
		return filter.Run(readers.Reader1, nil, mode)
	}
	return filter.Run(readers.Reader1, readers.Reader2, mode)
}

// processFunc hard-trims then length-filters a record in place.
func processFunc(cfg config) func(*fastx.Record) *fastx.Record {
	return func(rec *fastx.Record) *fastx.Record {
		if cfg.hardTrim > 0 && len(rec.Sequence) > cfg.hardTrim {
			rec.Sequence = rec.Sequence[:cfg.hardTrim]
			if rec.Quality != nil {
				rec.Quality = rec.Quality[:cfg.hardTrim]
			}
		}
		if len(rec.Sequence) < cfg.minLength {
			return nil
		}
		return rec
	}
}

// outputFunc routes each surviving record by its read side when output is
// split, and interleaves otherwise.
func outputFunc(writers *seqio.RecordWriters) func(*fastx.Record) error {
	if !writers.IsPaired() {
		sw := writers.SingleEnd()
		return sw.WriteRecord
	}
	pw := writers.PairedEnd()
	return func(rec *fastx.Record) error {
		if _, side, ok := pairing.MolecularIDSide(rec.Header, '1'); ok && side == '2' {
			return pw.WriteRecord2(rec)
		}
		return pw.WriteRecord1(rec)
	}
}
