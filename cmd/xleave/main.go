// xleave interleaves paired FASTA/FASTQ files and de-interleaves them back.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

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
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, done := parseFlags()
	if done {
		return exitSuccess
	}

	if cfg.inputFile1 == "" {
		fmt.Fprintf(os.Stderr, "error: an input file is required\n")
		flag.Usage()
		return exitError
	}

	if err := execute(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}

	return exitSuccess
}

func parseFlags() (config, bool) {
	var cfg config
	var showVersion, showHelp bool

	flag.StringVar(&cfg.outputFile1, "1", "", "output file for interleaved/de-interleaved reads (default: stdout)")
	flag.StringVar(&cfg.outputFile1, "o", "", "alias for -1")
	flag.StringVar(&cfg.outputFile2, "2", "", "second output file when de-interleaving paired-end reads")
	flag.BoolVar(&showVersion, "version", false, "show version and exit")
	flag.BoolVar(&showHelp, "h", false, "show help")

	flag.Usage = usage
	flag.Parse()

	if showHelp {
		flag.Usage()
		return cfg, true
	}

	if showVersion {
		fmt.Printf("xleave version %s\n", version)
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
	fmt.Fprintf(os.Stderr, `xleave - interleave or de-interleave paired FASTA/FASTQ reads

Usage:
  xleave [options] reads_R1.fastq reads_R2.fastq    Interleave two files
  xleave -1 out_R1.fastq -2 out_R2.fastq reads.fastq   De-interleave one file

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Inputs and outputs may be gzip-compressed (.gz). With no -1/-2 the
interleaved result goes to stdout.
`)
}

func execute(cfg config) error {
	if err := seqio.CheckDistinctFiles(cfg.inputFile1, cfg.inputFile2, cfg.outputFile1, cfg.outputFile2); err != nil {
		return err
	}

	readers, err := seqio.NewInputPair(cfg.inputFile1, cfg.inputFile2).
		UseFileOrGzipThreaded().
		ParseFastX().
		Open()
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

	if err := xleave(readers, writers); err != nil {
		_ = writers.Close()
		return err
	}

	return writers.Close()
}

func xleave(readers *seqio.RecordReaders, writers *seqio.RecordWriters) error {
	if readers.Reader2 == nil {
		if !writers.IsPaired() {
			return errors.New("One input and one output were provided. No interleaving or de-interleaving can occur.")
		}
		return seqio.WritePairs(pairing.NewDeinterleave(readers.Reader1), writers)
	}

	if f1, f2 := readers.Reader1.Format(), readers.Reader2.Format(); f1 != f2 {
		return fmt.Errorf("Paired read inputs must be both FASTQ or both FASTA. Found %s for first input and %s for second input.", f1, f2)
	}
	if writers.IsPaired() {
		return errors.New("Two inputs and two outputs were provided. No interleaving or de-interleaving can occur.")
	}
	return seqio.WritePairs(pairing.NewZip(readers.Reader1, readers.Reader2), writers)
}
