// Package pairing associates first-file and second-file sequence records
// by the molecular ID embedded in their headers, and provides strict and
// permissive consumption of paired streams.
package pairing

import (
	"errors"
	"fmt"
	"strings"
)

// MolecularIDSide extracts the molecular (template) ID and the read side
// from a header, recognizing the common sequencer header dialects:
// Illumina with a space-separated description, SRA accessions
// (SRR/DRR/ERR) with or without an encoded side, legacy slash-suffixed
// Illumina, underscore-joined SRA, and legacy six-colon pipeline output.
//
// An extracted side is accepted only if it is '0' through '3'; anything
// else falls back to defaultSide. ok is false when no dialect matches, in
// which case id and side are meaningless.
func MolecularIDSide(header string, defaultSide byte) (id string, side byte, ok bool) {
	var cand byte
	var hasCand bool

	switch {
	case strings.IndexByte(header, ' ') >= 0:
		sp := strings.IndexByte(header, ' ')
		idTok := header[:sp]
		rest := header[sp+1:]
		if !isAccession(idTok) || !strings.Contains(idTok, ".") {
			// Illumina format
			desc := rest
			if j := strings.IndexByte(desc, ' '); j >= 0 {
				desc = desc[:j]
			}
			if j := strings.IndexByte(desc, ':'); j >= 0 {
				desc = desc[:j]
			}
			id = idTok
			if len(desc) > 0 {
				cand, hasCand = desc[0], true
			}
		} else if dot := secondDot(idTok); dot >= 0 {
			// SRA format, read side included
			id = idTok[:dot]
			if dot+1 < len(idTok) {
				cand, hasCand = idTok[dot+1], true
			}
		} else {
			// SRA format, no read side
			id = idTok
			cand, hasCand = defaultSide, true
		}

	case strings.IndexByte(header, '/') >= 0:
		// Legacy Illumina
		slash := strings.IndexByte(header, '/')
		id = header[:slash]
		if slash+1 < len(header) {
			cand, hasCand = header[slash+1], true
		}

	case isAccession(header) && strings.Contains(header, "."):
		idTok := header
		if us := strings.IndexByte(header, '_'); us >= 0 {
			idTok = header[:us]
		}
		if dot := secondDot(idTok); dot >= 0 {
			// SRA with read side
			id = idTok[:dot]
			if dot+1 < len(idTok) {
				cand, hasCand = idTok[dot+1], true
			}
		} else {
			// SRA, no read side
			id = idTok
			cand, hasCand = defaultSide, true
		}

	default:
		// Legacy pipeline output: the side character precedes the seventh
		// colon and the ID ends at the underscore after the sixth.
		start := nthIndex(header, ':', 6)
		stop := nthIndex(header, ':', 7)
		if start < 0 || stop < 0 {
			return "", 0, false
		}
		us := strings.IndexByte(header[start:stop], '_')
		if us < 0 {
			return "", 0, false
		}
		id = header[:start+us]
		cand, hasCand = header[stop-1], true
	}

	if hasCand && cand >= '0' && cand <= '3' {
		return id, cand, true
	}
	return id, defaultSide, true
}

// CheckPairedHeaders reports whether two headers share a molecular ID.
// Side values are not compared; mates are expected to differ there.
func CheckPairedHeaders(header1, header2 string) error {
	id1, _, ok1 := MolecularIDSide(header1, '0')
	id2, _, ok2 := MolecularIDSide(header2, '0')
	if !ok1 || !ok2 {
		return errors.New("Could not parse the read IDs.")
	}
	if id1 != id2 {
		return fmt.Errorf("Paired read IDs out of sync:\n\t%s\n\t%s\n", header1, header2)
	}
	return nil
}

func isAccession(s string) bool {
	return strings.HasPrefix(s, "SRR") || strings.HasPrefix(s, "DRR") || strings.HasPrefix(s, "ERR")
}

// secondDot returns the index of the second '.' in s, or -1.
func secondDot(s string) int {
	first := strings.IndexByte(s, '.')
	if first < 0 {
		return -1
	}
	rest := strings.IndexByte(s[first+1:], '.')
	if rest < 0 {
		return -1
	}
	return first + 1 + rest
}

// nthIndex returns the index of the nth occurrence (1-based) of c in s,
// or -1.
func nthIndex(s string, c byte, n int) int {
	base := 0
	for ; n > 0; n-- {
		i := strings.IndexByte(s[base:], c)
		if i < 0 {
			return -1
		}
		base += i + 1
	}
	return base - 1
}
