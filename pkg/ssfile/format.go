// 19 Oct 2026

package ssfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format says which kind of file we are reading.
type Format byte

const (
	Unknown    Format = iota // work it out by trying each reader
	CT                       // connectivity table
	BPSEQ                    // base pair list
	TCoffee                  // T-Coffee style library, pairs of a sequence with itself
	Stockholm                // alignment with a consensus structure
	DotBracket               // sequence line and structure line
	nFormat
)

var formatNames = [nFormat]string{
	Unknown:    "unknown",
	CT:         "ct",
	BPSEQ:      "bpseq",
	TCoffee:    "tcoffee",
	Stockholm:  "stockholm",
	DotBracket: "dotbracket",
}

// cascade is the order formats are tried in when we do not know the
// format. Dot-bracket is the most forgiving, so it comes last. Changing
// the order changes which format wins on ambiguous files.
var cascade = []Format{CT, BPSEQ, TCoffee, Stockholm, DotBracket}

// readers maps each format to its reader.
var readers = [nFormat]readFunc{
	CT:         readCT,
	BPSEQ:      readBPSEQ,
	TCoffee:    readTCoffee,
	Stockholm:  readStockholm,
	DotBracket: readDotBracket,
}

func (f Format) String() string {
	if f < nFormat {
		return formatNames[f]
	}
	return fmt.Sprintf("format(%d)", byte(f))
}

// ParseFormat turns a name like "ct" or "Stockholm" into a Format.
// "" and "auto" mean Unknown.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "auto":
		return Unknown, nil
	case "db", "dbn", "vienna":
		return DotBracket, nil
	case "sto", "stk":
		return Stockholm, nil
	case "tc", "tc_lib", "lib":
		return TCoffee, nil
	}
	for f, name := range formatNames {
		if s == name {
			return Format(f), nil
		}
	}
	return Unknown, fmt.Errorf("unknown format %q", s)
}

// FormatFromName guesses from a file name. It looks past a trailing .gz
// so a.ct.gz is a CT file. It returns Unknown if the name says nothing.
func FormatFromName(fname string) Format {
	s := strings.ToLower(filepath.Base(fname))
	s = strings.TrimSuffix(s, ".gz")
	switch filepath.Ext(s) {
	case ".ct":
		return CT
	case ".bpseq":
		return BPSEQ
	case ".sto", ".stk", ".stockholm":
		return Stockholm
	case ".dbn", ".db", ".dot", ".fold", ".vienna":
		return DotBracket
	case ".tc_lib", ".lib":
		return TCoffee
	}
	return Unknown
}
