package ssfile

import (
	"fmt"
	"io"

	"github.com/andrew-torda/sstruct/pkg/ss"
	"github.com/andrew-torda/sstruct/pkg/ssmodel"
)

// errWriter keeps the first write error, so we only check at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) pf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// partner1 is the partner of residue i counting from 1, or 0.
func partner1(m *ssmodel.Model, i int) int {
	if j := m.Partner(i); j != ss.Unpaired {
		return j + 1
	}
	return 0
}

// WriteDotBracket writes >name, the sequence and the structure.
func WriteDotBracket(w io.Writer, models ...*ssmodel.Model) error {
	ew := &errWriter{w: w}
	for _, m := range models {
		db, err := m.DotBracket()
		if err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
		ew.pf(">%s\n%s\n%s\n", m.Name, m.Sequence(), db)
	}
	return ew.err
}

// WriteCT writes connectivity tables. The last column is the residue
// number from the original file.
func WriteCT(w io.Writer, models ...*ssmodel.Model) error {
	ew := &errWriter{w: w}
	for _, m := range models {
		n := m.Len()
		ew.pf("%5d %s\n", n, m.Name)
		for i, r := range m.Residues {
			after := i + 2
			if after > n {
				after = 0
			}
			ew.pf("%5d %c %5d %5d %5d %5d\n", i+1, r.Code, i, after, partner1(m, i), r.Number)
		}
	}
	return ew.err
}

// WriteBPSEQ writes base pair lists. Several models just follow each
// other, which BPSEQ readers do not expect, so write one per file.
func WriteBPSEQ(w io.Writer, models ...*ssmodel.Model) error {
	ew := &errWriter{w: w}
	for _, m := range models {
		ew.pf("%s %s\n", bpFilename, m.Name)
		if m.ID != "" {
			ew.pf("%s %s\n", bpAccession, m.ID)
		}
		for i, r := range m.Residues {
			ew.pf("%d %c %d\n", i+1, r.Code, partner1(m, i))
		}
	}
	return ew.err
}

// Write writes models in one of the formats we can write.
func Write(w io.Writer, f Format, models ...*ssmodel.Model) error {
	switch f {
	case DotBracket:
		return WriteDotBracket(w, models...)
	case CT:
		return WriteCT(w, models...)
	case BPSEQ:
		return WriteBPSEQ(w, models...)
	}
	return fmt.Errorf("cannot write %v files", f)
}
