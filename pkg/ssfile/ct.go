// 19 Oct 2026
// Connectivity table (CT) reader.
// A record starts with a header line: the number of residues and a
// title, which often has the folding energy in it
//    73 ENERGY = -21.6  tRNA-Phe
// followed by one line per residue
//    index code before after partner [number or label]
// partner 0 means unpaired. Only a line starting with a count starts a
// new record. Some programs write the energy on a line of its own,
// without a count. That goes into the title of the record it is in.

package ssfile

import (
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/sstruct/pkg/ssmodel"
)

const ctMinFields = 5

// ctHeader says if a line, which is not a residue line, starts a record.
// It has to start with a count. A long line whose next token could be a
// residue code is a broken residue line, not a header.
func ctHeader(f []string) bool {
	if _, err := strconv.Atoi(f[0]); err != nil {
		return false
	}
	if len(f) < ctMinFields {
		return true
	}
	_, isCode := residueCode(f[1])
	return !isCode
}

// ctEnergy says if a line carries an energy.
func ctEnergy(line string) bool {
	return strings.Contains(line, "ENERGY =") || strings.Contains(line, "dG =")
}

// ctTitle removes the residue count from the front of a header.
func ctTitle(line string, f []string) string {
	if _, err := strconv.Atoi(f[0]); err == nil {
		return strings.TrimSpace(strings.TrimPrefix(line, f[0]))
	}
	return line
}

// ctResidue parses the integer columns of a residue line. ok is false if
// the line does not look like one.
func ctResidue(f []string) (num, partner int, ok bool) {
	if len(f) < ctMinFields {
		return 0, 0, false
	}
	var ints [ctMinFields]int
	for _, i := range []int{0, 2, 3, 4} {
		n, err := strconv.Atoi(f[i])
		if err != nil {
			return 0, 0, false
		}
		ints[i] = n
	}
	return ints[0], ints[4], true
}

// ctRecord is the record being read.
type ctRecord struct {
	nb       *numbered
	title    string
	declared int // residue count from the header, -1 if none
}

// addTitle appends an energy line to the title.
func (rec *ctRecord) addTitle(t string) {
	if rec.title == "" {
		rec.title = t
		return
	}
	rec.title += " " + t
}

func newCTRecord(s *session) *ctRecord {
	return &ctRecord{nb: newNumbered(s, s.defaultName()), declared: -1}
}

func readCT(s *session, r io.Reader) ([]*ssmodel.Model, error) {
	var models []*ssmodel.Model
	sc := newLineScanner(s.ctx, r)
	rec := newCTRecord(s)

	flush := func() error {
		if rec.nb.empty() {
			return nil
		}
		if rec.title != "" {
			rec.nb.b.SetName(rec.title)
		}
		if rec.declared >= 0 && rec.declared != rec.nb.b.Len() {
			s.warn(0, "header says %d residues, found %d", rec.declared, rec.nb.b.Len())
		}
		m, err := rec.nb.build()
		if err != nil {
			return err
		}
		models = append(models, m)
		rec = newCTRecord(s)
		return nil
	}

	for sc.scan() {
		line := sc.text()
		f := strings.Fields(line)
		if len(f) == 0 {
			continue
		}
		if num, partner, ok := ctResidue(f); ok {
			number, label := num, ""
			if len(f) > ctMinFields {
				if n, err := strconv.Atoi(f[5]); err == nil && len(f) == ctMinFields+1 {
					number = n
				} else {
					label = strings.Join(f[ctMinFields:], " ")
				}
			}
			if rec.nb.add(sc.n, num, f[1][0], number, label) && partner != 0 {
				rec.nb.partner(sc.n, num, partner)
			}
			continue
		}
		if ctHeader(f) {
			if !rec.nb.empty() { // a new record starts
				if err := flush(); err != nil {
					return nil, err
				}
			}
			rec.title = ctTitle(line, f)
			rec.declared, _ = strconv.Atoi(f[0])
			continue
		}
		if ctEnergy(line) {
			rec.addTitle(strings.TrimSpace(line))
			continue
		}
		if !rec.nb.empty() {
			s.warn(sc.n, "cannot read %q, skipped", firstPart(line))
		}
	}
	if err := sc.ioErr(s.label); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return s.done(models), nil
}
