package ssfile

import (
	"github.com/andrew-torda/sstruct/pkg/ssmodel"
)

// maxHole is the biggest jump in numbering we fill. A bigger one is
// more likely a broken number than missing residues.
const maxHole = 10000

// numbered collects residues from formats where every line carries its
// own residue number (CT, BPSEQ). The first number seen is the origin.
// Numbers must go up. If they jump, the hole is filled with
// placeholders, with one warning per hole.
// Partners are stored in the file's numbering and sorted out at the end,
// when we know how many residues there are.
type numbered struct {
	s        *session
	b        *ssmodel.Builder
	first    int
	last     int
	started  bool
	partners []declPair
}

// declPair is "residue from says its partner is to", in file numbering.
type declPair struct {
	from, to int
	line     int
}

func newNumbered(s *session, name string) *numbered {
	return &numbered{s: s, b: ssmodel.NewBuilder(name)}
}

func (nb *numbered) empty() bool { return nb.b.Len() == 0 }

// add takes one residue. number is the display number. It returns
// false if the line was skipped.
func (nb *numbered) add(line, num int, code byte, number int, label string) bool {
	if !nb.started {
		nb.first, nb.last, nb.started = num, num-1, true
		nb.b.SetNumberingStart(num)
	}
	if num <= nb.last {
		nb.s.warn(line, "residue %d after residue %d, skipped", num, nb.last)
		return false
	}
	if num-nb.last-1 > maxHole {
		nb.s.warn(line, "residue %d after residue %d leaves a hole of more than %d, skipped", num, nb.last, maxHole)
		return false
	}
	if num > nb.last+1 {
		nb.s.warn(line, "residues %d to %d missing, filled with placeholders", nb.last+1, num-1)
		for k := nb.last + 1; k < num; k++ {
			nb.b.AddPlaceholder(k)
		}
	}
	nb.b.AddResidue(code, number, label)
	nb.last = num
	return true
}

// partner notes that residue from names to as its partner.
func (nb *numbered) partner(line, from, to int) {
	nb.partners = append(nb.partners, declPair{from: from, to: to, line: line})
}

// resolve turns the declared partners into pairs. A pair goes in from
// the residue with the lower number, so it is only inserted once. The
// declarations from the higher residue are only checked.
func (nb *numbered) resolve() {
	n := nb.b.Len()
	var later []declPair
	for _, d := range nb.partners {
		i, j := d.from-nb.first, d.to-nb.first
		switch {
		case d.to < nb.first || j >= n:
			nb.s.warn(d.line, "partner %d of residue %d out of range, ignored", d.to, d.from)
		case i == j:
			nb.s.warn(d.line, "residue %d paired with itself, ignored", d.from)
		case i > j:
			later = append(later, d)
		default:
			if err := nb.b.Pair(i, j); err != nil {
				nb.s.warn(d.line, "%v, ignored", err)
			}
		}
	}
	for _, d := range later {
		if i, j := d.from-nb.first, d.to-nb.first; nb.b.Partner(j) != i {
			nb.s.warn(d.line, "residue %d names %d as partner, but %d does not agree", d.from, d.to, d.to)
		}
	}
}

// build resolves pairs and finishes the model.
func (nb *numbered) build() (*ssmodel.Model, error) {
	nb.resolve()
	return nb.s.build(nb.b)
}

// residueCode accepts a one character residue code. Digits are not
// residue codes, which stops lines of numbers being read as residues.
func residueCode(tok string) (byte, bool) {
	if len(tok) != 1 || (tok[0] >= '0' && tok[0] <= '9') {
		return 0, false
	}
	return tok[0], true
}
