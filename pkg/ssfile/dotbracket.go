// 19 Oct 2026
// Dot-bracket reader. A record is
//    >title          (optional)
//    GGGAAACCC
//    (((...))) (-1.20)
// The energy at the end of the structure line is what RNAfold writes.
// We take it off and add it to the title.

package ssfile

import (
	"io"
	"strings"

	"github.com/andrew-torda/sstruct/pkg/ss"
	"github.com/andrew-torda/sstruct/pkg/ssmodel"
)

// isSeqLine says if a line could be a sequence: letters only.
func isSeqLine(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return len(s) > 0
}

// splitEnergy separates "(((...))) (-1.20)" into structure and
// "-1.20".
func splitEnergy(line string) (str, energy string) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return "", ""
	}
	rest := strings.Join(f[1:], " ")
	rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(rest, "("), ")"))
	return f[0], rest
}

func readDotBracket(s *session, r io.Reader) ([]*ssmodel.Model, error) {
	var models []*ssmodel.Model
	var title, seq string
	var haveTitle bool
	sc := newLineScanner(s.ctx, r)

	reset := func() { title, seq, haveTitle = "", "", false }

	for sc.scan() {
		line := sc.text()
		switch {
		case line == "" || line[0] == '#':
			continue
		case line[0] == '>':
			if seq != "" {
				s.warn(sc.n, "sequence before this line has no structure, dropped")
			}
			reset()
			title, haveTitle = strings.TrimSpace(line[1:]), true
			continue
		case seq == "":
			if !isSeqLine(line) {
				if haveTitle || len(models) > 0 {
					s.warn(sc.n, "not a sequence, skipped")
				}
				continue
			}
			seq = line
			continue
		}

		str, energy := splitEnergy(line)
		if len(str) != len(seq) {
			s.warn(sc.n, "structure length %d, sequence length %d, record dropped", len(str), len(seq))
			reset()
			continue
		}
		tbl, err := ss.Match(str)
		if err != nil {
			return nil, s.syntaxErr(sc, "structure", err)
		}
		name := title
		if name == "" {
			name = s.defaultName()
		}
		if energy != "" {
			name += " (" + energy + ")"
		}
		b := ssmodel.NewBuilder(name)
		for i := 0; i < len(seq); i++ {
			b.AddResidue(seq[i], i+1, "")
		}
		if err := b.SetTable(tbl); err != nil {
			return nil, s.syntaxErr(sc, "structure", err)
		}
		m, err := s.build(b)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
		reset()
	}
	if err := sc.ioErr(s.label); err != nil {
		return nil, err
	}
	if seq != "" && len(models) > 0 {
		s.warn(0, "last sequence has no structure, dropped")
	}
	return s.done(models), nil
}
