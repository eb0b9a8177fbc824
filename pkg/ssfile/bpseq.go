// 19 Oct 2026
// Base pair list (BPSEQ) reader. One residue per line
//    index code partner
// where partner is 0 for unpaired and may be a comma separated list.
// Header lines from the comparative RNA web site give us a title and an
// accession.

package ssfile

import (
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/sstruct/pkg/ssmodel"
)

const (
	bpFilename  = "Filename:"
	bpOrganism  = "Organism:"
	bpAccession = "Accession Number:"
)

// bpPartners parses "12" or "12,40". ok is false if any piece is not an
// integer.
func bpPartners(s string) (ret []int, ok bool) {
	for _, p := range strings.Split(s, ",") {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		ret = append(ret, n)
	}
	return ret, true
}

func readBPSEQ(s *session, r io.Reader) ([]*ssmodel.Model, error) {
	var filename, organism, accession string
	var cmmts []string
	sc := newLineScanner(s.ctx, r)
	nb := newNumbered(s, s.defaultName())

	for sc.scan() {
		line := sc.text()
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, bpFilename):
			filename = strings.TrimSpace(line[len(bpFilename):])
			continue
		case strings.HasPrefix(line, bpOrganism):
			organism = strings.TrimSpace(line[len(bpOrganism):])
			continue
		case strings.Contains(line, bpAccession):
			i := strings.Index(line, bpAccession)
			accession = strings.TrimSpace(line[i+len(bpAccession):])
			continue
		case line[0] == '#':
			if c := strings.TrimSpace(line[1:]); c != "" {
				cmmts = append(cmmts, c)
			}
			continue
		}
		f := strings.Fields(line)
		if len(f) != 3 {
			if !nb.empty() {
				s.warn(sc.n, "wanted 3 fields, got %d, skipped", len(f))
			}
			continue
		}
		num, err := strconv.Atoi(f[0])
		partners, ok := bpPartners(f[2])
		code, cok := residueCode(f[1])
		if err != nil || !ok || !cok {
			if !nb.empty() {
				s.warn(sc.n, "cannot read residue line %q, skipped", firstPart(line))
			}
			continue
		}
		if !nb.add(sc.n, num, code, num, "") {
			continue
		}
		for _, p := range partners {
			if p != 0 {
				nb.partner(sc.n, num, p)
			}
		}
	}
	if err := sc.ioErr(s.label); err != nil {
		return nil, err
	}
	if nb.empty() {
		s.done(nil)
		return nil, nil
	}

	var title []string
	for _, t := range append([]string{filename, organism}, cmmts...) {
		if t != "" {
			title = append(title, t)
		}
	}
	if len(title) > 0 {
		nb.b.SetName(strings.Join(title, " "))
	}
	nb.b.SetID(accession)
	m, err := nb.build()
	if err != nil {
		return nil, err
	}
	return s.done([]*ssmodel.Model{m}), nil
}
