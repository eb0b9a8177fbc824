// 19 Oct 2026
// Stockholm alignments with a consensus structure. We use
//    #=GC SS_cons  <structure chunk>
//    #=GS <id> AC <accession>
//    <id> <sequence chunk>
//    //
// Chunks for an identifier are glued together in the order they come.
// Everything else starting with # is ignored.

package ssfile

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/andrew-torda/matrix"
	"github.com/rs/zerolog"

	"github.com/andrew-torda/sstruct/pkg/common"
	"github.com/andrew-torda/sstruct/pkg/ss"
	"github.com/andrew-torda/sstruct/pkg/ssmodel"
)

const (
	stoGC     = "#=GC"
	stoGS     = "#=GS"
	stoSSCons = "SS_cons"
	stoEnd    = "//"
)

// Alignment is one multiple sequence alignment with its consensus
// structure. All sequences and the consensus should have the same number
// of columns.
type Alignment struct {
	IDs       []string          // in the order they were first seen
	Seqs      map[string]string // gapped sequences
	Consensus string            // consensus structure, one symbol per column
	Accession map[string]string // optional, by identifier
}

// Project drops the gap columns from one gapped sequence and carries the
// consensus pairs over to the residues that are left. If a column is
// paired in the consensus, but its partner column is a gap in this
// sequence, the residue is unpaired.
func Project(gapped string, cons ss.Table) (string, ss.Table, error) {
	if len(gapped) != len(cons) {
		return "", nil, fmt.Errorf("sequence has %d columns, consensus has %d", len(gapped), len(cons))
	}
	col2res := make([]int, len(gapped))
	seq := make([]byte, 0, len(gapped))
	for c := 0; c < len(gapped); c++ {
		if common.IsGap(gapped[c]) {
			col2res[c] = ss.Unpaired
			continue
		}
		col2res[c] = len(seq)
		seq = append(seq, gapped[c])
	}

	t := ss.NewTable(len(seq))
	for c, pc := range cons {
		i := col2res[c]
		if i == ss.Unpaired || pc == ss.Unpaired {
			continue
		}
		if j := col2res[pc]; j != ss.Unpaired {
			t[i] = j
		}
	}
	return string(seq), t, nil
}

// PairSupport returns a 1 x columns matrix. For each column paired in the
// consensus, it holds the fraction of sequences that have residues in
// both columns of the pair. Unpaired columns are zero.
func (a *Alignment) PairSupport() (*matrix.FMatrix2d, error) {
	cons, err := ss.Match(a.Consensus)
	if err != nil {
		return nil, err
	}
	m := matrix.NewFMatrix2d(1, len(cons))
	if len(a.IDs) == 0 {
		return m, nil
	}
	row := m.Mat[0]
	for _, id := range a.IDs {
		s := a.Seqs[id]
		if len(s) != len(cons) {
			continue
		}
		for c, pc := range cons {
			if pc != ss.Unpaired && !common.IsGap(s[c]) && !common.IsGap(s[pc]) {
				row[c]++
			}
		}
	}
	for c := range row {
		row[c] /= float32(len(a.IDs))
	}
	return m, nil
}

// sortedIDs returns the identifiers sorted without regard to case.
// Identifiers that differ only in case keep their file order.
func (a *Alignment) sortedIDs() []string {
	ids := slices.Clone(a.IDs)
	slices.SortStableFunc(ids, func(x, y string) int {
		return strings.Compare(strings.ToLower(x), strings.ToLower(y))
	})
	return ids
}

// seqRange gets the start from names like "RF00005/12-84". ok is false if
// the name does not end like that.
func seqRange(id string) (start int, ok bool) {
	slash := strings.LastIndexByte(id, '/')
	if slash < 0 {
		return 0, false
	}
	from, to, found := strings.Cut(id[slash+1:], "-")
	if !found {
		return 0, false
	}
	start, err1 := strconv.Atoi(from)
	_, err2 := strconv.Atoi(to)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return start, true
}

// aliBuilder collects one alignment while it is read.
type aliBuilder struct {
	ids    []string
	chunks map[string]*strings.Builder
	cons   strings.Builder
	acc    map[string]string
	hasSS  bool
}

func newAliBuilder() *aliBuilder {
	return &aliBuilder{chunks: make(map[string]*strings.Builder), acc: make(map[string]string)}
}

func (ab *aliBuilder) empty() bool { return len(ab.ids) == 0 && !ab.hasSS }

func (ab *aliBuilder) addChunk(id, chunk string) {
	sb, ok := ab.chunks[id]
	if !ok {
		sb = &strings.Builder{}
		ab.chunks[id] = sb
		ab.ids = append(ab.ids, id)
	}
	sb.WriteString(chunk)
}

func (ab *aliBuilder) alignment() *Alignment {
	a := &Alignment{
		IDs:       ab.ids,
		Seqs:      make(map[string]string, len(ab.ids)),
		Consensus: ab.cons.String(),
		Accession: ab.acc,
	}
	for id, sb := range ab.chunks {
		a.Seqs[id] = sb.String()
	}
	return a
}

// parseStockholm reads all the alignments in a file. Alignments without
// a consensus structure are left out.
func parseStockholm(s *session, r io.Reader) ([]*Alignment, error) {
	var alis []*Alignment
	sc := newLineScanner(s.ctx, r)
	ab := newAliBuilder()
	flush := func() {
		if ab.hasSS && len(ab.ids) > 0 {
			alis = append(alis, ab.alignment())
		}
		ab = newAliBuilder()
	}
	for sc.scan() {
		line := sc.text()
		if line == "" {
			continue
		}
		if line == stoEnd {
			flush()
			continue
		}
		f := strings.Fields(line)
		switch {
		case f[0] == stoGC && len(f) >= 3 && f[1] == stoSSCons:
			ab.cons.WriteString(f[2])
			ab.hasSS = true
		case f[0] == stoGS && len(f) >= 4 && f[2] == "AC":
			ab.acc[f[1]] = f[3]
		case line[0] == '#':
		case len(f) == 2:
			ab.addChunk(f[0], f[1])
		default:
			if !ab.empty() {
				s.warn(sc.n, "expected identifier and sequence, skipped")
			}
		}
	}
	if err := sc.ioErr(s.label); err != nil {
		return nil, err
	}
	flush()
	return alis, nil
}

// ReadAlignments reads the Stockholm alignments in r, without turning
// them into models.
func ReadAlignments(ctx context.Context, r io.Reader) ([]*Alignment, error) {
	return parseStockholm(newSession(ctx, "", zerolog.Nop()), r)
}

// models makes one model per sequence, sorted by identifier.
func (a *Alignment) models(s *session) ([]*ssmodel.Model, error) {
	cons, err := ss.Match(a.Consensus)
	if err != nil {
		return nil, &LoadError{Kind: FileFormatOrSyntax, Source: s.label, Detail: stoSSCons, Err: err}
	}
	var models []*ssmodel.Model
	for _, id := range a.sortedIDs() {
		seq, t, err := Project(a.Seqs[id], cons)
		if err != nil {
			s.warn(0, "%s: %v, skipped", id, err)
			continue
		}
		b := ssmodel.NewBuilder(id)
		b.SetID(id)
		if acc, ok := a.Accession[id]; ok {
			b.SetID(acc)
		}
		if len(seq) == 0 {
			s.warn(0, "%s: only gaps, skipped", id)
			continue
		}
		start := 1
		if n, ok := seqRange(id); ok {
			start = n
		}
		b.SetNumberingStart(start)
		for k := 0; k < len(seq); k++ {
			b.AddResidue(seq[k], start+k, "")
		}
		if err := b.SetTable(t); err != nil {
			return nil, &LoadError{Kind: FileFormatOrSyntax, Source: s.label, Detail: id, Err: err}
		}
		m, err := s.build(b)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

func readStockholm(s *session, r io.Reader) ([]*ssmodel.Model, error) {
	alis, err := parseStockholm(s, r)
	if err != nil {
		return nil, err
	}
	var models []*ssmodel.Model
	for _, a := range alis {
		m, err := a.models(s)
		if err != nil {
			return nil, err
		}
		models = append(models, m...)
	}
	return s.done(models), nil
}
