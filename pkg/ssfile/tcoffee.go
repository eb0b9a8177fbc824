// 19 Oct 2026
// T-Coffee library files. We only want the structure of each sequence,
// which is kept as an alignment of the sequence with itself.
//    ! TC_LIB_FORMAT_01
//    2
//    seq1 9 GGGAAACCC
//    seq2 7 GGAAACC
//    #1 1
//     1 9 100
//     2 8 100
//    #1 2
//     ...
//    ! SEQ_1_TO_N
// The first line that is not a comment is the number of sequences. Then
// come "id length sequence" lines. A "#i j" line starts a block of
// residue pairs "a b weight" between sequences i and j, counting from 1.
// Only blocks with i == j are kept.

package ssfile

import (
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/sstruct/pkg/ssmodel"
)

// tcSeq is one sequence and the pairs from its own block.
type tcSeq struct {
	id    string
	seq   string
	pairs []tcPair
	warns []string // about this sequence's own block
}

type tcPair struct{ a, b, line int } // a and b from zero

// tcBlock reads "#i j". It returns zero based indices.
func tcBlock(line string) (i, j int, ok bool) {
	f := strings.Fields(strings.TrimPrefix(line, "#"))
	if len(f) != 2 {
		return 0, 0, false
	}
	i, err1 := strconv.Atoi(f[0])
	j, err2 := strconv.Atoi(f[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return i - 1, j - 1, true
}

// tcCount says if the line is a sequence count.
func tcCount(f []string) (int, bool) {
	if len(f) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(f[0])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func readTCoffee(s *session, r io.Reader) ([]*ssmodel.Model, error) {
	const noBlock = -1
	var seqs []*tcSeq
	nseq := -1
	cur := noBlock // sequence whose own block we are in
	inBlocks := false
	sc := newLineScanner(s.ctx, r)

	for sc.scan() {
		line := sc.text()
		if line == "" || line[0] == '!' {
			continue
		}
		f := strings.Fields(line)
		if nseq < 0 {
			n, ok := tcCount(f)
			if !ok {
				return nil, nil // not one of ours
			}
			nseq = n
			continue
		}
		if line[0] == '#' {
			inBlocks, cur = true, noBlock
			i, j, ok := tcBlock(line)
			switch {
			case !ok:
				s.warn(sc.n, "cannot read block header %q, block skipped", firstPart(line))
			case i < 0 || j < 0 || i >= len(seqs) || j >= len(seqs):
				s.warn(sc.n, "block %d %d refers to missing sequence, skipped", i+1, j+1)
			case i == j:
				cur = i
			}
			continue
		}
		if !inBlocks {
			if len(f) != 3 {
				s.warn(sc.n, "wanted id, length and sequence, skipped")
				continue
			}
			n, err := strconv.Atoi(f[1])
			if err != nil {
				s.warn(sc.n, "length %q is not a number, skipped", f[1])
				continue
			}
			if n != len(f[2]) {
				s.warn(sc.n, "%s says length %d, sequence has %d", f[0], n, len(f[2]))
			}
			seqs = append(seqs, &tcSeq{id: f[0], seq: f[2]})
			continue
		}
		if cur == noBlock {
			continue
		}
		ts := seqs[cur]
		if len(f) < 2 {
			ts.warns = append(ts.warns, warnMsg(sc.n, "wanted residue pair, skipped"))
			continue
		}
		a, err1 := strconv.Atoi(f[0])
		b, err2 := strconv.Atoi(f[1])
		if err1 != nil || err2 != nil {
			ts.warns = append(ts.warns, warnMsg(sc.n, "cannot read residue pair %q, skipped", firstPart(line)))
			continue
		}
		if a < 1 || b < 1 || a > len(ts.seq) || b > len(ts.seq) {
			ts.warns = append(ts.warns, warnMsg(sc.n, "pair %d %d outside %s, skipped", a, b, ts.id))
			continue
		}
		ts.pairs = append(ts.pairs, tcPair{a - 1, b - 1, sc.n})
	}
	if err := sc.ioErr(s.label); err != nil {
		return nil, err
	}
	if len(seqs) == 0 {
		return nil, nil
	}
	if len(seqs) != nseq {
		s.warn(0, "header says %d sequences, found %d", nseq, len(seqs))
	}

	var models []*ssmodel.Model
	for _, ts := range seqs {
		b := ssmodel.NewBuilder(ts.id)
		b.SetID(ts.id)
		for i := 0; i < len(ts.seq); i++ {
			b.AddResidue(ts.seq[i], i+1, "")
		}
		for _, p := range ts.pairs {
			if err := b.Pair(p.a, p.b); err != nil {
				ts.warns = append(ts.warns, warnMsg(p.line, "%v, ignored", err))
			}
		}
		for _, w := range ts.warns {
			b.Warn(w)
		}
		m, err := s.build(b)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return s.done(models), nil
}
