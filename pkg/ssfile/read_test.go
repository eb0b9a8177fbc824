package ssfile_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/sstruct/pkg/ss"
	. "github.com/andrew-torda/sstruct/pkg/ssfile"
	"github.com/andrew-torda/sstruct/pkg/ssmodel"
)

// load reads a string with a hint and insists on success.
func load(t *testing.T, s string, hint Format) []*ssmodel.Model {
	t.Helper()
	models, err := LoadBytes(context.Background(), []byte(s), "test", hint, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, models)
	return models
}

func dotBracket(t *testing.T, m *ssmodel.Model) string {
	t.Helper()
	db, err := m.DotBracket()
	require.NoError(t, err)
	return db
}

// TestCTGap has residue numbers jumping from 3 to 7.
func TestCTGap(t *testing.T) {
	models := load(t, ctGap, CT)
	require.Len(t, models, 1)
	m := models[0]
	assert.Equal(t, 9, m.Len(), "max - min + 1")
	assert.Equal(t, "GGA???ACC", m.Sequence())
	for i, r := range m.Residues {
		assert.Equal(t, i >= 3 && i <= 5, r.Placeholder, "residue %d", i)
		assert.Equal(t, i+1, r.Number)
	}
	assert.Equal(t, "((.....))", dotBracket(t, m))
	assert.Equal(t, "ENERGY = -1.5  gappy", m.Name)
	require.Len(t, m.Warnings, 1, "one warning per gap")
	assert.Contains(t, m.Warnings[0], "line 5")
	assert.Contains(t, m.Warnings[0], "4 to 6")
}

func TestCTTwoRecords(t *testing.T) {
	models := load(t, ctTwo, CT)
	require.Len(t, models, 2)
	assert.Equal(t, "hairpin one", models[0].Name)
	assert.Equal(t, "(...)", dotBracket(t, models[0]))
	assert.Equal(t, 1, models[0].NumberingStart)

	m := models[1]
	assert.Equal(t, "dG = -0.3  [second]", m.Name)
	assert.Equal(t, 10, m.NumberingStart)
	assert.Equal(t, "GAAC", m.Sequence())
	assert.Equal(t, "(..)", dotBracket(t, m))
	assert.Equal(t, 13, m.Residues[3].Number)
	assert.Empty(t, m.Warnings)
}

func TestCTOddLines(t *testing.T) {
	const in = `3 odd
1 G 0 2 3 G1
2 A 1 3 0 loop two
2 A 1 3 0 2
3 C 2 0 1
junk after residues
3 C 2 0 7 3
`
	m := load(t, in, CT)[0]
	assert.Equal(t, "GAC", m.Sequence())
	assert.Equal(t, "G1", m.Residues[0].Label)
	assert.Equal(t, "loop two", m.Residues[1].Label)
	assert.Equal(t, "(.)", dotBracket(t, m))
	assert.Len(t, m.Warnings, 3, "repeated 2, junk, repeated 3")
}

func TestCTPartnerOutOfRange(t *testing.T) {
	const in = `1 G 0 2 9 1
2 C 1 0 1 2
`
	m := load(t, in, CT)[0]
	assert.Equal(t, "..", dotBracket(t, m))
	require.Len(t, m.Warnings, 2)
	assert.Contains(t, m.Warnings[0], "out of range")
	assert.Contains(t, m.Warnings[1], "does not agree")
}

// Energy lines without a count belong to the record they are in.
func TestCTEnergyLines(t *testing.T) {
	const residues = `1 G 0 2 4 1
2 A 1 3 0 2
3 A 2 4 0 3
4 C 3 0 1 4
`
	lines := strings.SplitAfter(residues, "\n")
	middle := strings.Join(lines[:2], "") + "dG = -1.5 hp\n" + strings.Join(lines[2:], "")
	for _, tt := range []struct {
		name, in, title string
	}{
		{"middle", middle, "dG = -1.5 hp"},
		{"end", residues + "ENERGY = -1.5 hp\n", "ENERGY = -1.5 hp"},
		{"after header", "4 hairpin\n" + residues + "ENERGY = -2.0\n", "hairpin ENERGY = -2.0"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			models := load(t, tt.in, CT)
			require.Len(t, models, 1)
			m := models[0]
			assert.Equal(t, tt.title, m.Name)
			assert.Equal(t, "GAAC", m.Sequence())
			assert.Equal(t, "(..)", dotBracket(t, m))
			assert.Empty(t, m.Warnings)
		})
	}
}

func TestCTLongHeader(t *testing.T) {
	const in = `1542 Escherichia coli 16S rRNA
1 G 0 2 2 1
2 C 1 0 1 2
`
	models := load(t, in, CT)
	require.Len(t, models, 1)
	assert.Equal(t, "Escherichia coli 16S rRNA", models[0].Name)
	assert.Equal(t, "()", dotBracket(t, models[0]))
	require.Len(t, models[0].Warnings, 1)
	assert.Contains(t, models[0].Warnings[0], "header says 1542 residues, found 2")
}

// A wild residue number is not filled with placeholders.
func TestHugeHole(t *testing.T) {
	const ct = `1 G 0 2 0 1
2000000000 C 0 0 0 2000000000
2 C 1 0 0 2
`
	m := load(t, ct, CT)[0]
	assert.Equal(t, "GC", m.Sequence())
	require.Len(t, m.Warnings, 1)
	assert.Contains(t, m.Warnings[0], "line 2")
	assert.Contains(t, m.Warnings[0], "hole")

	m = load(t, "1 G 0\n2000000000 C 0\n", BPSEQ)[0]
	assert.Equal(t, 1, m.Len())
	assert.Len(t, m.Warnings, 1)
}

// A BPSEQ file with every partner 0 is a single strand, not an empty file.
func TestBPSEQUnpaired(t *testing.T) {
	const in = "1 G 0\n2 A 0\n3 C 0\n"
	m := load(t, in, BPSEQ)[0]
	assert.Equal(t, "...", dotBracket(t, m))
	assert.Empty(t, m.Pairs())

	models := load(t, in, Unknown)
	require.Len(t, models, 1)
	assert.Equal(t, "GAC", models[0].Sequence())
}

func TestBPSEQ(t *testing.T) {
	m := load(t, bpseqFile, BPSEQ)[0]
	assert.Equal(t, "d.16.b.E.coli.bpseq Escherichia coli", m.Name)
	assert.Equal(t, "J01695", m.ID)
	assert.Equal(t, "GGAAAACC", m.Sequence())
	assert.Equal(t, []ssmodel.BasePair{{I: 0, J: 7}, {I: 1, J: 6}}, m.Pairs())
	assert.Empty(t, m.Warnings)
}

func TestBPSEQDisagree(t *testing.T) {
	const in = `# a comment
# another
1 G 4
2 G 0
3 C 0
4 C 2
`
	m := load(t, in, BPSEQ)[0]
	assert.Equal(t, "a comment another", m.Name)
	assert.Equal(t, []ssmodel.BasePair{{I: 0, J: 3}}, m.Pairs())
	require.Len(t, m.Warnings, 1)
	assert.Contains(t, m.Warnings[0], "line 6")
}

func TestBPSEQMultiPartnerAndGap(t *testing.T) {
	const in = `1 G 5,6
2 A 0
5 C 1
6 C 1
`
	m := load(t, in, BPSEQ)[0]
	assert.Equal(t, "GA??CC", m.Sequence())
	assert.Equal(t, []ssmodel.BasePair{{I: 0, J: 4}}, m.Pairs(), "second partner of 1 is refused")
	assert.Len(t, m.Warnings, 3, "gap, refused pair, 6 disagrees")
}

func TestBPSEQNothing(t *testing.T) {
	_, err := LoadBytes(context.Background(), []byte("Filename: x\n# nothing here\n"), "x", BPSEQ, Options{})
	assert.True(t, IsKind(err, FileFormatOrSyntax))
}

func TestDotBracket(t *testing.T) {
	models := load(t, dbFile, DotBracket)
	require.Len(t, models, 2)
	assert.Equal(t, "hairpin (-1.20)", models[0].Name)
	assert.Equal(t, "GGGAAACCC", models[0].Sequence())
	assert.Equal(t, "(((...)))", dotBracket(t, models[0]))

	m := models[1]
	assert.Equal(t, "knot", m.Name)
	assert.Equal(t, []ssmodel.BasePair{{I: 0, J: 4}, {I: 1, J: 5}}, m.Pairs(), "crossing pairs kept")
	assert.Equal(t, 8, m.Residues[7].Number)
}

func TestDotBracketNoTitle(t *testing.T) {
	models, err := LoadBytes(context.Background(), []byte("GGAAACC\n((...))\n"), "dir/hp.dbn", DotBracket, Options{})
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "hp.dbn", models[0].Name)
	assert.Equal(t, "dir/hp.dbn", models[0].Source)
}

func TestDotBracketLengths(t *testing.T) {
	const in = `>short
GGAAACC
((...)).
>ok
GC
()
`
	models := load(t, in, DotBracket)
	require.Len(t, models, 1)
	assert.Equal(t, "ok", models[0].Name)
	require.Len(t, models[0].Warnings, 1)
	assert.Contains(t, models[0].Warnings[0], "record dropped")
}

// TestDotBracketUnmatched checks we can get at the bracket position
// through the load error.
func TestDotBracketUnmatched(t *testing.T) {
	for _, hint := range []Format{DotBracket, Unknown} {
		_, err := LoadBytes(context.Background(), []byte(">x\nGGAA\n().)\n"), "x", hint, Options{})
		require.Error(t, err)
		assert.True(t, IsKind(err, FileFormatOrSyntax), hint.String())
		var ub *ss.UnmatchedBracketError
		require.True(t, errors.As(err, &ub), hint.String())
		assert.Equal(t, 3, ub.Pos)
		var le *LoadError
		require.True(t, errors.As(err, &le))
		assert.Equal(t, "x", le.Source)
	}
}

func TestStockholm(t *testing.T) {
	models := load(t, stoFile, Stockholm)
	require.Len(t, models, 2)

	a := models[0]
	assert.Equal(t, "alpha", a.Name, "sorted ignoring case")
	assert.Equal(t, "alpha", a.ID)
	assert.Equal(t, "GCAAACC", a.Sequence())
	assert.Equal(t, "(.....)", dotBracket(t, a), "partner column is a gap")

	b := models[1]
	assert.Equal(t, "seqB/3-10", b.Name)
	assert.Equal(t, "X12345", b.ID)
	assert.Equal(t, 3, b.NumberingStart)
	assert.Equal(t, 3, b.Residues[0].Number)
	assert.Equal(t, "GGAAACC", b.Sequence())
	assert.Equal(t, "((...))", dotBracket(t, b))
}

func TestStockholmSortStable(t *testing.T) {
	const in = `# STOCKHOLM 1.0
b  AC
B  GU
a  AU
#=GC SS_cons ()
//
`
	models := load(t, in, Stockholm)
	var names []string
	for _, m := range models {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"a", "b", "B"}, names)
}

func TestStockholmBadLength(t *testing.T) {
	const in = `# STOCKHOLM 1.0
x  ACGU
y  ACG
#=GC SS_cons (..)
//
`
	models := load(t, in, Stockholm)
	require.Len(t, models, 1)
	assert.Equal(t, "x", models[0].Name)
	require.Len(t, models[0].Warnings, 1)
	assert.Contains(t, models[0].Warnings[0], "y:")
}

func TestStockholmNoConsensus(t *testing.T) {
	const in = "# STOCKHOLM 1.0\nx  ACGU\n//\n"
	_, err := LoadBytes(context.Background(), []byte(in), "x", Stockholm, Options{})
	assert.True(t, IsKind(err, FileFormatOrSyntax))
}

// TestProject is the gap rule: a pair whose partner column is a gap in
// this sequence is dropped.
func TestProject(t *testing.T) {
	cons, err := ss.Match("(.)")
	require.NoError(t, err)
	seq, tbl, err := Project("AC-", cons)
	require.NoError(t, err)
	assert.Equal(t, "AC", seq)
	assert.Equal(t, ss.Table{ss.Unpaired, ss.Unpaired}, tbl)

	seq, tbl, err = Project("A:U", cons)
	require.NoError(t, err)
	assert.Equal(t, "AU", seq)
	assert.Equal(t, ss.Table{1, 0}, tbl)

	_, _, err = Project("ACGU", cons)
	assert.Error(t, err)
}

func TestReadAlignments(t *testing.T) {
	alis, err := ReadAlignments(context.Background(), strings.NewReader(stoFile))
	require.NoError(t, err)
	require.Len(t, alis, 1)
	a := alis[0]
	assert.Equal(t, []string{"seqB/3-10", "alpha"}, a.IDs)
	assert.Equal(t, "((....))", a.Consensus)
	assert.Equal(t, "G-CAAACC", a.Seqs["alpha"])
	assert.Equal(t, map[string]string{"seqB/3-10": "X12345"}, a.Accession)

	sup, err := a.PairSupport()
	require.NoError(t, err)
	require.Len(t, sup.Mat, 1)
	require.Len(t, sup.Mat[0], 8)
	want := []float32{1, 0.5, 0, 0, 0, 0, 0.5, 1}
	for c, w := range want {
		assert.InDelta(t, w, sup.Mat[0][c], 1e-6, "column %d", c)
	}
}

func TestTCoffee(t *testing.T) {
	models := load(t, tcFile, TCoffee)
	require.Len(t, models, 2)
	assert.Equal(t, "hp", models[0].Name)
	assert.Equal(t, "(((...)))", dotBracket(t, models[0]))
	assert.Empty(t, models[0].Warnings)

	m := models[1]
	assert.Equal(t, "other", m.ID)
	assert.Equal(t, "GGAAC", m.Sequence())
	assert.Equal(t, "(...)", dotBracket(t, m), "block 1 2 is not used")
	assert.Len(t, m.Warnings, 2, "bad numbers, out of range")
}

func TestTCoffeeNotOurs(t *testing.T) {
	for _, in := range []string{"", "! just a comment\n", "2 3\nx 1 A\n", "-1\n"} {
		_, err := LoadBytes(context.Background(), []byte(in), "x", TCoffee, Options{})
		assert.True(t, IsKind(err, FileFormatOrSyntax), "%q", in)
	}
}
