package ss_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/andrew-torda/sstruct/pkg/ss"
	"github.com/andrew-torda/sstruct/pkg/randss"
)

func TestMatchSimple(t *testing.T) {
	tests := []struct {
		in   string
		want []Pair
	}{
		{"", nil},
		{"....", nil},
		{"(())", []Pair{{0, 3}, {1, 2}}},
		{"((..))..()", []Pair{{0, 5}, {1, 4}, {8, 9}}},
		{"([)]", []Pair{{0, 2}, {1, 3}}},
		{"<{>}", []Pair{{0, 2}, {1, 3}}},
		{"(A)a", []Pair{{0, 2}, {1, 3}}},
		{"AB..ab", []Pair{{0, 4}, {1, 5}}},
		{"(.,:-_~)", []Pair{{0, 7}}},
	}
	for _, tt := range tests {
		tbl, err := Match(tt.in)
		require.NoError(t, err, tt.in)
		assert.Len(t, tbl, len(tt.in))
		assert.Equal(t, tt.want, tbl.Pairs(), tt.in)
		assert.NoError(t, tbl.Valid(), tt.in)
	}
}

// TestUnmatchedCloser checks the error and the position it reports.
func TestUnmatchedCloser(t *testing.T) {
	for _, tt := range []struct {
		in  string
		pos int
	}{
		{"().)", 3},
		{")", 0},
		{"((.))]", 5},
		{"([)]]", 4},
		{"Aaa", 2},
	} {
		tbl, err := Match(tt.in)
		assert.Nil(t, tbl)
		var ub *UnmatchedBracketError
		require.True(t, errors.As(err, &ub), "%s should fail", tt.in)
		assert.Equal(t, tt.pos, ub.Pos, tt.in)
		assert.Equal(t, tt.in[tt.pos], ub.Sym)
	}
}

// TestTrailingOpener is the asymmetry: unclosed openers are fine.
func TestTrailingOpener(t *testing.T) {
	tbl, err := Match("(..")
	require.NoError(t, err)
	assert.Equal(t, Table{Unpaired, Unpaired, Unpaired}, tbl)

	tbl, err = Match("((.)")
	require.NoError(t, err)
	assert.Equal(t, Unpaired, tbl[0])
	assert.Equal(t, 3, tbl[1])
}

func TestValid(t *testing.T) {
	assert.NoError(t, Table{1, 0, Unpaired}.Valid())
	assert.Error(t, Table{0}.Valid(), "self pair")
	assert.Error(t, Table{1, 2, 0}.Valid(), "asymmetric")
	assert.Error(t, Table{5, Unpaired}.Valid(), "out of range")
	assert.Error(t, Table{-7}.Valid(), "negative")
}

func TestEncode(t *testing.T) {
	for _, tt := range []struct{ in, want string }{
		{"....", "...."},
		{"((..))", "((..))"},
		{"[[..]]", "((..))"},
		{"([)]", "([)]"},
		{"(..[[..)..]]", "(..[[..)..]]"},
		{"([{)]}", "([{)]}"},
	} {
		tbl, err := Match(tt.in)
		require.NoError(t, err)
		got, err := Encode(tbl)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestEncodeInvalid(t *testing.T) {
	_, err := Encode(Table{0, Unpaired})
	assert.Error(t, err)
}

// TestEncodeDeep makes more mutually crossing pairs than there are
// channels.
func TestEncodeDeep(t *testing.T) {
	const n = 31
	tbl := NewTable(2 * n)
	for i := 0; i < n; i++ {
		tbl[i], tbl[i+n] = i+n, i
	}
	_, err := Encode(tbl)
	assert.Error(t, err)

	tbl = NewTable(2 * (n - 1))
	for i := 0; i < n-1; i++ {
		tbl[i], tbl[i+n-1] = i+n-1, i
	}
	s, err := Encode(tbl)
	require.NoError(t, err)
	back, err := Match(s)
	require.NoError(t, err)
	assert.Equal(t, tbl, back)
}

// TestRandomProperties checks symmetry, no self pairs and the
// encode / decode round trip on random structures.
func TestRandomProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		n := rnd.Intn(60)
		nchan := 1 + rnd.Intn(6)
		s := randss.Structure(n, nchan, i%2 == 0, rnd)
		tbl, err := Match(s)
		require.NoError(t, err, s)
		for k, j := range tbl {
			assert.NotEqual(t, k, j, s)
			if j != Unpaired {
				assert.Equal(t, k, tbl[j], s)
			}
		}
		enc, err := Encode(tbl)
		require.NoError(t, err, s)
		back, err := Match(enc)
		require.NoError(t, err, enc)
		assert.Equal(t, tbl, back, fmt.Sprintf("%s -> %s", s, enc))
	}
}

func TestCopy(t *testing.T) {
	a := Table{1, 0}
	b := a.Copy()
	b[0] = Unpaired
	assert.Equal(t, 1, a[0])
	assert.Equal(t, 1, a.NPair())
}

func ExampleMatch() {
	tbl, err := Match("((.[[.)).]]")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(tbl.Pairs())
	// Output:
	// [{0 7} {1 6} {3 10} {4 9}]
}

func BenchmarkMatch(b *testing.B) {
	rnd := rand.New(rand.NewSource(2))
	s := randss.Structure(10000, 4, false, rnd)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Match(s); err != nil {
			b.Fatal(err)
		}
	}
}
