// 19 Oct 2026

// Package ss reads and writes secondary structure strings.
// A structure string has one symbol per residue. Brackets (), [], {}, <>
// open and close pairs. So do letters: an upper case letter opens a pair
// and the same letter in lower case closes it. Each bracket type and each
// letter is its own channel, so pairs from different channels may cross
// (pseudoknots). Anything else, usually ".", means unpaired.
package ss

import (
	"errors"
	"fmt"
)

// Unpaired is the partner entry for a residue with no partner.
const Unpaired = -1

const (
	nBracket = 4
	nLetter  = 26
	nClass   = nBracket + nLetter // number of independent pairing channels
)

// Table is a partner table. Table[i] is the partner of residue i or
// Unpaired. If Table[i] == j then Table[j] == i.
type Table []int

// Pair is an unordered pair of residue indices. We always store I < J.
type Pair struct{ I, J int }

type symKind byte

const (
	noSym symKind = iota
	openSym
	closeSym
)

type symClass struct {
	kind  symKind
	class uint8
}

// openers[c] and closers[c] are the symbols for channel c, in the order
// the encoder tries them.
var (
	openers [nClass]byte
	closers [nClass]byte
	symtab  [256]symClass
)

func init() {
	copy(openers[:], "([{<")
	copy(closers[:], ")]}>")
	for i := 0; i < nLetter; i++ {
		openers[nBracket+i] = byte('A' + i)
		closers[nBracket+i] = byte('a' + i)
	}
	for c := 0; c < nClass; c++ {
		symtab[openers[c]] = symClass{openSym, uint8(c)}
		symtab[closers[c]] = symClass{closeSym, uint8(c)}
	}
}

// UnmatchedBracketError is returned when a closing symbol has nothing
// to close. Pos counts from zero.
type UnmatchedBracketError struct {
	Pos int
	Sym byte
}

func (e *UnmatchedBracketError) Error() string {
	return fmt.Sprintf("unmatched closing bracket '%c' at position %d", e.Sym, e.Pos)
}

// NewTable returns a table of n unpaired residues.
func NewTable(n int) Table {
	t := make(Table, n)
	for i := range t {
		t[i] = Unpaired
	}
	return t
}

// Match decodes a structure string into a partner table.
// A closing symbol with an empty stack is an error. Openers left on a
// stack at the end are not. They just stay unpaired.
func Match(s string) (Table, error) {
	var stacks [nClass][]int
	t := NewTable(len(s))
	for i := 0; i < len(s); i++ {
		sc := symtab[s[i]]
		switch sc.kind {
		case openSym:
			stacks[sc.class] = append(stacks[sc.class], i)
		case closeSym:
			stk := stacks[sc.class]
			if len(stk) == 0 {
				return nil, &UnmatchedBracketError{Pos: i, Sym: s[i]}
			}
			j := stk[len(stk)-1]
			stacks[sc.class] = stk[:len(stk)-1]
			t[i], t[j] = j, i
		}
	}
	return t, nil
}

// Valid checks symmetry, range and the absence of self pairs.
func (t Table) Valid() error {
	for i, j := range t {
		switch {
		case j == Unpaired:
		case j < 0 || j >= len(t):
			return fmt.Errorf("residue %d has partner %d, outside 0..%d", i, j, len(t)-1)
		case j == i:
			return fmt.Errorf("residue %d is paired with itself", i)
		case t[j] != i:
			return fmt.Errorf("residue %d points to %d, but %d points to %d", i, j, j, t[j])
		}
	}
	return nil
}

// Pairs returns the pairs in order of their first residue.
func (t Table) Pairs() []Pair {
	var ret []Pair
	for i, j := range t {
		if j > i {
			ret = append(ret, Pair{i, j})
		}
	}
	return ret
}

// NPair counts pairs.
func (t Table) NPair() int {
	n := 0
	for i, j := range t {
		if j > i {
			n++
		}
	}
	return n
}

// Copy returns a table with its own backing array.
func (t Table) Copy() Table {
	return append(Table(nil), t...)
}

var errTooDeep = errors.New("structure needs more bracket types than are available")

// crosses says if pair p crosses any pair in lvl. Pairs arrive in order
// of their opening position, so anything in lvl opened before p.I.
func crosses(lvl []Pair, p Pair) bool {
	for _, q := range lvl {
		if p.I < q.J && q.J < p.J {
			return true
		}
	}
	return false
}

// Encode writes a table as a structure string. Each pair gets the first
// bracket type in which it crosses nothing already written. Plain
// nested structures only use "()".
func Encode(t Table) (string, error) {
	if err := t.Valid(); err != nil {
		return "", err
	}
	out := make([]byte, len(t))
	for i := range out {
		out[i] = '.'
	}
	var levels [nClass][]Pair
	for _, p := range t.Pairs() {
		c := 0
		for ; c < nClass; c++ {
			if !crosses(levels[c], p) {
				break
			}
		}
		if c == nClass {
			return "", fmt.Errorf("pair %d-%d: %w", p.I, p.J, errTooDeep)
		}
		levels[c] = append(levels[c], p)
		out[p.I], out[p.J] = openers[c], closers[c]
	}
	return string(out), nil
}
