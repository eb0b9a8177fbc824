// 19 Oct 2026

// Package ssmodel holds the structure model that all the file readers
// produce: an ordered list of residues and a partner table.
// A Model is put together by a Builder and after that it does not change,
// except through ApplyPairs.
package ssmodel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andrew-torda/matrix"
	"github.com/andrew-torda/sstruct/pkg/ss"
)

// BasePair is a pair of residue indices, I < J.
type BasePair = ss.Pair

// PlaceholderCode is the residue code used to fill numbering gaps.
const PlaceholderCode byte = '?'

// Residue is one position in the sequence.
type Residue struct {
	Index       int    // position in the model, from zero
	Number      int    // number shown to people, from the file
	Code        byte   // one letter code
	Label       string // optional free text
	Placeholder bool   // inserted to fill a gap in the numbering
}

// Model is one structure. Name is what the file called it, ID is an
// accession if the file had one. NumberingStart is the number of the
// first residue in the file's own numbering.
type Model struct {
	Name           string
	ID             string
	NumberingStart int
	Source         string
	Residues       []Residue
	Warnings       []string // problems we stepped around while reading
	table          ss.Table
}

var (
	ErrSelfPair      = errors.New("residue cannot pair with itself")
	ErrRange         = errors.New("residue index out of range")
	ErrAlreadyPaired = errors.New("residue already paired")
	ErrNoResidues    = errors.New("no residues")
)

// Len is the number of residues
func (m *Model) Len() int { return len(m.Residues) }

// Partner returns the partner of residue i, or ss.Unpaired.
func (m *Model) Partner(i int) int { return m.table[i] }

// Table returns a copy of the partner table.
func (m *Model) Table() ss.Table { return m.table.Copy() }

// Pairs returns the base pairs in order of their first residue.
func (m *Model) Pairs() []BasePair { return m.table.Pairs() }

// Sequence returns the residue codes as a string.
func (m *Model) Sequence() string {
	var sb strings.Builder
	sb.Grow(len(m.Residues))
	for _, r := range m.Residues {
		sb.WriteByte(r.Code)
	}
	return sb.String()
}

// DotBracket returns the structure in dot-bracket notation, using extra
// bracket types for pseudoknots.
func (m *Model) DotBracket() (string, error) { return ss.Encode(m.table) }

// ApplyPairs adds pairs found after the model was built, for example
// from a separate pair list. Either all pairs go in or none do.
func (m *Model) ApplyPairs(pairs []BasePair) error {
	t := m.table.Copy()
	for _, p := range pairs {
		if err := addPair(t, p.I, p.J); err != nil {
			return fmt.Errorf("applying pair %d-%d: %w", p.I, p.J, err)
		}
	}
	m.table = t
	return nil
}

// ContactMap returns an n x n matrix with 1 at [i][j] and [j][i] for
// every pair.
func (m *Model) ContactMap() *matrix.FMatrix2d {
	n := len(m.table)
	cm := matrix.NewFMatrix2d(n, n)
	for i, j := range m.table {
		if j != ss.Unpaired {
			cm.Mat[i][j] = 1
		}
	}
	return cm
}

// String gives the name, sequence and structure, roughly in the
// format of a dot-bracket file.
func (m *Model) String() string {
	db, err := m.DotBracket()
	if err != nil {
		db = err.Error()
	}
	return fmt.Sprintf(">%s\n%s\n%s", m.Name, m.Sequence(), db)
}

// addPair puts i-j into t, checking it does not break the table.
func addPair(t ss.Table, i, j int) error {
	switch {
	case i < 0 || j < 0 || i >= len(t) || j >= len(t):
		return ErrRange
	case i == j:
		return ErrSelfPair
	case t[i] == j: // already there, nothing to do
		return nil
	case t[i] != ss.Unpaired || t[j] != ss.Unpaired:
		return ErrAlreadyPaired
	}
	t[i], t[j] = j, i
	return nil
}
