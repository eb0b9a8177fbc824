package ssmodel

import (
	"fmt"

	"github.com/andrew-torda/sstruct/pkg/ss"
)

// Builder collects residues and pairs for one model. Readers add
// residues in order, then pairs, then call Build.
type Builder struct {
	m     Model
	table ss.Table
}

// NewBuilder starts a model called name.
func NewBuilder(name string) *Builder {
	return &Builder{m: Model{Name: name, NumberingStart: 1}}
}

func (b *Builder) SetName(s string) { b.m.Name = s }
func (b *Builder) SetID(s string) { b.m.ID = s }
func (b *Builder) SetSource(s string) { b.m.Source = s }
func (b *Builder) SetNumberingStart(n int) { b.m.NumberingStart = n }
func (b *Builder) Name() string { return b.m.Name }

// Len is the number of residues so far.
func (b *Builder) Len() int { return len(b.m.Residues) }

// AddResidue appends a residue and returns its index.
func (b *Builder) AddResidue(code byte, number int, label string) int {
	i := len(b.m.Residues)
	b.m.Residues = append(b.m.Residues, Residue{Index: i, Number: number, Code: code, Label: label})
	b.table = append(b.table, ss.Unpaired)
	return i
}

// AddPlaceholder appends a residue standing in for one missing from the
// file.
func (b *Builder) AddPlaceholder(number int) int {
	i := b.AddResidue(PlaceholderCode, number, "")
	b.m.Residues[i].Placeholder = true
	return i
}

// Pair records a pair between residues i and j. Asking for a pair that
// is already there is not an error.
func (b *Builder) Pair(i, j int) error {
	if err := addPair(b.table, i, j); err != nil {
		return fmt.Errorf("pair %d-%d: %w", i, j, err)
	}
	return nil
}

// SetTable takes a whole partner table. It must have one entry per
// residue and be valid.
func (b *Builder) SetTable(t ss.Table) error {
	if len(t) != len(b.m.Residues) {
		return fmt.Errorf("table length %d but %d residues", len(t), len(b.m.Residues))
	}
	if err := t.Valid(); err != nil {
		return err
	}
	b.table = t.Copy()
	return nil
}

// Warn records a problem that did not stop us reading.
func (b *Builder) Warn(msg string) { b.m.Warnings = append(b.m.Warnings, msg) }

// Warnings returns what has been recorded so far.
func (b *Builder) Warnings() []string { return b.m.Warnings }

// Build finishes the model. The builder should not be used afterwards.
func (b *Builder) Build() (*Model, error) {
	if len(b.m.Residues) == 0 {
		return nil, fmt.Errorf("model %q: %w", b.m.Name, ErrNoResidues)
	}
	if err := b.table.Valid(); err != nil { // cannot happen if Pair was used
		return nil, fmt.Errorf("model %q: %w", b.m.Name, err)
	}
	m := b.m
	m.table = b.table
	b.m, b.table = Model{}, nil
	return &m, nil
}

// Partner returns the partner of residue i so far, or ss.Unpaired.
func (b *Builder) Partner(i int) int { return b.table[i] }
