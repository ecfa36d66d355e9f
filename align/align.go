// Package align provides pairwise protein alignments: extracting the
// pairwise alignment induced by two rows of a reference multiple sequence
// alignment, and producing fresh alignments with pluggable aligners.
package align

import (
	"fmt"

	"github.com/TuftsBCB/seq"
)

// Gap is the gap marker used in pairwise alignments.
const Gap = seq.Residue('.')

// An Alignment is a pair of gap-padded sequences of equal length.
type Alignment struct {
	A, B seq.Sequence
}

// Len returns the number of columns in the alignment.
func (al Alignment) Len() int {
	return al.A.Len()
}

// Identity returns the fraction of columns holding the same (non-gap)
// residue on both rows. An empty alignment has identity 0.
func (al Alignment) Identity() float64 {
	if al.Len() == 0 {
		return 0
	}
	same := 0
	for i, r := range al.A.Residues {
		if r != Gap && r == al.B.Residues[i] {
			same++
		}
	}
	return float64(same) / float64(al.Len())
}

// NotFoundError is returned when a named sequence does not appear in a
// multiple sequence alignment.
type NotFoundError struct {
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("sequence '%s' not found in alignment", e.Name)
}

// An Aligner produces a pairwise alignment of two (unaligned) sequences.
type Aligner interface {
	Align(a, b seq.Sequence) (Alignment, error)
}

// Pair extracts the pairwise alignment induced by two rows of a multiple
// sequence alignment. Rows are matched by exact name. Columns where both
// rows hold a gap say nothing about how the two sequences align to each
// other, so they are removed; columns where exactly one row holds a gap are
// a genuine insertion and are kept.
//
// The two returned rows always have equal length and never share a gap
// column.
func Pair(msa seq.MSA, name1, name2 string) (Alignment, error) {
	row1, err := row(msa, name1)
	if err != nil {
		return Alignment{}, err
	}
	row2, err := row(msa, name2)
	if err != nil {
		return Alignment{}, err
	}

	n := len(row1.Residues)
	rs1 := make([]seq.Residue, 0, n)
	rs2 := make([]seq.Residue, 0, n)
	for i := 0; i < n; i++ {
		if row1.Residues[i] == Gap && row2.Residues[i] == Gap {
			continue
		}
		rs1 = append(rs1, row1.Residues[i])
		rs2 = append(rs2, row2.Residues[i])
	}
	return Alignment{
		A: seq.Sequence{Name: name1, Residues: rs1},
		B: seq.Sequence{Name: name2, Residues: rs2},
	}, nil
}

func row(msa seq.MSA, name string) (seq.Sequence, error) {
	for _, entry := range msa.Entries {
		if entry.Name == name {
			return entry, nil
		}
	}
	return seq.Sequence{}, NotFoundError{name}
}
