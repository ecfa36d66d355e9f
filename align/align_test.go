package align

import (
	"errors"
	"fmt"
	"testing"

	"github.com/TuftsBCB/seq"
)

func TestPair(t *testing.T) {
	tests := []struct {
		rows    []string
		i, j    int
		a1, a2  string
	}{
		// No column holds a gap on both rows, so nothing is removed.
		{[]string{"AC..GT", "A.CTGT"}, 0, 1, "AC..GT", "A.CTGT"},
		// Columns 1 and 2 are gaps on both rows and are dropped.
		{[]string{"A..T", "A..T"}, 0, 1, "AT", "AT"},
		// Only the selected pair matters: the third row makes columns 2-3
		// gap-only for the first two rows.
		{[]string{"AC..GT", "AG..TT", "ACGGTT"}, 0, 1, "ACGT", "AGTT"},
		// Only '.' is the gap marker: a '-' paired with a '.' keeps its
		// column.
		{[]string{"A-.T", "A..T"}, 0, 1, "A-T", "A.T"},
		{[]string{"....", "...."}, 0, 1, "", ""},
	}
	for _, test := range tests {
		msa := makeMSA(test.rows)
		name1 := msa.Entries[test.i].Name
		name2 := msa.Entries[test.j].Name

		pair, err := Pair(msa, name1, name2)
		if err != nil {
			t.Fatalf("Could not extract pair %s/%s: %s", name1, name2, err)
		}
		if pair.A.Len() != pair.B.Len() {
			t.Fatalf("Rows have lengths %d and %d.",
				pair.A.Len(), pair.B.Len())
		}
		if got := resString(pair.A); got != test.a1 {
			t.Fatalf("\nFirst row is\n\n%s\n\nbut answer is\n\n%s",
				got, test.a1)
		}
		if got := resString(pair.B); got != test.a2 {
			t.Fatalf("\nSecond row is\n\n%s\n\nbut answer is\n\n%s",
				got, test.a2)
		}
		for i := 0; i < pair.Len(); i++ {
			if pair.A.Residues[i] == Gap && pair.B.Residues[i] == Gap {
				t.Fatalf("Column %d holds a gap on both rows.", i)
			}
		}
	}
}

// The induced pairwise length is the alignment width minus the number of
// columns where both selected rows hold a gap.
func TestPairColumnCount(t *testing.T) {
	rows := []string{"AC..G.T..A", "A..TGCT..A"}
	msa := makeMSA(rows)

	shared := 0
	for i := range rows[0] {
		if rows[0][i] == '.' && rows[1][i] == '.' {
			shared++
		}
	}

	pair, err := Pair(msa, "0", "1")
	if err != nil {
		t.Fatalf("Could not extract pair: %s", err)
	}
	if pair.Len() != len(rows[0])-shared {
		t.Fatalf("Pair has %d columns, expected %d.",
			pair.Len(), len(rows[0])-shared)
	}
}

func TestPairNotFound(t *testing.T) {
	msa := makeMSA([]string{"ACGT", "AC.T"})
	_, err := Pair(msa, "0", "nonesuch")
	var nferr NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("Pair returned %v, expected a NotFoundError.", err)
	}
	if nferr.Name != "nonesuch" {
		t.Fatalf("NotFoundError names '%s', expected 'nonesuch'.", nferr.Name)
	}
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		a, b   string
		answer float64
	}{
		{"ACGT", "ACGT", 1},
		{"ACGT", "ACGA", 0.75},
		{"AC.T", "A.GT", 0.5},
		{"....", "ACGT", 0},
		{"", "", 0},
	}
	for _, test := range tests {
		al := Alignment{
			A: seq.Sequence{Name: "a", Residues: []seq.Residue(test.a)},
			B: seq.Sequence{Name: "b", Residues: []seq.Residue(test.b)},
		}
		if got := al.Identity(); got != test.answer {
			t.Fatalf("Identity of %s/%s is %f, expected %f.",
				test.a, test.b, got, test.answer)
		}
	}
}

func makeMSA(rows []string) seq.MSA {
	entries := make([]seq.Sequence, len(rows))
	for i, row := range rows {
		entries[i] = seq.Sequence{
			Name:     fmt.Sprintf("%d", i),
			Residues: []seq.Residue(row),
		}
	}
	return seq.MSA{Entries: entries}
}

func resString(s seq.Sequence) string {
	return fmt.Sprintf("%s", s.Residues)
}
