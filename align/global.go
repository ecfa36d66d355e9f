package align

import (
	"github.com/TuftsBCB/seq"
	"github.com/andrew-torda/matrix"
)

// Global is an affine-gap global aligner implementing the Gotoh recurrence,
// Gotoh, O. J. Mol. Biol. (1982) 162, 705-708.
//
// GapOpen and GapExtend are scores added to the total, so penalties are
// negative. Opening a gap of length one costs GapOpen + GapExtend; every
// further column of the same gap costs GapExtend.
type Global struct {
	// Scores is the substitution matrix. A nil Scores aligns with BLOSUM62.
	Scores *Submat

	GapOpen   float64
	GapExtend float64
}

// GlobalDefault aligns with BLOSUM62 and the gap penalties used for the
// reference benchmark runs.
var GlobalDefault = Global{
	Scores:    nil,
	GapOpen:   -11,
	GapExtend: -1,
}

// Directions for the traceback.
const (
	diag byte = iota // consume a residue of both sequences
	pway             // consume a residue of the first sequence (gap in second)
	qway             // consume a residue of the second sequence (gap in first)
	stop
)

const bigf float32 = -1e+38

// Align globally aligns two sequences, returning their gap-padded rows.
// The names of the input sequences carry over to the alignment.
func (g Global) Align(a, b seq.Sequence) (Alignment, error) {
	if a.Len() == 0 || b.Len() == 0 {
		return degenerate(a, b), nil
	}

	scores := g.Scores
	if scores == nil {
		scores = Blosum62()
	}
	wdn := float32(g.GapExtend)
	w1 := float32(g.GapOpen) + wdn

	// The score matrix doubles as the summation matrix: smat[i][j] ends up
	// holding the best score of an alignment of a[:i+1] and b[:j+1].
	smat := scores.scoreSeqs(a.Residues, b.Residues)
	mat := smat.Mat
	nrow, ncol := len(a.Residues), len(b.Residues)

	dir := matrix.NewBMatrix2d(nrow, ncol).Mat
	for _, row := range dir {
		row[0] = stop
	}
	for j := range dir[0] {
		dir[0][j] = stop
	}

	// First row and column only ever extend one gap.
	for j, qprev := 1, bigf; j < ncol; j++ {
		q := max32(mat[0][j-1]+w1, qprev+wdn)
		if q >= mat[0][j] {
			mat[0][j] = q
			dir[0][j] = qway
		}
		qprev = q
	}
	for i, pprev := 1, bigf; i < nrow; i++ {
		p := max32(mat[i-1][0]+w1, pprev+wdn)
		if p >= mat[i][0] {
			mat[i][0] = p
			dir[i][0] = pway
		}
		pprev = p
	}

	p := make([]float32, ncol)
	for j := range p {
		p[j] = bigf
	}
	for i := 1; i < nrow; i++ {
		qprev := bigf
		for j := 1; j < ncol; j++ {
			best := mat[i][j] + mat[i-1][j-1]
			drctn := diag
			p[j] = max32(mat[i-1][j]+w1, p[j]+wdn)
			q := max32(mat[i][j-1]+w1, qprev+wdn)
			if p[j] > best {
				best, drctn = p[j], pway
			}
			if q > best {
				best, drctn = q, qway
			}
			mat[i][j] = best
			dir[i][j] = drctn
			qprev = q
		}
	}

	rs1, rs2 := traceback(dir, mat, a.Residues, b.Residues)
	return Alignment{
		A: seq.Sequence{Name: a.Name, Residues: rs1},
		B: seq.Sequence{Name: b.Name, Residues: rs2},
	}, nil
}

// traceback recovers the global alignment path from the direction matrix,
// starting from the best score on the last row or column and padding the
// unconsumed tail and head of either sequence with gaps.
func traceback(dir [][]byte, mat [][]float32, a, b []seq.Residue) (
	rs1, rs2 []seq.Residue) {

	nrow, ncol := len(mat), len(mat[0])
	maxScr := mat[nrow-1][ncol-1]
	maxI, maxJ := nrow-1, ncol-1
	for i := 0; i < nrow; i++ {
		if mat[i][ncol-1] > maxScr {
			maxScr = mat[i][ncol-1]
			maxI, maxJ = i, ncol-1
		}
	}
	for j := 0; j < ncol; j++ {
		if mat[nrow-1][j] > maxScr {
			maxScr = mat[nrow-1][j]
			maxI, maxJ = nrow-1, j
		}
	}

	guess := nrow + ncol
	rev1 := make([]seq.Residue, 0, guess)
	rev2 := make([]seq.Residue, 0, guess)
	put := func(i, j int) {
		if i == -1 {
			rev1 = append(rev1, Gap)
		} else {
			rev1 = append(rev1, a[i])
		}
		if j == -1 {
			rev2 = append(rev2, Gap)
		} else {
			rev2 = append(rev2, b[j])
		}
	}

	// Anything after the best edge cell is unaligned tail.
	if maxI == nrow-1 {
		for j := ncol - 1; j > maxJ; j-- {
			put(-1, j)
		}
	} else {
		for i := nrow - 1; i > maxI; i-- {
			put(i, -1)
		}
	}

	i, j := maxI, maxJ
	for dir[i][j] != stop {
		switch dir[i][j] {
		case diag:
			put(i, j)
			i--
			j--
		case pway:
			put(i, -1)
			i--
		case qway:
			put(-1, j)
			j--
		}
	}
	put(i, j)
	for i--; i >= 0; i-- {
		put(i, -1)
	}
	for j--; j >= 0; j-- {
		put(-1, j)
	}

	for k, l := 0, len(rev1)-1; k < l; k, l = k+1, l-1 {
		rev1[k], rev1[l] = rev1[l], rev1[k]
		rev2[k], rev2[l] = rev2[l], rev2[k]
	}
	return rev1, rev2
}

// degenerate aligns against an empty sequence: the non-empty side keeps its
// residues and the empty side is all gaps.
func degenerate(a, b seq.Sequence) Alignment {
	n := a.Len()
	if b.Len() > n {
		n = b.Len()
	}
	rs1 := make([]seq.Residue, n)
	rs2 := make([]seq.Residue, n)
	for i := 0; i < n; i++ {
		rs1[i], rs2[i] = Gap, Gap
		if i < a.Len() {
			rs1[i] = a.Residues[i]
		}
		if i < b.Len() {
			rs2[i] = b.Residues[i]
		}
	}
	return Alignment{
		A: seq.Sequence{Name: a.Name, Residues: rs1},
		B: seq.Sequence{Name: b.Name, Residues: rs2},
	}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
