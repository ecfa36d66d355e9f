package align

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/BurntSushi/cablastp/blosum"
	"github.com/TuftsBCB/seq"
	"github.com/andrew-torda/matrix"
)

// A Submat is a residue substitution matrix. The zero value is not useful;
// use Blosum62 or one of the readers.
type Submat struct {
	mat  *matrix.FMatrix2d
	cmap [128]int8
}

const notset int8 = -1

// Blosum62 returns the BLOSUM62 substitution matrix.
func Blosum62() *Submat {
	s := new(Submat)
	for i := range s.cmap {
		s.cmap[i] = notset
	}
	for i, c := range blosum.Alphabet62 {
		s.cmap[c] = int8(i)
	}
	n := len(blosum.Alphabet62)
	s.mat = matrix.NewFMatrix2d(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s.mat.Mat[i][j] = float32(blosum.Matrix62[i][j])
		}
	}
	s.mapCases()
	return s
}

// ReadSubmat reads a substitution matrix in the NCBI format: '#' starts a
// comment, the first content line lists the alphabet, and each following
// line holds a residue and its scores against the whole alphabet. Only one
// triangle needs to be populated; the matrix is made symmetric.
func ReadSubmat(r io.Reader) (*Submat, error) {
	s := new(Submat)
	scnr := newCmmtScanner(r, '#')

	scnr.Scan()
	nAlpha, err := s.readAlphabet(scnr.CBytes())
	if err != nil {
		return nil, err
	}
	s.mat = matrix.NewFMatrix2d(nAlpha, nAlpha)

	rows := 0
	for scnr.Scan() {
		line := scnr.CBytes()
		if line == nil {
			break
		}
		fields := bytes.Fields(line)
		if len(fields) != nAlpha+1 {
			return nil, fmt.Errorf("submat: wrong number of items on line: %s",
				line)
		}
		if fields[0][0] >= 128 {
			return nil, fmt.Errorf("submat: invalid residue on line: %s", line)
		}
		i := s.cmap[fields[0][0]]
		if i == notset {
			return nil, fmt.Errorf("submat: residue '%c' is not in the "+
				"alphabet", fields[0][0])
		}
		for j := 0; j < nAlpha; j++ {
			f, err := strconv.ParseFloat(string(fields[j+1]), 32)
			if err != nil {
				return nil, fmt.Errorf("submat: %s", err)
			}
			s.mat.Mat[i][j], s.mat.Mat[j][i] = float32(f), float32(f)
		}
		rows++
	}
	if err := scnr.Err(); err != nil {
		return nil, err
	}
	if rows != nAlpha {
		return nil, fmt.Errorf("submat: alphabet has %d residues, but only "+
			"%d matrix rows were found", nAlpha, rows)
	}
	return s, nil
}

// ReadSubmatFile reads a substitution matrix from a file.
func ReadSubmatFile(path string) (*Submat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSubmat(f)
}

// Score returns the substitution score of two residues. Residues outside
// the matrix alphabet score as the last alphabet entry, which in the NCBI
// matrices is the wildcard '*' column.
func (s *Submat) Score(a, b seq.Residue) float32 {
	i := s.index(a)
	j := s.index(b)
	return s.mat.Mat[i][j]
}

func (s *Submat) index(r seq.Residue) int8 {
	if r < 128 {
		if i := s.cmap[r]; i != notset {
			return i
		}
	}
	return int8(len(s.mat.Mat) - 1)
}

// readAlphabet parses the alphabet line of a matrix file. Each field must
// be a single ASCII character.
func (s *Submat) readAlphabet(line []byte) (int, error) {
	for i := range s.cmap {
		s.cmap[i] = notset
	}
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("submat: no alphabet line found")
	}
	for _, c := range fields {
		if len(c) != 1 {
			return 0, fmt.Errorf("submat: expected a single character in the "+
				"alphabet, got '%s'", c)
		}
		if c[0] >= 128 {
			return 0, fmt.Errorf("submat: non-ascii character in alphabet "+
				"line: %s", line)
		}
	}
	for i, c := range fields {
		s.cmap[c[0]] = int8(i)
	}
	s.mapCases()
	return len(fields), nil
}

// mapCases makes the mapping case insensitive: whichever case the alphabet
// declared, the other one maps to the same matrix row.
func (s *Submat) mapCases() {
	for c := byte('a'); c <= 'z'; c++ {
		u := c - 'a' + 'A'
		if s.cmap[c] == notset {
			s.cmap[c] = s.cmap[u]
		}
		if s.cmap[u] == notset {
			s.cmap[u] = s.cmap[c]
		}
	}
}

// scoreSeqs builds the residue-by-residue score matrix for a pair of
// sequences, one row per residue of a, one column per residue of b.
func (s *Submat) scoreSeqs(a, b []seq.Residue) *matrix.FMatrix2d {
	scores := matrix.NewFMatrix2d(len(a), len(b))
	for i, ra := range a {
		for j, rb := range b {
			scores.Mat[i][j] = s.Score(ra, rb)
		}
	}
	return scores
}

// A cmmtScanner wraps bufio.Scanner, dropping blank lines, leading and
// trailing whitespace, and anything after a comment character.
type cmmtScanner struct {
	*bufio.Scanner
	cmmt byte
}

func newCmmtScanner(r io.Reader, cmmt byte) *cmmtScanner {
	return &cmmtScanner{bufio.NewScanner(r), cmmt}
}

// CBytes presents the same interface as Scanner.Bytes, but strips comments
// and whitespace, calling Scan again past lines with nothing left.
func (s *cmmtScanner) CBytes() []byte {
	ok := true
	for b := s.Bytes(); ok; ok, b = s.Scan(), s.Bytes() {
		if i := bytes.IndexByte(b, s.cmmt); i >= 0 {
			b = b[:i]
		}
		b = bytes.TrimSpace(b)
		if len(b) > 0 {
			return b
		}
	}
	return nil
}
