package msf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/TuftsBCB/seq"
)

// Gap is the gap marker used in MSF alignments.
const Gap = seq.Residue('.')

// FormatError describes a malformed MSF input. Line is the 1-based line
// number where the problem was detected, or 0 when the problem is a property
// of the whole file (e.g., sequences of unequal length).
type FormatError struct {
	Line int
	Msg  string
}

func (e FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("msf: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("msf: %s", e.Msg)
}

// Read reads a single multiple sequence alignment from MSF formatted input.
//
// A sequence line is any line whose first whitespace-delimited field names a
// sequence and whose remaining fields are all residue chunks (letters, '.'
// or '-'). Chunks that share a name concatenate in file order. Names are
// matched as whole tokens; a name that is a prefix of another name never
// steals its chunks. Lines that don't look like sequence data (the PileUp
// preamble, "Name:" declarations, column rulers) are skipped. A "//" line
// after sequence data terminates the alignment.
//
// Entries appear in the MSA in order of first appearance. Every sequence
// must come out at the same length, otherwise a FormatError is returned.
// Residues are stored exactly as read; a '-' stays distinct from the '.'
// gap marker.
func Read(r io.Reader) (seq.MSA, error) {
	var names []string
	residues := make(map[string][]seq.Residue)
	seenData := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if len(line) >= 2 && line[0] == '/' && line[1] == '/' {
			if seenData {
				break
			}
			continue
		}

		fields := bytes.Fields(line)
		if len(fields) < 2 {
			continue
		}
		chunks, ok := asResidues(fields[1:])
		if !ok {
			continue
		}

		name := string(fields[0])
		if _, seen := residues[name]; !seen {
			names = append(names, name)
		}
		residues[name] = append(residues[name], chunks...)
		seenData = true
	}
	if err := scanner.Err(); err != nil {
		return seq.MSA{}, err
	}
	if len(names) == 0 {
		return seq.MSA{}, FormatError{Msg: "no sequence data found"}
	}

	// The entries are assembled directly: MSA.Add performs A2M
	// normalization, which would rewrite '-' to '.' in any column where
	// another entry holds an insertion residue.
	width := len(residues[names[0]])
	entries := make([]seq.Sequence, len(names))
	for i, name := range names {
		rs := residues[name]
		if len(rs) != width {
			return seq.MSA{}, FormatError{
				Msg: fmt.Sprintf("sequence '%s' has length %d, but other "+
					"sequences have length %d", name, len(rs), width),
			}
		}
		entries[i] = seq.Sequence{Name: name, Residues: rs}
	}
	return seq.MSA{Entries: entries}, nil
}

// ReadFile reads a single multiple sequence alignment from an MSF file.
func ReadFile(path string) (seq.MSA, error) {
	f, err := os.Open(path)
	if err != nil {
		return seq.MSA{}, err
	}
	defer f.Close()
	return Read(f)
}

// asResidues translates whitespace-delimited chunks into residues. The
// second return value is false if any chunk holds a character outside the
// alignment alphabet, which marks the whole line as header decoration.
func asResidues(chunks [][]byte) ([]seq.Residue, bool) {
	n := 0
	for _, chunk := range chunks {
		n += len(chunk)
	}
	rs := make([]seq.Residue, 0, n)
	for _, chunk := range chunks {
		for _, b := range chunk {
			switch {
			case b >= 'a' && b <= 'z':
			case b >= 'A' && b <= 'Z':
			case b == '.' || b == '-':
			default:
				return nil, false
			}
			rs = append(rs, seq.Residue(b))
		}
	}
	return rs, true
}

// WritePair writes a pairwise alignment in the fixed PileUp layout. The two
// sequences must have equal length; unequal lengths are a caller bug and
// cause a panic. The length declared in the header always equals the number
// of residues in each row.
//
// Writing the same pair twice produces byte-identical output.
func WritePair(w io.Writer, s1, s2 seq.Sequence) error {
	if s1.Len() != s2.Len() {
		panic(fmt.Sprintf("pairwise alignment rows must have equal length "+
			"(%d != %d)", s1.Len(), s2.Len()))
	}

	length := s1.Len()
	id1, id2 := padNames(s1.Name, s2.Name)
	rows1 := displayRows(s1.Residues)
	rows2 := displayRows(s2.Residues)

	var err error
	pf := func(format string, v ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, v...)
	}
	pf("PileUp\n\n\n\n")
	pf("   MSF:  %d  Type:  P\n\n", length)
	pf(" Name: %s oo  Len:  %d\n", id1, length)
	pf(" Name: %s oo  Len:  %d\n\n//\n\n\n\n", id2, length)
	for i := range rows1 {
		pf("%s      %s\n", id1, rows1[i])
		pf("%s      %s\n\n", id2, rows2[i])
	}
	return err
}

// WritePairFile creates (or overwrites) the file at path and writes the
// pairwise alignment to it. There is no partial-write recovery; a failure
// mid-way leaves an incomplete file behind.
func WritePairFile(path string, s1, s2 seq.Sequence) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	if err := WritePair(buf, s1, s2); err != nil {
		return err
	}
	return buf.Flush()
}

// displayRows formats residues for the block layout: a space after every
// tenth residue, then the spaced string wrapped every 55 characters. A
// display row therefore holds at most five groups of ten residues. Trailing
// separator spaces fall where the wrapping arithmetic puts them.
func displayRows(rs []seq.Residue) []string {
	spaced := make([]byte, 0, len(rs)+len(rs)/10)
	for i, r := range rs {
		if i > 0 && i%10 == 0 {
			spaced = append(spaced, ' ')
		}
		spaced = append(spaced, byte(r))
	}

	rows := make([]string, 0, 1+len(spaced)/55)
	for len(spaced) > 55 {
		rows = append(rows, string(spaced[:55]))
		spaced = spaced[55:]
	}
	if len(spaced) > 0 {
		rows = append(rows, string(spaced))
	}
	return rows
}

// padNames right-pads the shorter of the two names with spaces so both
// occupy the same width in the header and the alignment blocks.
func padNames(n1, n2 string) (string, string) {
	for len(n1) < len(n2) {
		n1 += " "
	}
	for len(n2) < len(n1) {
		n2 += " "
	}
	return n1, n2
}
