/*
Package refset walks BAliBASE-style reference folders and turns each
reference multiple alignment into a set of standalone pairwise alignment
files, one per pair of sequences. A folder holds one '.msf' reference
alignment and one '.tfa' FASTA file of unaligned sequences per alignment,
paired by file stem.
*/
package refset

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/TuftsBCB/seq"

	"github.com/amelie-iska/PEbA/io/fasta"
)

// A RefSet lists the reference alignment files discovered in a folder.
// MSF[i] and Fasta[i] always share a file stem.
type RefSet struct {
	MSF   []string
	Fasta []string
}

// Discover lists the '.msf' and '.tfa' files of a reference folder, sorted
// by name. Every alignment must appear in both forms; a stem present in one
// list but not the other is an error.
func Discover(dir string) (RefSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return RefSet{}, err
	}

	var rs RefSet
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".msf"):
			rs.MSF = append(rs.MSF, path.Join(dir, name))
		case strings.HasSuffix(name, ".tfa"):
			rs.Fasta = append(rs.Fasta, path.Join(dir, name))
		}
	}

	if len(rs.MSF) != len(rs.Fasta) {
		return RefSet{}, fmt.Errorf("refset: '%s' has %d msf files but %d "+
			"tfa files", dir, len(rs.MSF), len(rs.Fasta))
	}
	for i := range rs.MSF {
		if Stem(rs.MSF[i]) != Stem(rs.Fasta[i]) {
			return RefSet{}, fmt.Errorf("refset: msf file '%s' has no "+
				"matching tfa file", rs.MSF[i])
		}
	}
	return rs, nil
}

// Stem returns the base name of a file path without its extension.
func Stem(fp string) string {
	base := path.Base(fp)
	return strings.TrimSuffix(base, path.Ext(base))
}

// SplitFasta reads a multi-sequence FASTA file and writes every record to
// its own file '<id>.fa' in outDir, where the id is the first token of the
// record's header. The records are returned in file order with their names
// shortened to the id.
func SplitFasta(tfa, outDir string) ([]seq.Sequence, error) {
	f, err := os.Open(tfa)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seqs, err := fasta.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read FASTA file '%s': %s", tfa, err)
	}
	for i, s := range seqs {
		id := strings.Fields(s.Name)
		if len(id) == 0 {
			return nil, fmt.Errorf("sequence %d in '%s' has an empty header",
				i, tfa)
		}
		seqs[i].Name = id[0]
		if err := writeSingle(path.Join(outDir, id[0]+".fa"), seqs[i]); err != nil {
			return nil, err
		}
	}
	return seqs, nil
}

func writeSingle(fp string, s seq.Sequence) error {
	f, err := os.Create(fp)
	if err != nil {
		return err
	}
	defer f.Close()

	w := fasta.NewWriter(f)
	if err := w.Write(s); err != nil {
		return err
	}
	return w.Flush()
}

// Pairs enumerates the unordered pairs of distinct sequence ids, keeping
// the ids of each pair in input order. The enumeration order fixes the
// numbering of pairwise output files.
func Pairs(ids []string) [][2]string {
	pairs := make([][2]string, 0, len(ids)*(len(ids)-1)/2)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			pairs = append(pairs, [2]string{ids[i], ids[j]})
		}
	}
	return pairs
}
