/*
Package peba wraps the PEbA embedding-based aligner as an opaque subprocess.
PEbA reads two single-sequence FASTA files, aligns them using residue
embeddings, and writes the resulting pairwise alignment as an MSF file; this
package runs the program and reads that file back.

Only the options needed here are exposed. Others can be added on an
as-needed basis.
*/
package peba

import (
	"fmt"
	"os"
	"path"

	"github.com/BurntSushi/cmd"

	"github.com/TuftsBCB/seq"

	"github.com/amelie-iska/PEbA/align"
	"github.com/amelie-iska/PEbA/io/fasta"
	"github.com/amelie-iska/PEbA/io/msf"
)

// Config specifies the location of the PEbA executable along with the
// alignment parameters passed to it.
type Config struct {
	// Exec points to the PEbA executable. If it is in your PATH, leaving
	// this as the default is sufficient.
	Exec string

	// Gap penalties handed to the aligner. These are scores, so penalties
	// are negative.
	GapOpen   float64
	GapExtend float64

	// OutDir is where the program's MSF output is written. If empty, a
	// temporary directory is used and removed after the output has been
	// read back.
	OutDir string

	// When true, every command executed is echoed to stderr, and the
	// program's stdout and stderr are mapped to the current process.
	Verbose bool
}

// DefaultConfig runs "peba" from PATH with the gap penalties used for the
// reference benchmark runs.
var DefaultConfig = Config{
	Exec:      "peba",
	GapOpen:   -11,
	GapExtend: -1,
}

// Run executes PEbA on two single-sequence FASTA files and reads back the
// pairwise alignment it produced.
func (conf Config) Run(fasta1, fasta2 string) (align.Alignment, error) {
	outDir := conf.OutDir
	if len(outDir) == 0 {
		tmpDir, err := os.MkdirTemp("", "peba")
		if err != nil {
			return align.Alignment{}, err
		}
		defer os.RemoveAll(tmpDir)
		outDir = tmpDir
	}
	outFile := path.Join(outDir, "peba.msf")

	c := cmd.New(conf.Exec,
		"-file1", fasta1,
		"-file2", fasta2,
		"-gopen", fmt.Sprintf("%g", conf.GapOpen),
		"-gext", fmt.Sprintf("%g", conf.GapExtend),
		"-savefile", outFile)
	if conf.Verbose {
		fmt.Fprintf(os.Stderr, "\n%s\n", c)
		c.Cmd.Stdout = os.Stdout
		c.Cmd.Stderr = os.Stderr
	}
	if err := c.Run(); err != nil {
		return align.Alignment{}, err
	}

	msa, err := msf.ReadFile(outFile)
	if err != nil {
		return align.Alignment{}, fmt.Errorf("could not read PEbA output "+
			"'%s': %s", outFile, err)
	}
	if len(msa.Entries) != 2 {
		return align.Alignment{}, fmt.Errorf("PEbA output '%s' has %d "+
			"sequences, expected 2", outFile, len(msa.Entries))
	}
	return align.Alignment{A: msa.Entries[0], B: msa.Entries[1]}, nil
}

// Align writes the two sequences to temporary FASTA files and calls Run.
// It satisfies align.Aligner.
func (conf Config) Align(a, b seq.Sequence) (align.Alignment, error) {
	tmpDir, err := os.MkdirTemp("", "peba-in")
	if err != nil {
		return align.Alignment{}, err
	}
	defer os.RemoveAll(tmpDir)

	fasta1, err := writeFasta(tmpDir, "1.fa", a)
	if err != nil {
		return align.Alignment{}, err
	}
	fasta2, err := writeFasta(tmpDir, "2.fa", b)
	if err != nil {
		return align.Alignment{}, err
	}
	return conf.Run(fasta1, fasta2)
}

func writeFasta(dir, name string, s seq.Sequence) (string, error) {
	fp := path.Join(dir, name)
	f, err := os.Create(fp)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := fasta.NewWriter(f)
	if err := w.Write(s); err != nil {
		return "", err
	}
	return fp, w.Flush()
}
