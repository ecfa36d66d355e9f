// split-fasta writes every record of a multi-sequence FASTA file to its own
// file '<id>.fa', where the id is the first token of the record's header.
package main

import (
	"os"

	"github.com/amelie-iska/PEbA/cmd/util"
	"github.com/amelie-iska/PEbA/refset"
)

func main() {
	util.FlagUse("verbose")
	util.FlagParse("fasta-file out-dir", "")
	util.AssertNArg(2)

	outDir := util.Arg(1)
	util.Assert(os.MkdirAll(outDir, 0777),
		"Could not create directory '%s'", outDir)

	seqs, err := refset.SplitFasta(util.Arg(0), outDir)
	util.Assert(err, "Could not split '%s'", util.Arg(0))
	util.Verbosef("Wrote %d sequences to '%s'.\n", len(seqs), outDir)
}
