// msf2pair extracts the pairwise alignment induced by two sequences of a
// reference multiple alignment and writes it as a standalone MSF file.
package main

import (
	"bufio"
	"os"

	"github.com/amelie-iska/PEbA/align"
	"github.com/amelie-iska/PEbA/cmd/util"
	"github.com/amelie-iska/PEbA/io/msf"
)

func main() {
	util.FlagParse("msa-file id1 id2 [out-msf-file]",
		"Extracts the pairwise alignment of two named sequences from a\n"+
			"multiple sequence alignment. Columns where both sequences hold\n"+
			"a gap are removed. The result is written to the output file,\n"+
			"or to stdout when no output file is given.")
	util.AssertLeastNArg(3)
	if util.NArg() > 4 {
		util.Usage()
	}

	msa := util.ReadMSA(util.Arg(0))
	pair, err := align.Pair(msa, util.Arg(1), util.Arg(2))
	util.Assert(err, "Could not extract pair from '%s'", util.Arg(0))

	if util.NArg() == 4 {
		util.Assert(msf.WritePairFile(util.Arg(3), pair.A, pair.B),
			"Could not write pairwise alignment '%s'", util.Arg(3))
		return
	}

	buf := bufio.NewWriter(os.Stdout)
	util.Assert(msf.WritePair(buf, pair.A, pair.B),
		"Could not write pairwise alignment")
	util.Assert(buf.Flush(), "Could not write pairwise alignment")
}
