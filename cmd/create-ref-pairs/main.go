// create-ref-pairs walks a BAliBASE-style reference folder and writes one
// pairwise MSF file per pair of sequences of every reference alignment.
// Alongside each reference pairwise file, it can produce a global alignment
// of the same pair (and, when a PEbA executable is configured, an
// embedding-based alignment) for later scoring against the reference.
package main

import (
	"flag"

	"github.com/amelie-iska/PEbA/align"
	"github.com/amelie-iska/PEbA/apps/peba"
	"github.com/amelie-iska/PEbA/cmd/util"
	"github.com/amelie-iska/PEbA/refset"
)

var flagSkipMethods = false

func init() {
	flag.BoolVar(&flagSkipMethods, "skip-methods", flagSkipMethods,
		"When set, only the reference pairwise alignments are written.")
}

func main() {
	util.FlagUse("cpu", "out-dir", "gap-open", "gap-extend", "submat",
		"peba-exec", "verbose")
	util.FlagParse("ref-dir",
		"Extracts every pairwise alignment from every reference alignment\n"+
			"in ref-dir. ref-dir must hold one '.msf' and one '.tfa' file\n"+
			"per alignment, paired by name.")
	util.AssertNArg(1)
	refDir := util.Arg(0)
	util.AssertIsDir(refDir)

	driver := refset.Driver{
		OutDir:  util.FlagOutDir,
		Methods: methods(),
		Workers: util.FlagCpu,
	}
	results, err := driver.Run(refDir)
	util.Assert(err, "Could not process reference folder '%s'", refDir)

	failed := 0
	for _, res := range results {
		if util.Warning(res.Err, "Skipped pair %s/%s of '%s'",
			res.ID1, res.ID2, res.MSF) {
			failed++
		}
	}
	util.Verbosef("%d of %d pairs written.\n", len(results)-failed,
		len(results))
}

func methods() []refset.Method {
	if flagSkipMethods {
		return nil
	}
	ms := []refset.Method{
		{
			Name: "global",
			Aligner: align.Global{
				Scores:    util.FlagSubmat,
				GapOpen:   util.FlagGapOpen,
				GapExtend: util.FlagGapExtend,
			},
		},
	}
	if len(util.FlagPebaExec) > 0 {
		ms = append(ms, refset.Method{
			Name: "peba",
			Aligner: peba.Config{
				Exec:      util.FlagPebaExec,
				GapOpen:   util.FlagGapOpen,
				GapExtend: util.FlagGapExtend,
				Verbose:   util.FlagVerbose,
			},
		})
	}
	return ms
}
