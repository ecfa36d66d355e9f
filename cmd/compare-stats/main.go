// compare-stats reads a tree of comparison-score CSV files and prints the
// bucketed average score of each of the two methods whose rows the files
// interleave.
package main

import (
	"flag"
	"os"

	"github.com/amelie-iska/PEbA/cmd/util"
	"github.com/amelie-iska/PEbA/compare"
)

var (
	flagBy   = "len"
	flagJSON = ""
)

func init() {
	flag.StringVar(&flagBy, "by", flagBy,
		"Bucket scores by 'id' (percent identity) or 'len' (alignment "+
			"length).")
	flag.StringVar(&flagJSON, "json", flagJSON,
		"When set, the report is also written as JSON to this file.")
}

func main() {
	util.FlagParse("results-dir", "")
	util.AssertNArg(1)
	util.AssertIsDir(util.Arg(0))

	var acc *compare.Accum
	switch flagBy {
	case "id":
		acc = compare.ByIdentity()
	case "len":
		acc = compare.ByLength()
	default:
		util.Fatalf("Unknown bucketing '%s' (must be 'id' or 'len').", flagBy)
	}

	util.Assert(compare.WalkDir(util.Arg(0), acc),
		"Could not read results under '%s'", util.Arg(0))
	util.Assert(acc.Report(os.Stdout), "Could not write report")

	if len(flagJSON) > 0 {
		f := util.CreateFile(flagJSON)
		util.Assert(acc.WriteJSON(f), "Could not write JSON report '%s'",
			flagJSON)
		util.Assert(f.Close(), "Could not write JSON report '%s'", flagJSON)
	}
}
