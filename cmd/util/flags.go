package util

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/amelie-iska/PEbA/align"
)

var (
	FlagCpu = runtime.NumCPU()

	FlagOutDir = "bb_data"

	FlagGapOpen   = -11.0
	FlagGapExtend = -1.0

	flagSubmat = ""
	FlagSubmat *align.Submat

	FlagPebaExec = ""

	FlagVerbose = false
)

func init() {
	log.SetFlags(0)
}

type commonFlag struct {
	set, init func()
	use       bool
}

var commonFlags = map[string]*commonFlag{
	"cpu": {
		set: func() {
			flag.IntVar(&FlagCpu, "cpu", FlagCpu,
				"The max number of CPUs to use.")
		},
		init: func() {
			runtime.GOMAXPROCS(FlagCpu)
		},
	},
	"out-dir": {
		set: func() {
			flag.StringVar(&FlagOutDir, "out-dir", FlagOutDir,
				"The directory where pairwise alignments are written.")
		},
	},
	"gap-open": {
		set: func() {
			flag.Float64Var(&FlagGapOpen, "gap-open", FlagGapOpen,
				"The gap opening score. Penalties are negative.")
		},
	},
	"gap-extend": {
		set: func() {
			flag.Float64Var(&FlagGapExtend, "gap-extend", FlagGapExtend,
				"The gap extension score. Penalties are negative.")
		},
	},
	"submat": {
		set: func() {
			flag.StringVar(&flagSubmat, "submat", flagSubmat,
				"A substitution matrix file in NCBI format.\n"+
					"When empty, BLOSUM62 is used.")
		},
		init: func() {
			if len(flagSubmat) == 0 {
				FlagSubmat = align.Blosum62()
				return
			}
			var err error
			FlagSubmat, err = align.ReadSubmatFile(flagSubmat)
			Assert(err, "Could not read substitution matrix '%s'", flagSubmat)
		},
	},
	"peba-exec": {
		set: func() {
			flag.StringVar(&FlagPebaExec, "peba-exec", FlagPebaExec,
				"The PEbA executable. When empty, no embedding-based\n"+
					"alignments are produced.")
		},
	},
	"verbose": {
		set: func() {
			flag.BoolVar(&FlagVerbose, "verbose", FlagVerbose,
				"When set, progress and diagnostics are printed to stderr.")
		},
	},
}

func FlagUse(names ...string) {
	for _, name := range names {
		commonFlags[name].use = true
	}
}

// Usage just calls `flag.Usage`. It's included here to avoid
// an extra import to `flag` just to call Usage.
func Usage() {
	flag.Usage()
}

// Arg just calls `flag.Arg`. It's included here to avoid
// an extra import to `flag` just to call Arg.
func Arg(i int) string {
	return flag.Arg(i)
}

// NArg just calls `flag.NArg`. It's included here to avoid
// an extra import to `flag` just to call NArg.
func NArg() int {
	return flag.NArg()
}

func FlagParse(positional string, desc string) {
	for _, fl := range commonFlags {
		if fl.use {
			fl.set()
		}
	}

	flag.Usage = func() {
		log.Printf("Usage: %s [flags] %s\n\n",
			path.Base(os.Args[0]), positional)
		if len(desc) > 0 {
			log.Printf("%s\n", desc)
		}
		flag.VisitAll(func(fl *flag.Flag) {
			var def string
			if len(fl.DefValue) > 0 {
				def = fmt.Sprintf(" (default: %s)", fl.DefValue)
			}

			usage := strings.Replace(fl.Usage, "\n", "\n    ", -1)
			log.Printf("-%s%s\n", fl.Name, def)
			log.Printf("    %s\n", usage)
		})
		os.Exit(1)
	}
	flag.Parse()

	for _, fl := range commonFlags {
		if fl.use && fl.init != nil {
			fl.init()
		}
	}
}
