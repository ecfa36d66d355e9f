package refset

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"sync"

	"github.com/TuftsBCB/seq"

	"github.com/amelie-iska/PEbA/align"
	"github.com/amelie-iska/PEbA/io/msf"
)

// A Method is a named alignment provider. The driver writes one extra
// pairwise file per method alongside each reference pairwise file, so the
// method's output can be scored against the reference.
type Method struct {
	Name    string
	Aligner align.Aligner
}

// A Driver extracts every pairwise alignment from every reference
// alignment of a folder, writing the results under
// OutDir/<ref-folder>/<alignment-stem>/.
type Driver struct {
	// OutDir is the root of the output tree.
	OutDir string

	// Methods are run on every sequence pair in addition to the reference
	// extraction. May be empty.
	Methods []Method

	// Workers caps the number of pairs processed concurrently. Zero means
	// GOMAXPROCS.
	Workers int
}

// A PairResult records the outcome for one sequence pair of one reference
// alignment. Ref is the path of the reference pairwise file that was (or
// would have been) written. A non-nil Err means the pair was skipped; other
// pairs are unaffected.
type PairResult struct {
	MSF      string
	ID1, ID2 string
	Ref      string
	Err      error
}

// Run processes a whole reference folder. Failures of single pairs are
// reported in the results, not as an error; the error covers conditions
// that prevent the batch from running at all (an unreadable folder, an
// undecodable reference alignment, output directories that cannot be
// created).
func (d Driver) Run(refDir string) ([]PairResult, error) {
	rs, err := Discover(refDir)
	if err != nil {
		return nil, err
	}

	refName := path.Base(refDir)
	var all []PairResult
	for i, msfFile := range rs.MSF {
		results, err := d.runAlignment(refName, msfFile, rs.Fasta[i])
		if err != nil {
			return all, err
		}
		all = append(all, results...)
	}
	return all, nil
}

// runAlignment fans the sequence pairs of one reference alignment out over
// a worker pool. Each pair writes to its own files, so the workers share
// nothing but the read-only reference MSA.
func (d Driver) runAlignment(refName, msfFile, tfaFile string) (
	[]PairResult, error) {

	outDir := path.Join(d.OutDir, refName, Stem(msfFile))
	if err := os.MkdirAll(outDir, 0777); err != nil {
		return nil, err
	}

	seqs, err := SplitFasta(tfaFile, outDir)
	if err != nil {
		return nil, err
	}
	msa, err := msf.ReadFile(msfFile)
	if err != nil {
		return nil, fmt.Errorf("could not read reference alignment '%s': %s",
			msfFile, err)
	}

	ids := make([]string, len(seqs))
	byID := make(map[string]seq.Sequence, len(seqs))
	for i, s := range seqs {
		ids[i] = s.Name
		byID[s.Name] = s
	}
	pairs := Pairs(ids)
	results := make([]PairResult, len(pairs))

	jobs := make(chan int, 100)
	wg := new(sync.WaitGroup)
	for w := 0; w < d.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				results[k] = d.runPair(msa, byID, msfFile, outDir, k, pairs[k])
			}
		}()
	}
	for k := range pairs {
		jobs <- k
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

// runPair writes the reference pairwise alignment for one pair, then one
// alignment per configured method.
func (d Driver) runPair(msa seq.MSA, byID map[string]seq.Sequence,
	msfFile, outDir string, k int, pair [2]string) PairResult {

	stem := Stem(msfFile)
	res := PairResult{
		MSF: msfFile,
		ID1: pair[0],
		ID2: pair[1],
		Ref: path.Join(outDir, fmt.Sprintf("%s_%d.msf", stem, k)),
	}

	ref, err := align.Pair(msa, pair[0], pair[1])
	if err != nil {
		res.Err = err
		return res
	}
	if err := msf.WritePairFile(res.Ref, ref.A, ref.B); err != nil {
		res.Err = err
		return res
	}

	for _, m := range d.Methods {
		al, err := m.Aligner.Align(byID[pair[0]], byID[pair[1]])
		if err != nil {
			res.Err = fmt.Errorf("%s alignment of %s/%s: %s",
				m.Name, pair[0], pair[1], err)
			return res
		}
		dest := path.Join(outDir, fmt.Sprintf("%s_%d.%s.msf", stem, k, m.Name))
		if err := msf.WritePairFile(dest, al.A, al.B); err != nil {
			res.Err = err
			return res
		}
	}
	return res
}

func (d Driver) workers() int {
	if d.Workers > 0 {
		return d.Workers
	}
	return runtime.GOMAXPROCS(0)
}
