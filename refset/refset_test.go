package refset

import (
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/TuftsBCB/seq"

	"github.com/amelie-iska/PEbA/align"
	"github.com/amelie-iska/PEbA/io/msf"
)

var (
	refMSF = `PileUp

   MSF:  10  Type:  P

 Name: seqA oo  Len:  10
 Name: seqB oo  Len:  10
 Name: seqC oo  Len:  10

//

seqA      ACDEFG.HIK
seqB      ACDE.GGHIK
seqC      AC..FGGH.K
`
	refTFA = `>seqA
ACDEFGHIK
>seqB
ACDEGGHIK
>seqC
ACFGGHK
`
)

func TestStem(t *testing.T) {
	tests := []struct{ fp, answer string }{
		{"/ref/RV11/BB11001.msf", "BB11001"},
		{"BB11001.tfa", "BB11001"},
		{"plain", "plain"},
	}
	for _, test := range tests {
		if got := Stem(test.fp); got != test.answer {
			t.Fatalf("Stem(%s) is '%s', expected '%s'.",
				test.fp, got, test.answer)
		}
	}
}

func TestPairs(t *testing.T) {
	pairs := Pairs([]string{"a", "b", "c"})
	answer := [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	if len(pairs) != len(answer) {
		t.Fatalf("Enumerated %d pairs, expected %d.", len(pairs), len(answer))
	}
	for i := range answer {
		if pairs[i] != answer[i] {
			t.Fatalf("Pair %d is %v, expected %v.", i, pairs[i], answer[i])
		}
	}
	if got := Pairs([]string{"only"}); len(got) != 0 {
		t.Fatalf("One id enumerated %d pairs.", len(got))
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, path.Join(dir, "BB2.msf"), refMSF)
	writeFile(t, path.Join(dir, "BB1.msf"), refMSF)
	writeFile(t, path.Join(dir, "BB1.tfa"), refTFA)
	writeFile(t, path.Join(dir, "BB2.tfa"), refTFA)
	writeFile(t, path.Join(dir, "notes.txt"), "ignored")

	rs, err := Discover(dir)
	if err != nil {
		t.Fatalf("Could not discover '%s': %s", dir, err)
	}
	if len(rs.MSF) != 2 || len(rs.Fasta) != 2 {
		t.Fatalf("Discovered %d msf and %d tfa files, expected 2 and 2.",
			len(rs.MSF), len(rs.Fasta))
	}
	for i := range rs.MSF {
		if Stem(rs.MSF[i]) != Stem(rs.Fasta[i]) {
			t.Fatalf("File '%s' paired with '%s'.", rs.MSF[i], rs.Fasta[i])
		}
	}
}

func TestDiscoverUnpaired(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, path.Join(dir, "BB1.msf"), refMSF)
	writeFile(t, path.Join(dir, "BB2.tfa"), refTFA)
	if _, err := Discover(dir); err == nil {
		t.Fatal("Discovering an unpaired folder did not fail.")
	}
}

func TestSplitFasta(t *testing.T) {
	dir := t.TempDir()
	tfa := path.Join(dir, "BB1.tfa")
	writeFile(t, tfa, refTFA)

	outDir := path.Join(dir, "out")
	if err := os.MkdirAll(outDir, 0777); err != nil {
		t.Fatal(err)
	}
	seqs, err := SplitFasta(tfa, outDir)
	if err != nil {
		t.Fatalf("Could not split '%s': %s", tfa, err)
	}

	ids := []string{"seqA", "seqB", "seqC"}
	if len(seqs) != len(ids) {
		t.Fatalf("Split into %d sequences, expected %d.", len(seqs), len(ids))
	}
	for i, id := range ids {
		if seqs[i].Name != id {
			t.Fatalf("Sequence %d is named '%s', expected '%s'.",
				i, seqs[i].Name, id)
		}
		if _, err := os.Stat(path.Join(outDir, id+".fa")); err != nil {
			t.Fatalf("Missing split file for '%s': %s", id, err)
		}
	}
}

func TestDriverRun(t *testing.T) {
	refDir := path.Join(t.TempDir(), "RV11")
	if err := os.MkdirAll(refDir, 0777); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path.Join(refDir, "BB11001.msf"), refMSF)
	writeFile(t, path.Join(refDir, "BB11001.tfa"), refTFA)

	outDir := t.TempDir()
	driver := Driver{
		OutDir:  outDir,
		Methods: []Method{{Name: "global", Aligner: align.GlobalDefault}},
		Workers: 2,
	}
	results, err := driver.Run(refDir)
	if err != nil {
		t.Fatalf("Could not run driver: %s", err)
	}
	if len(results) != 3 {
		t.Fatalf("Processed %d pairs, expected 3.", len(results))
	}

	msa, err := msf.ReadFile(path.Join(refDir, "BB11001.msf"))
	if err != nil {
		t.Fatalf("Could not read reference alignment: %s", err)
	}
	for k, res := range results {
		if res.Err != nil {
			t.Fatalf("Pair %s/%s failed: %s", res.ID1, res.ID2, res.Err)
		}

		// The reference pairwise file must reproduce the induced pair.
		want, err := align.Pair(msa, res.ID1, res.ID2)
		if err != nil {
			t.Fatal(err)
		}
		got, err := msf.ReadFile(res.Ref)
		if err != nil {
			t.Fatalf("Could not read '%s': %s", res.Ref, err)
		}
		if len(got.Entries) != 2 {
			t.Fatalf("'%s' has %d sequences, expected 2.",
				res.Ref, len(got.Entries))
		}
		for i, answer := range []string{
			resString(want.A), resString(want.B),
		} {
			if resString(got.Entries[i]) != answer {
				t.Fatalf("\n'%s' row %d is\n\n%s\n\nbut answer is\n\n%s",
					res.Ref, i, resString(got.Entries[i]), answer)
			}
		}

		// One method file per pair, named after the method.
		method := path.Join(outDir, "RV11", "BB11001",
			fmt.Sprintf("BB11001_%d.global.msf", k))
		if _, err := os.Stat(method); err != nil {
			t.Fatalf("Missing method alignment '%s': %s", method, err)
		}
	}
}

func writeFile(t *testing.T, fp, contents string) {
	t.Helper()
	if err := os.WriteFile(fp, []byte(contents), 0666); err != nil {
		t.Fatal(err)
	}
}

func resString(s seq.Sequence) string {
	return fmt.Sprintf("%s", s.Residues)
}
