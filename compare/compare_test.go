package compare

import (
	"bytes"
	"math"
	"os"
	"path"
	"strings"
	"testing"
)

func TestReadScores(t *testing.T) {
	input := "87.5,120,14,33.2\n74.1,120,9,33.2\n"
	rows, err := ReadScores(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Could not read scores: %s", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Read %d rows, expected 2.", len(rows))
	}
	answer := Row{Score: 87.5, Length: 120, Gaps: 14, Identity: 33.2}
	if rows[0] != answer {
		t.Fatalf("First row is %+v, expected %+v.", rows[0], answer)
	}
}

func TestReadScoresMalformed(t *testing.T) {
	if _, err := ReadScores(strings.NewReader("87.5,120\n")); err == nil {
		t.Fatal("Reading a short row did not fail.")
	}
	if _, err := ReadScores(strings.NewReader("a,b,c,d\n")); err == nil {
		t.Fatal("Reading a non-numeric row did not fail.")
	}
}

func TestBuckets(t *testing.T) {
	b := NewBuckets([]float64{9, 19, 29})
	for i := 0; i < 12; i++ {
		b.Add(5, 80)
	}
	b.Add(15, 60)
	b.Add(100, 50) // beyond the last bound, dropped

	avgs := b.Averages(10)
	if len(avgs) != 3 {
		t.Fatalf("Got %d buckets, expected 3.", len(avgs))
	}
	if avgs[0].Count != 12 || math.Abs(avgs[0].Mean-80) > 1e-9 {
		t.Fatalf("First bucket is %+v, expected mean 80 over 12.", avgs[0])
	}
	// Populated below the minimum: counted, but not averaged.
	if avgs[1].Count != 1 || avgs[1].Mean != 0 {
		t.Fatalf("Second bucket is %+v, expected mean 0 over 1.", avgs[1])
	}
	if avgs[2].Count != 0 {
		t.Fatalf("Third bucket is %+v, expected empty.", avgs[2])
	}
}

// Even rows belong to method 1, odd rows to method 2, counted per file.
func TestAccumInterleave(t *testing.T) {
	acc := ByIdentity()
	acc.AddFile([]Row{
		{Score: 80, Length: 100, Identity: 5},
		{Score: 40, Length: 100, Identity: 5},
		{Score: 90, Length: 200, Identity: 15},
	})
	acc.AddFile([]Row{
		{Score: 60, Length: 100, Identity: 15},
	})

	m1 := acc.M1.Averages(0)
	m2 := acc.M2.Averages(0)
	if m1[0].Count != 1 || math.Abs(m1[0].Mean-80) > 1e-9 {
		t.Fatalf("Method 1 bucket <=9 is %+v.", m1[0])
	}
	if m2[0].Count != 1 || math.Abs(m2[0].Mean-40) > 1e-9 {
		t.Fatalf("Method 2 bucket <=9 is %+v.", m2[0])
	}
	// The single row of the second file restarts at method 1.
	if m1[1].Count != 2 || math.Abs(m1[1].Mean-75) > 1e-9 {
		t.Fatalf("Method 1 bucket <=19 is %+v.", m1[1])
	}

	if acc.Rows != 4 {
		t.Fatalf("Accumulated %d rows, expected 4.", acc.Rows)
	}
	if math.Abs(acc.MeanLength()-125) > 1e-9 {
		t.Fatalf("Mean length is %f, expected 125.", acc.MeanLength())
	}
}

func TestByLengthBuckets(t *testing.T) {
	acc := ByLength()
	acc.AddFile([]Row{{Score: 70, Length: 600, Identity: 50}})
	m1 := acc.M1.Averages(0)
	if m1[1].Count != 1 {
		t.Fatalf("Length 600 landed in %+v, expected bucket <=999.", m1)
	}
}

func TestWalkDir(t *testing.T) {
	root := t.TempDir()
	msaDir := path.Join(root, "RV11", "BB11001")
	if err := os.MkdirAll(msaDir, 0777); err != nil {
		t.Fatal(err)
	}
	csv := "80,100,10,5\n40,100,12,5\n"
	if err := os.WriteFile(path.Join(msaDir, "compare.csv"),
		[]byte(csv), 0666); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path.Join(root, "notes.txt"),
		[]byte("ignored"), 0666); err != nil {
		t.Fatal(err)
	}

	acc := ByIdentity()
	if err := WalkDir(root, acc); err != nil {
		t.Fatalf("Could not walk '%s': %s", root, err)
	}
	if acc.Rows != 2 {
		t.Fatalf("Walk accumulated %d rows, expected 2.", acc.Rows)
	}
}

func TestReport(t *testing.T) {
	acc := ByIdentity()
	acc.AddFile([]Row{{Score: 80, Length: 100, Identity: 5}})

	var buf bytes.Buffer
	if err := acc.Report(&buf); err != nil {
		t.Fatalf("Could not write report: %s", err)
	}
	if !strings.Contains(buf.String(), "identity") {
		t.Fatal("Report does not name its metric.")
	}
}

func TestWriteJSON(t *testing.T) {
	acc := ByLength()
	acc.AddFile([]Row{{Score: 80, Length: 100, Identity: 5}})

	var buf bytes.Buffer
	if err := acc.WriteJSON(&buf); err != nil {
		t.Fatalf("Could not write JSON: %s", err)
	}
	for _, want := range []string{`"metric"`, `"method1"`, `"method2"`} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("JSON report is missing %s.", want)
		}
	}
}
