/*
Package compare aggregates pairwise-alignment comparison scores. The
scoring step writes one CSV file per reference alignment, with the rows of
two methods interleaved: even rows belong to the first method, odd rows to
the second. This package reads those trees of CSV files and reports the
average score of each method, bucketed by sequence identity or alignment
length.
*/
package compare

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
)

// A Row is one record of a comparison CSV file: the comparison score of a
// computed alignment against its reference, and properties of that
// reference (length, gap count, percent identity).
type Row struct {
	Score    float64
	Length   float64
	Gaps     float64
	Identity float64
}

// ReadScores reads comparison rows from CSV input.
func ReadScores(r io.Reader) ([]Row, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(records))
	for i, record := range records {
		if len(record) < 4 {
			return nil, fmt.Errorf("csv row %d has %d fields, expected 4",
				i+1, len(record))
		}
		nums := make([]float64, 4)
		for j := range nums {
			f, err := strconv.ParseFloat(strings.TrimSpace(record[j]), 64)
			if err != nil {
				return nil, fmt.Errorf("csv row %d: %s", i+1, err)
			}
			nums[j] = f
		}
		rows[i] = Row{
			Score:    nums[0],
			Length:   nums[1],
			Gaps:     nums[2],
			Identity: nums[3],
		}
	}
	return rows, nil
}

// Buckets accumulates scores keyed by the upper bound of the range a metric
// value falls into. Values above the last bound are dropped.
type Buckets struct {
	bounds []float64
	sums   []float64
	counts []int
}

// NewBuckets creates empty buckets with the given ascending upper bounds.
func NewBuckets(bounds []float64) *Buckets {
	return &Buckets{
		bounds: bounds,
		sums:   make([]float64, len(bounds)),
		counts: make([]int, len(bounds)),
	}
}

// Add files a score under the first bucket whose upper bound is >= metric.
// Scores arrive as percentages and are accumulated as fractions.
func (b *Buckets) Add(metric, score float64) {
	for i, bound := range b.bounds {
		if metric <= bound {
			b.sums[i] += score / 100
			b.counts[i]++
			return
		}
	}
}

// An Average is the mean score of one bucket, as a percentage.
type Average struct {
	Bound float64 `json:"bound"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Averages computes the per-bucket means. A bucket needs more than minCount
// entries to be averaged; below that its mean is reported as 0.
func (b *Buckets) Averages(minCount int) []Average {
	avgs := make([]Average, len(b.bounds))
	for i, bound := range b.bounds {
		avgs[i] = Average{Bound: bound, Count: b.counts[i]}
		if b.counts[i] > minCount {
			avgs[i].Mean = b.sums[i] / float64(b.counts[i]) * 100
		}
	}
	return avgs
}

// An Accum accumulates the scores of two interleaved methods over any
// number of CSV files. It is an explicit value handed to each aggregation
// pass; nothing here is process-wide state.
type Accum struct {
	M1, M2 *Buckets

	// TotalLen and Rows track the mean reference-alignment length across
	// everything read, both methods counted.
	TotalLen float64
	Rows     int

	metric string
	keyOf  func(Row) float64
}

// ByIdentity accumulates into percent-identity buckets (0-9, 10-19, ...,
// 90-99).
func ByIdentity() *Accum {
	bounds := []float64{9, 19, 29, 39, 49, 59, 69, 79, 89, 99}
	return &Accum{
		M1:     NewBuckets(bounds),
		M2:     NewBuckets(bounds),
		metric: "identity",
		keyOf:  func(r Row) float64 { return r.Identity },
	}
}

// ByLength accumulates into alignment-length buckets of 500 columns each,
// up to 2499.
func ByLength() *Accum {
	bounds := []float64{499, 999, 1499, 1999, 2499}
	return &Accum{
		M1:     NewBuckets(bounds),
		M2:     NewBuckets(bounds),
		metric: "length",
		keyOf:  func(r Row) float64 { return r.Length },
	}
}

// AddFile accumulates the rows of one CSV file. Row parity decides the
// method: even rows (0-based) are method 1, odd rows method 2.
func (a *Accum) AddFile(rows []Row) {
	for i, row := range rows {
		buckets := a.M1
		if i%2 == 1 {
			buckets = a.M2
		}
		buckets.Add(a.keyOf(row), row.Score)

		a.TotalLen += row.Length
		a.Rows++
	}
}

// MeanLength returns the mean reference-alignment length over all rows
// read so far.
func (a *Accum) MeanLength() float64 {
	if a.Rows == 0 {
		return 0
	}
	return a.TotalLen / float64(a.Rows)
}

// WalkDir feeds every '*.csv' file under root into the accumulator,
// recursing through the run/reference/alignment directory levels.
func WalkDir(root string, a *Accum) error {
	return filepath.WalkDir(root, func(fp string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(fp, ".csv") {
			return nil
		}
		f, err := os.Open(fp)
		if err != nil {
			return err
		}
		defer f.Close()

		rows, err := ReadScores(f)
		if err != nil {
			return fmt.Errorf("%s: %s", fp, err)
		}
		a.AddFile(rows)
		return nil
	})
}

// MinBucket is how many entries a bucket needs before its average is
// considered meaningful.
const MinBucket = 10

// Report writes a plain-text table of the bucketed averages of both
// methods.
func (a *Accum) Report(w io.Writer) error {
	tabw := tabwriter.NewWriter(w, 0, 4, 4, ' ', 0)

	fmt.Fprintf(tabw, "%s\tmethod 1\t\tmethod 2\t\n", a.metric)
	fmt.Fprintf(tabw, "\tmean\tcount\tmean\tcount\n")
	m1 := a.M1.Averages(MinBucket)
	m2 := a.M2.Averages(MinBucket)
	for i := range m1 {
		fmt.Fprintf(tabw, "<= %0.0f\t%0.2f\t%d\t%0.2f\t%d\n",
			m1[i].Bound, m1[i].Mean, m1[i].Count, m2[i].Mean, m2[i].Count)
	}
	fmt.Fprintf(tabw, "\n")
	fmt.Fprintf(tabw, "rows\t%d\n", a.Rows)
	fmt.Fprintf(tabw, "mean length\t%0.2f\n", a.MeanLength())
	return tabw.Flush()
}

// WriteJSON writes the bucketed averages of both methods as JSON.
func (a *Accum) WriteJSON(w io.Writer) error {
	report := struct {
		Metric     string    `json:"metric"`
		Rows       int       `json:"rows"`
		MeanLength float64   `json:"mean_length"`
		Method1    []Average `json:"method1"`
		Method2    []Average `json:"method2"`
	}{
		Metric:     a.metric,
		Rows:       a.Rows,
		MeanLength: a.MeanLength(),
		Method1:    a.M1.Averages(MinBucket),
		Method2:    a.M2.Averages(MinBucket),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
