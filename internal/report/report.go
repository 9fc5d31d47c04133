// Package report builds the age-distribution summary printed after a
// successful import. Ages are bucketed into four groups and reported as
// percentages of the rows that carried a usable age.
//
// The accumulator is incremental: the importer feeds it batch by batch, so
// the report costs no extra pass over the data and no extra memory beyond
// four counters.
package report

import "fmt"

// bucket boundaries: < 20, 20–40, 40–60, > 60. The 20/40/60 edges belong to
// the lower bucket ("20 to 40" includes both 20 and 40; "> 60" is strict).
var bucketNames = [4]string{"< 20", "20 to 40", "40 to 60", "> 60"}

// AgeDistribution accumulates age-bucket counts. The zero value is ready to
// use. Not safe for concurrent use; the import pipeline is sequential.
type AgeDistribution struct {
	counts  [4]int64
	total   int64
	unknown int64 // rows whose age was missing or non-numeric
}

// Add records one age.
func (d *AgeDistribution) Add(age int64) {
	switch {
	case age < 20:
		d.counts[0]++
	case age <= 40:
		d.counts[1]++
	case age <= 60:
		d.counts[2]++
	default:
		d.counts[3]++
	}
	d.total++
}

// AddValue records a scalar that may or may not be an age. Numeric values
// (int64 or float64, as produced by the parser) count toward a bucket;
// anything else counts as unknown.
func (d *AgeDistribution) AddValue(v any) {
	switch n := v.(type) {
	case int64:
		d.Add(n)
	case float64:
		d.Add(int64(n))
	default:
		d.unknown++
	}
}

// Total returns the number of ages recorded (unknowns excluded).
func (d *AgeDistribution) Total() int64 { return d.total }

// Unknown returns the number of rows without a usable age.
func (d *AgeDistribution) Unknown() int64 { return d.unknown }

// Percent returns the percentage share of bucket i, rounded to the nearest
// integer. With zero recorded ages every bucket is 0.
func (d *AgeDistribution) Percent(i int) int64 {
	if d.total == 0 {
		return 0
	}
	return (d.counts[i]*100 + d.total/2) / d.total
}

// Table renders the distribution as printable lines, one header plus one
// line per bucket.
func (d *AgeDistribution) Table() []string {
	out := make([]string, 0, 5)
	out = append(out, fmt.Sprintf("%-12s %s", "Age-Group", "% Distribution"))
	for i, name := range bucketNames {
		out = append(out, fmt.Sprintf("%-12s %d", name, d.Percent(i)))
	}
	return out
}
