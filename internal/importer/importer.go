// Package importer executes a full import run: it drives the streaming CSV
// parser, maps each nested record onto the users table shape, writes batches
// through a storage.Repository, and accumulates the age-distribution report.
//
// The database write happens inside the parser's batch callback, so storage
// backpressure propagates all the way to the file reader: no line is read
// while a batch is in flight.
package importer

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"csvnest/internal/config"
	"csvnest/internal/metrics"
	csvparser "csvnest/internal/parser/csv"
	"csvnest/internal/report"
	"csvnest/internal/storage"
	"csvnest/pkg/records"
)

// Summary holds the end-of-run statistics for one import.
type Summary struct {
	Records    int64 `json:"records"`    // rows successfully materialized
	Skipped    int64 `json:"skipped"`    // rows dropped for column mismatches
	Duplicates int64 `json:"duplicates"` // rows dropped by in-batch dedup
	Inserted   int64 `json:"inserted"`   // rows confirmed by storage
	Batches    int64 `json:"batches"`    // storage batches flushed
}

// Distribution is the age report accumulated during a run.
type Distribution = report.AgeDistribution

// Run executes one import described by spec against repo and logs the
// age-distribution report when the spec enables it. The repo is supplied by
// the caller (and stays owned by it), so entrypoints can share a pool across
// runs. On failure the summary carries the counts reached so far.
func Run(ctx context.Context, spec config.Import, repo storage.Repository) (Summary, error) {
	sum, dist, err := RunWithReport(ctx, spec, repo)
	if err != nil {
		return sum, err
	}
	if spec.Report.Enabled {
		for _, line := range dist.Table() {
			log.Println(line)
		}
		if u := dist.Unknown(); u > 0 {
			log.Printf("report: %d rows had no usable age", u)
		}
	}
	return sum, nil
}

// RunWithReport behaves like Run but hands the age distribution back to the
// caller instead of logging it, for callers (the web UI) that render it
// themselves.
func RunWithReport(ctx context.Context, spec config.Import, repo storage.Repository) (Summary, *Distribution, error) {
	var (
		sum   Summary
		dist  Distribution
		start = time.Now()
	)
	job := spec.Job
	if job == "" {
		job = "csvnest"
	}

	rowAgg := newErrAgg(3)
	opt := csvparser.StreamOptions{
		BatchSize:   spec.Parser.Options.Int("batch_size", 0),
		FoldHeaders: spec.Parser.Options.Bool("fold_headers", false),
		OnRowError: func(line int, err error) {
			sum.Skipped++
			rowAgg.add(err.Error())
		},
	}
	dedupe := spec.Parser.Options.Bool("dedupe", false)

	total, err := csvparser.StreamBatches(ctx, spec.Source.File.Path, opt, func(ctx context.Context, batch []records.Record) error {
		if dedupe {
			var dropped int64
			batch, dropped = dedupBatch(batch)
			sum.Duplicates += dropped
		}

		rows := make([][]any, 0, len(batch))
		for _, rec := range batch {
			row, age := mapUser(rec)
			rows = append(rows, row)
			dist.AddValue(age)
		}

		n, insErr := repo.InsertRows(ctx, Columns, rows)
		sum.Inserted += n
		if insErr != nil {
			return insErr
		}
		sum.Batches++
		metrics.RecordBatches(job, 1)
		if sum.Batches%10 == 0 {
			log.Printf("loader: batches=%d inserted=%d", sum.Batches, sum.Inserted)
		}
		return nil
	})
	sum.Records = total

	metrics.RecordRows(job, "processed", sum.Records)
	metrics.RecordRows(job, "skipped", sum.Skipped)
	metrics.RecordRows(job, "duplicates", sum.Duplicates)
	metrics.RecordRows(job, "inserted", sum.Inserted)
	metrics.RecordStep(job, "import", err, time.Since(start))

	rowAgg.logSummary("row errors")
	if err != nil {
		return sum, &dist, fmt.Errorf("import %s: %w", job, err)
	}

	log.Printf(
		"summary: processed=%d skipped=%d duplicates=%d inserted=%d batches=%d elapsed=%s",
		sum.Records, sum.Skipped, sum.Duplicates, sum.Inserted, sum.Batches,
		time.Since(start).Round(time.Millisecond),
	)
	return sum, &dist, nil
}

// errAgg aggregates soft errors, keeping the first N messages and a total
// count, so a million bad rows produce a three-line summary instead of a
// million log lines.
type errAgg struct {
	mu    sync.Mutex
	limit int
	count int
	first []string
}

func newErrAgg(limit int) *errAgg {
	return &errAgg{limit: limit}
}

func (a *errAgg) add(msg string) {
	a.mu.Lock()
	if a.count < a.limit {
		a.first = append(a.first, msg)
	}
	a.count++
	a.mu.Unlock()
}

func (a *errAgg) logSummary(label string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.count == 0 {
		return
	}
	log.Printf("%s: %d total, first %d:", label, a.count, len(a.first))
	for _, m := range a.first {
		log.Printf("  %s", m)
	}
}
