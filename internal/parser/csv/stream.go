package csv

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"csvnest/internal/datasource/file"
	"csvnest/pkg/records"
)

// DefaultBatchSize is used when StreamOptions.BatchSize is zero.
const DefaultBatchSize = 1000

// BatchFunc consumes one completed batch of records. The pipeline does not
// read another line from the source until the call returns; a non-nil error
// aborts the run.
type BatchFunc func(ctx context.Context, batch []records.Record) error

// StreamOptions configures a streaming run. All fields are optional.
type StreamOptions struct {
	// BatchSize bounds each batch handed to the consumer. Zero means
	// DefaultBatchSize; negative is rejected.
	BatchSize int

	// FoldHeaders removes diacritic marks from header names (see ParseHeader).
	FoldHeaders bool

	// OnRowError receives soft per-row errors (column-count mismatches) with
	// the 1-based source line number. When nil, the error is logged and the
	// row dropped either way.
	OnRowError func(line int, err error)
}

// streamState tracks where a run is in its lifecycle. Transitions:
//
//	awaitingHeader → accumulating → (flushing ⇄ accumulating) → done
//
// with failed reachable from any non-terminal state (consumer error or
// source I/O error).
type streamState int

const (
	stateAwaitingHeader streamState = iota
	stateAccumulating
	stateFlushing
	stateDone
	stateFailed
)

// StreamBatches reads the file at path line-by-line, materializes rows
// incrementally, and hands fixed-size batches to onBatch. It returns the
// total number of records delivered.
//
// Backpressure contract: line production is suspended for the duration of
// every onBatch call and resumes only after it returns, so peak memory is
// O(BatchSize) records regardless of file size. Records appear in batches in
// source line order. A final partial batch is flushed at end of input. If
// onBatch fails, no further lines are read, the file handle is released, and
// the failure propagates to the caller.
func StreamBatches(ctx context.Context, path string, opt StreamOptions, onBatch BatchFunc) (int64, error) {
	if opt.BatchSize < 0 {
		return 0, fmt.Errorf("batch size must be positive, got %d", opt.BatchSize)
	}
	rc, err := file.NewLocal(path).Open(ctx)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer rc.Close()
	return streamReader(ctx, rc, opt, onBatch)
}

// streamReader is the reader-level seam behind StreamBatches; tests drive it
// with instrumented readers to verify the suspend/resume discipline.
func streamReader(ctx context.Context, r io.Reader, opt StreamOptions, onBatch BatchFunc) (int64, error) {
	s := &batchStream{
		opt:     opt,
		onBatch: onBatch,
		state:   stateAwaitingHeader,
	}
	if s.opt.BatchSize == 0 {
		s.opt.BatchSize = DefaultBatchSize
	}
	s.batch = make([]records.Record, 0, s.opt.BatchSize)
	return s.run(ctx, r)
}

// batchStream is the streaming pipeline state machine. One instance serves
// exactly one run; independent runs share no state.
type batchStream struct {
	opt     StreamOptions
	onBatch BatchFunc

	state   streamState
	headers []string
	batch   []records.Record
	total   int64
	line    int // 1-based source line of the most recent read
}

// run drives the scan loop to completion. The scanner's buffer is the
// bounded read-ahead; no unbounded buffering happens anywhere on this path.
func (s *batchStream) run(ctx context.Context, r io.Reader) (int64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	for sc.Scan() {
		// Cooperative cancel between lines, never mid-batch.
		select {
		case <-ctx.Done():
			s.state = stateFailed
			return s.total, ctx.Err()
		default:
		}

		s.line++
		if err := s.feed(ctx, strings.TrimRight(sc.Text(), "\r")); err != nil {
			return s.total, err
		}
	}
	if err := sc.Err(); err != nil {
		s.state = stateFailed
		return s.total, fmt.Errorf("read source: %w", err)
	}

	// End of input: flush the partial batch, if any.
	if len(s.batch) > 0 {
		if err := s.flush(ctx); err != nil {
			return s.total, err
		}
	}
	s.state = stateDone
	return s.total, nil
}

// feed advances the state machine by one source line. Blank lines are
// skipped in every state without advancing any count.
func (s *batchStream) feed(ctx context.Context, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	switch s.state {
	case stateAwaitingHeader:
		s.headers = ParseHeader(line, s.opt.FoldHeaders)
		s.state = stateAccumulating
		return nil
	case stateAccumulating:
		rec, err := MaterializeRow(s.headers, line)
		if err != nil {
			if cm, ok := err.(*ColumnMismatchError); ok {
				cm.Line = s.line
			}
			if s.opt.OnRowError != nil {
				s.opt.OnRowError(s.line, err)
			} else {
				log.Printf("skipping %v", err)
			}
			return nil
		}
		s.batch = append(s.batch, rec)
		s.total++
		if len(s.batch) >= s.opt.BatchSize {
			return s.flush(ctx)
		}
		return nil
	default:
		return fmt.Errorf("stream in unexpected state %d", s.state)
	}
}

// flush hands the in-progress batch to the consumer. Ownership of the slice
// transfers for the duration of the call; a fresh backing array is allocated
// afterwards so a consumer that retains the batch never sees it mutated.
func (s *batchStream) flush(ctx context.Context) error {
	s.state = stateFlushing
	if err := s.onBatch(ctx, s.batch); err != nil {
		s.state = stateFailed
		return fmt.Errorf("consume batch: %w", err)
	}
	s.batch = make([]records.Record, 0, s.opt.BatchSize)
	s.state = stateAccumulating
	return nil
}
