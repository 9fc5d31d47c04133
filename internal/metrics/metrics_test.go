package metrics

import (
	"errors"
	"testing"
	"time"
)

type fakeBackend struct {
	counters  map[string]float64
	durations map[string]float64
	labels    map[string]Labels
	flushed   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		counters:  map[string]float64{},
		durations: map[string]float64{},
		labels:    map[string]Labels{},
	}
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.counters[name] += delta
	f.labels[name] = labels
}

func (f *fakeBackend) ObserveDuration(name string, seconds float64, labels Labels) {
	f.durations[name] = seconds
	f.labels[name] = labels
}

func (f *fakeBackend) Flush() error {
	f.flushed++
	return nil
}

func withBackend(t *testing.T, b Backend) {
	t.Helper()
	prev := backend
	SetBackend(b)
	t.Cleanup(func() { backend = prev })
}

func TestDefaultBackendIsSafe(t *testing.T) {
	// No backend configured: calls must not panic and Flush must be nil.
	RecordStep("job", "step", nil, time.Second)
	RecordRows("job", "processed", 10)
	RecordBatches("job", 1)
	if err := Flush(); err != nil {
		t.Fatalf("Flush = %v", err)
	}
}

func TestSetBackend_NilKeepsCurrent(t *testing.T) {
	fb := newFakeBackend()
	withBackend(t, fb)
	SetBackend(nil)
	RecordBatches("j", 1)
	if fb.counters["import_batches_total"] != 1 {
		t.Fatal("nil SetBackend replaced the active backend")
	}
}

func TestRecordStep(t *testing.T) {
	fb := newFakeBackend()
	withBackend(t, fb)

	RecordStep("users_import", "import", nil, 1500*time.Millisecond)
	if got := fb.counters["import_step_total"]; got != 1 {
		t.Fatalf("step counter = %v", got)
	}
	if got := fb.durations["import_step_duration_seconds"]; got != 1.5 {
		t.Fatalf("duration = %v", got)
	}
	if fb.labels["import_step_total"]["status"] != "success" {
		t.Fatalf("labels = %v", fb.labels["import_step_total"])
	}

	RecordStep("users_import", "import", errors.New("boom"), time.Second)
	if fb.labels["import_step_total"]["status"] != "failure" {
		t.Fatalf("labels after error = %v", fb.labels["import_step_total"])
	}
}

func TestRecordRows(t *testing.T) {
	fb := newFakeBackend()
	withBackend(t, fb)

	RecordRows("j", "inserted", 7)
	RecordRows("j", "inserted", 3)
	RecordRows("j", "skipped", 0)  // zero deltas are dropped
	RecordRows("j", "skipped", -1) // so are negative ones
	if got := fb.counters["import_records_total"]; got != 10 {
		t.Fatalf("records counter = %v", got)
	}
	if fb.labels["import_records_total"]["kind"] != "inserted" {
		t.Fatalf("labels = %v", fb.labels["import_records_total"])
	}
}

func TestFlushDelegates(t *testing.T) {
	fb := newFakeBackend()
	withBackend(t, fb)
	if err := Flush(); err != nil {
		t.Fatal(err)
	}
	if fb.flushed != 1 {
		t.Fatalf("flushed = %d", fb.flushed)
	}
}
