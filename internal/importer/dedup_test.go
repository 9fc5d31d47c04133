package importer

import (
	"testing"

	"csvnest/pkg/records"
)

func TestDedupBatch_KeepsFirst(t *testing.T) {
	batch := []records.Record{
		{"name": "a", "age": int64(1)},
		{"name": "b", "age": int64(2)},
		{"name": "a", "age": int64(1)},
		{"name": "a", "age": int64(1)},
	}
	out, dropped := dedupBatch(batch)
	if dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	if len(out) != 2 {
		t.Fatalf("kept = %d, want 2", len(out))
	}
	if out[0]["name"] != "a" || out[1]["name"] != "b" {
		t.Fatalf("order changed: %v", out)
	}
}

func TestDedupBatch_NestedEquality(t *testing.T) {
	a := records.Record{"name": records.Record{"firstName": "X", "lastName": "Y"}}
	b := records.Record{"name": records.Record{"lastName": "Y", "firstName": "X"}}
	out, dropped := dedupBatch([]records.Record{a, b})
	if dropped != 1 || len(out) != 1 {
		t.Fatalf("key order affected identity: kept %d dropped %d", len(out), dropped)
	}
}

// The string "35" and the number 35 are different values and must not be
// treated as duplicates of each other.
func TestDedupBatch_TypesDistinct(t *testing.T) {
	out, dropped := dedupBatch([]records.Record{
		{"age": int64(35)},
		{"age": "35"},
	})
	if dropped != 0 || len(out) != 2 {
		t.Fatalf("typed values collided: kept %d dropped %d", len(out), dropped)
	}
}

func TestDedupBatch_SmallBatches(t *testing.T) {
	if out, dropped := dedupBatch(nil); out != nil || dropped != 0 {
		t.Fatalf("nil batch: %v %d", out, dropped)
	}
	one := []records.Record{{"a": "b"}}
	if out, dropped := dedupBatch(one); len(out) != 1 || dropped != 0 {
		t.Fatalf("single batch: %v %d", out, dropped)
	}
}

func TestRecordHash_Stable(t *testing.T) {
	rec := records.Record{"a": int64(1), "b": records.Record{"c": "x"}}
	if recordHash(rec) != recordHash(rec) {
		t.Fatal("hash not stable across calls")
	}
}
