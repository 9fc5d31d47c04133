package csv

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"csvnest/pkg/records"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFixture(t, "name.firstName,name.lastName,age\nRohit,Prasad,35\nAna,Gomez,28\n")
	recs, skipped, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	want := []records.Record{
		{"name": records.Record{"firstName": "Rohit", "lastName": "Prasad"}, "age": int64(35)},
		{"name": records.Record{"firstName": "Ana", "lastName": "Gomez"}, "age": int64(28)},
	}
	if !reflect.DeepEqual(recs, want) {
		t.Fatalf("records = %#v, want %#v", recs, want)
	}
}

func TestLoadFile_SkipsMismatchedRows(t *testing.T) {
	path := writeFixture(t, "a,b\n1,2\nonly-one-field\n3,4\n")
	recs, skipped, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
}

func TestLoadFile_BlankLinesIgnored(t *testing.T) {
	path := writeFixture(t, "\n\nname\n\nAna\n\n\nBen\n")
	recs, _, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
}

func TestLoadFile_HeaderOnly(t *testing.T) {
	path := writeFixture(t, "name,age\n")
	recs, skipped, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(recs) != 0 || skipped != 0 {
		t.Fatalf("records = %d skipped = %d, want 0 and 0", len(recs), skipped)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	for _, content := range []string{"", "\n\n  \n"} {
		path := writeFixture(t, content)
		_, _, err := LoadFile(path)
		if !errors.Is(err, ErrEmptyFile) {
			t.Fatalf("content %q: err = %v, want ErrEmptyFile", content, err)
		}
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// Loading the same file twice yields identical output.
func TestLoadFile_Deterministic(t *testing.T) {
	path := writeFixture(t, "x.y,z\n1,2\n3,4\n")
	first, _, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("runs differ: %#v vs %#v", first, second)
	}
}
