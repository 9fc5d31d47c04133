package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

func TestLocalOpen_ReadsContent(t *testing.T) {
	p := writeTemp(t, "a,b\n1,2\n")
	rc, err := NewLocal(p).Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "a,b\n1,2\n" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestLocalOpen_MissingFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nope.csv")
	_, err := NewLocal(p).Open(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist, got %v", err)
	}
}

func TestLocalOpen_CanceledContext(t *testing.T) {
	p := writeTemp(t, "ignored")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLocal(p).Open(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestExists(t *testing.T) {
	p := writeTemp(t, "x")
	if !Exists(p) {
		t.Fatalf("Exists(%q) = false, want true", p)
	}
	if Exists(filepath.Join(t.TempDir(), "missing")) {
		t.Fatalf("Exists on missing path = true, want false")
	}
	if Exists(t.TempDir()) {
		t.Fatalf("Exists on directory = true, want false")
	}
}
