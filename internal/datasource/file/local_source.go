// Package file implements the local-filesystem data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local opens files from the local disk. The zero value is not usable; build
// one with NewLocal.
type Local struct{ path string }

// NewLocal binds a Local source to path. The value is safe to share across
// goroutines; each Open returns an independent file handle.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open opens the configured path for reading. A context that is already done
// short-circuits before touching the filesystem. Errors are wrapped with the
// path while staying transparent to errors.Is (e.g. os.ErrNotExist).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}

// Exists reports whether path names an existing regular file. Used by config
// validation and entrypoints for an early, friendly failure before a run.
func Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
