// Package storage defines the backend-agnostic persistence abstraction for
// imported records and a small factory keyed by storage kind. Concrete
// backends live in subpackages and register themselves in init; importing
// csvnest/internal/storage/all (even blank) makes every built-in backend
// available.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Config carries everything a backend needs to open a Repository.
type Config struct {
	Kind            string // "postgres", "sqlite"
	DSN             string
	Table           string // destination table; backends default to "users"
	AutoCreateTable bool
}

// Repository is the minimal sink interface used by the importer. Rows are
// positional and aligned with the columns slice, matching the bulk-insert
// APIs of the backends (COPY for postgres, multi-row INSERT for sqlite).
type Repository interface {
	// EnsureSchema creates the destination table if it does not exist.
	EnsureSchema(ctx context.Context) error

	// InsertRows writes one batch. It returns the number of rows actually
	// inserted; on error that count covers the rows confirmed before failure.
	InsertRows(ctx context.Context, columns []string, rows [][]any) (int64, error)

	Close() error
}

// Factory constructs a Repository from a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.Mutex
	factories = map[string]Factory{}
)

// Register installs a backend factory under kind. Called from backend init
// functions; registering the same kind twice is a programming error.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := factories[kind]; dup {
		panic("storage: duplicate Register for kind " + kind)
	}
	factories[kind] = f
}

// New opens a Repository for cfg.Kind. Unknown kinds fail with the list of
// registered backends so a typo in a spec file is easy to diagnose.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.Lock()
	f, ok := factories[cfg.Kind]
	mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, Kinds())
	}
	return f(ctx, cfg)
}

// Kinds returns the registered backend kinds in sorted order.
func Kinds() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
