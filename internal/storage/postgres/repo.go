// Package postgres implements the storage.Repository interface on top of pgx
// v5. Batches are written with the COPY protocol, which is the fastest bulk
// path pgx offers; the nested address and additional_info record fragments
// land in JSONB columns.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"csvnest/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository is a Postgres-backed storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  storage.Config
}

// NewRepository opens a pgx pool for cfg.DSN. The pool is lazy; a bad DSN
// surfaces on first use rather than here.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	if cfg.Table == "" {
		cfg.Table = "users"
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	return &Repository{pool: pool, cfg: cfg}, nil
}

// EnsureSchema creates the destination table if missing. The schema mirrors
// the imported record shape: scalar name and age, JSONB for the nested
// address subtree and for whatever else the header carried.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id bigserial PRIMARY KEY,
	name text NOT NULL,
	age integer,
	address jsonb,
	additional_info jsonb
)`, pgFQN(r.cfg.Table))
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("postgres: create table: %w", err)
	}
	return nil
}

// InsertRows bulk-loads one batch via COPY. rows must be positional and
// aligned with columns; JSON values are passed as json.RawMessage so pgx
// encodes them into JSONB without re-marshaling.
func (r *Repository) InsertRows(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("postgres: InsertRows: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := r.pool.CopyFrom(ctx, tableIdent(r.cfg.Table), columns, pgx.CopyFromRows(rows))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return n, fmt.Errorf("postgres: copy: %s (%s)", pgErr.Detail, pgErr.SQLState())
		}
		return n, fmt.Errorf("postgres: copy: %w", err)
	}
	return n, nil
}

// Close releases the pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// tableIdent converts "schema.table" (or bare "table") into a pgx.Identifier
// for CopyFrom.
func tableIdent(table string) pgx.Identifier {
	parts := strings.Split(table, ".")
	id := make(pgx.Identifier, 0, len(parts))
	for _, p := range parts {
		id = append(id, p)
	}
	return id
}

// pgIdent double-quotes a single identifier, escaping embedded quotes.
func pgIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// pgFQN quotes a possibly schema-qualified name part by part:
// public.users → "public"."users".
func pgFQN(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}
