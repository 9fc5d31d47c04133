// Package config defines the JSON-serializable configuration model for an
// import run. It is intentionally small and explicit so that import specs can
// be loaded from disk and passed through the program without extra glue.
//
// Decoding is done with the standard library; parser-specific knobs live in a
// light Options bag with typed accessors rather than a third-party config
// framework.
//
// Example (trimmed):
//
//	{
//	  "job":     "users_import",
//	  "source":  { "kind": "file", "file": { "path": "testdata/users.csv" } },
//	  "parser":  { "options": { "batch_size": 1000, "dedupe": true } },
//	  "storage": { "kind": "postgres",
//	               "db": { "dsn": "postgresql://...", "table": "public.users",
//	                       "auto_create_table": true } },
//	  "report":  { "enabled": true }
//	}
package config

import "encoding/json"

// Import is the top-level object decoded from an import spec file.
type Import struct {
	// Job names the run for logs and metrics labels.
	Job string `json:"job"`

	// Source describes where input data comes from.
	Source Source `json:"source"`

	// Parser carries the free-form options bag interpreted by the CSV parser.
	Parser Parser `json:"parser"`

	// Storage selects and configures the sink for imported records.
	Storage Storage `json:"storage"`

	// Report controls the age-distribution report printed after a run.
	Report Report `json:"report"`
}

// Source identifies the data source. Current kind: "file".
type Source struct {
	Kind string     `json:"kind"`
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input CSV.
	Path string `json:"path"`
}

// Parser wraps the options bag for the CSV parser. Recognized keys:
//
//	batch_size   (int)  records per batch handed to storage; default 1000
//	fold_headers (bool) strip diacritics from header names
//	dedupe       (bool) drop duplicate records within each batch
type Parser struct {
	Options Options `json:"options"`
}

// Storage selects the sink used to persist imported records.
type Storage struct {
	// Kind selects the backend: "postgres" or "sqlite".
	Kind string `json:"kind"`
	DB   DBConfig `json:"db"`
}

// DBConfig configures the database sink.
type DBConfig struct {
	// DSN is the connection string (pgxpool for postgres, database/sql for
	// sqlite).
	DSN string `json:"dsn"`

	// Table is the destination table name, optionally schema-qualified for
	// postgres (e.g. "public.users"). Defaults to "users" when empty.
	Table string `json:"table"`

	// AutoCreateTable creates the destination table at startup if missing.
	AutoCreateTable bool `json:"auto_create_table"`
}

// Report configures the post-run age-distribution report.
type Report struct {
	Enabled bool `json:"enabled"`
}

// Options fetches typed values out of an arbitrary JSON object without a
// third-party configuration library. Missing keys and wrong types fall back
// to the provided default.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. encoding/json decodes numbers as
// float64, so both float64 and int are accepted.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// UnmarshalJSON makes a missing or null "options" object decode to a non-nil
// empty map so call sites never have to nil-check.
func (o *Options) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	var tmp map[string]any
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
