// This file adds a lightweight linter for Import values: static checks over a
// decoded spec returning a list of issues (errors and warnings) that callers
// can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates an issue that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates an issue worth surfacing that need not block.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config (e.g. "storage.kind").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements error so an Issue can be treated as one where convenient.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// knownStorageKinds mirrors the backends registered by internal/storage/all.
var knownStorageKinds = map[string]bool{"postgres": true, "sqlite": true}

// ValidateImport performs static validation of an import spec. It does not
// mutate the spec and does not touch the filesystem or network; existence of
// the input file is checked at run time, not here.
func ValidateImport(c Import) []Issue {
	var issues []Issue

	add := func(sev IssueSeverity, path, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(c.Job) == "" {
		add(SeverityWarning, "job", "job name is empty; logs and metrics will use a generic label")
	}

	switch c.Source.Kind {
	case "", "file":
		if strings.TrimSpace(c.Source.File.Path) == "" {
			add(SeverityError, "source.file.path", "input path is required")
		}
	default:
		add(SeverityError, "source.kind", "unknown source kind %q (only \"file\" is supported)", c.Source.Kind)
	}

	if bs := c.Parser.Options.Int("batch_size", 0); bs < 0 {
		add(SeverityError, "parser.options.batch_size", "batch_size must be positive, got %d", bs)
	}

	if !knownStorageKinds[c.Storage.Kind] {
		add(SeverityError, "storage.kind", "unknown storage kind %q", c.Storage.Kind)
	}
	if strings.TrimSpace(c.Storage.DB.DSN) == "" {
		add(SeverityError, "storage.db.dsn", "DSN is required")
	}
	if strings.TrimSpace(c.Storage.DB.Table) == "" {
		add(SeverityWarning, "storage.db.table", "table is empty; defaulting to \"users\"")
	}

	return issues
}

// HasError reports whether any issue in the slice is of error severity.
func HasError(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}
