// Package records defines the nested record model produced by the CSV
// parser. A Record is a string-keyed map whose values are either scalars
// (string, int64, float64) or nested Records, mirroring the dotted paths of
// the source header.
//
// The package provides the two structural primitives the parser is built on:
//
//   - FromPath builds a singleton record for one dotted path and one value.
//   - Merge folds such singletons into an accumulating record without
//     clobbering sibling keys at any depth.
//
// Both are deterministic and allocation-light; neither touches I/O.
package records

import "strings"

// Record is one parsed row as a nested map. For a fixed header, every record
// emitted for that header has the same key skeleton; only leaf values differ.
type Record map[string]any

// SplitPath splits a dotted path into its non-empty, trimmed segments.
// "name.firstName" → ["name", "firstName"]; "age" → ["age"]. Segments that
// are empty after trimming (e.g. from "a..b" or trailing dots) are dropped.
func SplitPath(path string) []string {
	parts := strings.Split(path, ".")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		segs = append(segs, p)
	}
	return segs
}

// FromPath builds a singleton Record whose nesting skeleton matches the
// dotted path and whose single leaf holds v. A single-segment path yields a
// flat one-key record. A path with no usable segments yields an empty record.
func FromPath(path string, v any) Record {
	segs := SplitPath(path)
	rec := Record{}
	if len(segs) == 0 {
		return rec
	}
	cur := rec
	for _, s := range segs[:len(segs)-1] {
		next := Record{}
		cur[s] = next
		cur = next
	}
	cur[segs[len(segs)-1]] = v
	return rec
}

// Merge folds src into dst as a recursive structural union. When both sides
// of a key hold nested maps the merge descends; otherwise the source value is
// assigned, overwriting whatever dst held (last write wins per leaf).
//
// Slices are deliberately not treated as containers: a list-valued field is
// assigned wholesale, never merged element-wise.
func Merge(dst, src Record) {
	for k, sv := range src {
		sm, sok := asRecord(sv)
		if sok {
			if dm, dok := asRecord(dst[k]); dok {
				Merge(dm, sm)
				dst[k] = dm
				continue
			}
		}
		dst[k] = sv
	}
}

// asRecord reports whether v is a nested map value and returns it as a
// Record. Both Record and plain map[string]any are accepted so records that
// round-tripped through encoding/json still merge correctly.
func asRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		return Record(m), true
	default:
		return nil, false
	}
}
