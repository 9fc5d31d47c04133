package importer

import (
	"encoding/json"
	"strings"

	"csvnest/pkg/records"
)

// Columns is the destination column order for every InsertRows call.
var Columns = []string{"name", "age", "address", "additional_info"}

// reserved top-level keys consumed by the scalar columns; everything else
// goes to additional_info.
var reserved = map[string]bool{"name": true, "age": true, "address": true}

// mapUser flattens one nested record into a positional row aligned with
// Columns, and returns the age scalar separately for the report accumulator.
//
//   - name: "name.firstName" and "name.lastName" joined with a space;
//     missing parts degrade to whatever is present. A scalar "name" column
//     is used as-is.
//   - age: the "age" leaf, nil in the row when missing or non-numeric.
//   - address: the "address" subtree as JSON, nil when absent.
//   - additional_info: all remaining top-level keys as one JSON object,
//     nil when there are none.
func mapUser(rec records.Record) (row []any, age any) {
	age = rec["age"]

	var ageCol any
	switch age.(type) {
	case int64, float64:
		ageCol = age
	}

	var addressCol any
	if addr, ok := rec["address"]; ok {
		if b, err := json.Marshal(addr); err == nil {
			addressCol = json.RawMessage(b)
		}
	}

	extra := records.Record{}
	for k, v := range rec {
		if reserved[k] {
			continue
		}
		extra[k] = v
	}
	var extraCol any
	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			extraCol = json.RawMessage(b)
		}
	}

	return []any{userName(rec), ageCol, addressCol, extraCol}, age
}

// userName assembles the full name from the record's name subtree. All
// non-empty scalar leaves among firstName/lastName are joined in that order;
// a scalar name value is returned unchanged.
func userName(rec records.Record) string {
	switch n := rec["name"].(type) {
	case string:
		return n
	case records.Record:
		parts := make([]string, 0, 2)
		for _, k := range []string{"firstName", "lastName"} {
			if s, ok := n[k].(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
