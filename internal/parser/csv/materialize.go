package csv

import (
	"strconv"
	"strings"

	"csvnest/pkg/records"
)

// MaterializeRow turns one data line plus the fixed header list into one
// nested record. If the split field count does not equal the header count it
// returns a *ColumnMismatchError (Line unset; the caller knows the line
// number) and the row must be skipped, never aborting the surrounding parse.
//
// Each value is trimmed and classified: numeric literals become numbers,
// everything else stays a string. The per-row accumulator is fresh on every
// call, so emitted records share no structure.
func MaterializeRow(headers []string, line string) (records.Record, error) {
	fields := SplitLine(line)
	if len(fields) != len(headers) {
		return nil, &ColumnMismatchError{Want: len(headers), Got: len(fields)}
	}
	rec := records.Record{}
	for i, h := range headers {
		v := coerceScalar(strings.TrimSpace(fields[i]))
		records.Merge(rec, records.FromPath(h, v))
	}
	return rec, nil
}

// coerceScalar reclassifies a trimmed field value. Values matching the
// numeric-literal grammar become int64 (no fraction) or float64 (with
// fraction); anything else, including the empty string, stays a string.
func coerceScalar(s string) any {
	if !isNumeric(s) {
		return s
	}
	if !strings.Contains(s, ".") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		// Overflows int64; fall through to float.
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// isNumeric reports whether s matches the numeric-literal grammar: optional
// sign, one or more digits, optionally a decimal point followed by one or
// more digits. The empty string is explicitly non-numeric, as is anything
// containing whitespace ("A-563" and " 35 " both stay strings).
func isNumeric(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return false
	}
	if i == len(s) {
		return true
	}
	if s[i] != '.' {
		return false
	}
	i++
	start = i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > start && i == len(s)
}
