// Package csv implements the streaming line-oriented parser that turns flat,
// dot-notation CSV rows into nested records. It offers two entry points: a
// whole-file loader for small inputs and a batched streaming pipeline with
// backpressure for large ones.
//
// The field splitter is intentionally NOT encoding/csv. The dialect here is a
// plain quote-toggle scan: a '"' flips an in-quote flag and is consumed, a
// ',' outside quotes ends the field, and nothing else is special. There is no
// doubled-quote escape and no embedded-newline support, and an unterminated
// quote is accepted silently. Upgrading to RFC 4180 would silently change how
// existing inputs parse, so the simplified dialect is kept as-is.
package csv

import "strings"

// SplitLine splits one raw line into its ordered field values, honoring
// quote regions. Each field is trimmed of leading and trailing whitespace.
// Quote characters never survive into the output. The final accumulator is
// always pushed, so a trailing comma produces a trailing empty field.
//
// Pure function of the input line.
func SplitLine(line string) []string {
	fields := make([]string, 0, 8)
	var cur strings.Builder
	inQuote := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}
