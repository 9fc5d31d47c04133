package csv

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\ufeff"

// ParseHeader splits the header line into its column names. The list is
// parsed once per run and fixed for the lifetime of that run. When fold is
// true, combining diacritics are removed from each name so that accented
// source headers map onto plain-ASCII column keys.
func ParseHeader(line string, fold bool) []string {
	h := SplitLine(line)
	if len(h) > 0 {
		h[0] = strings.TrimPrefix(h[0], utf8BOM)
	}
	if fold {
		for i := range h {
			h[i] = foldDiacritics(h[i])
		}
	}
	return h
}

// foldT decomposes, drops combining marks, and recomposes. "Příjmení" → "Prijmeni".
var foldT = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldDiacritics returns s with diacritic marks removed. On transform errors
// the input is returned unchanged; header folding is best-effort.
func foldDiacritics(s string) string {
	out, _, err := transform.String(foldT, s)
	if err != nil {
		return s
	}
	return out
}
