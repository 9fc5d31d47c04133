package csv

import (
	"fmt"
	"log"
	"os"
	"strings"

	"csvnest/pkg/records"
)

// LoadFile reads the entire file at path and returns the ordered sequence of
// records plus the number of rows skipped for column-count mismatches.
//
// The first non-blank line is the header; blank lines before and after it are
// ignored. A file with zero non-blank lines fails with ErrEmptyFile; a file
// with only a header succeeds with zero records.
//
// The whole file is buffered in memory before processing, so this path is
// intended for small inputs only. Use StreamBatches for anything large.
func LoadFile(path string) ([]records.Record, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	var (
		headers []string
		out     []records.Record
		skipped int
	)
	for n, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if headers == nil {
			headers = ParseHeader(line, false)
			continue
		}
		rec, err := MaterializeRow(headers, line)
		if err != nil {
			log.Printf("skipping row %d: %v", n+1, err)
			skipped++
			continue
		}
		out = append(out, rec)
	}
	if headers == nil {
		return nil, 0, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	return out, skipped, nil
}
