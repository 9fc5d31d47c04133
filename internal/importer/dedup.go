package importer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"csvnest/pkg/records"
)

// dedupBatch drops records that duplicate an earlier record in the same
// batch (keep-first). Identity is a 64-bit xxh3 hash over a canonical
// serialization of the record's leaves, so the memory cost is one uint64 per
// distinct record and is bounded by the batch size.
//
// Scope is intentionally per-batch: a cross-file duplicate set would grow
// without bound and break the pipeline's memory guarantee. The database
// should keep UNIQUE constraints as a backstop where cross-batch duplicates
// matter.
func dedupBatch(batch []records.Record) ([]records.Record, int64) {
	if len(batch) < 2 {
		return batch, 0
	}
	seen := make(map[uint64]bool, len(batch))
	out := batch[:0]
	var dropped int64
	for _, rec := range batch {
		h := recordHash(rec)
		if seen[h] {
			dropped++
			continue
		}
		seen[h] = true
		out = append(out, rec)
	}
	return out, dropped
}

// recordHash hashes a canonical rendering of rec: keys sorted at every
// level, values type-tagged so that the string "35" and the number 35 do not
// collide.
func recordHash(rec records.Record) uint64 {
	var b strings.Builder
	writeCanonical(&b, rec)
	return xxh3.HashString(b.String())
}

func writeCanonical(b *strings.Builder, rec records.Record) {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteByte('{')
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		switch v := rec[k].(type) {
		case records.Record:
			writeCanonical(b, v)
		case map[string]any:
			writeCanonical(b, records.Record(v))
		case string:
			b.WriteString("s:")
			b.WriteString(v)
		case int64:
			b.WriteString("i:")
			b.WriteString(strconv.FormatInt(v, 10))
		case float64:
			b.WriteString("f:")
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		default:
			b.WriteString("?:")
		}
		b.WriteByte('\x1f')
	}
	b.WriteByte('}')
}
