// Package datasource abstracts where raw import bytes come from. The parser
// only needs an io.ReadCloser; concrete sources (local files today) live in
// subpackages.
package datasource

import (
	"context"
	"io"
)

// Source opens a readable stream of raw input bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
