package csv

import (
	"errors"
	"fmt"
)

// ErrEmptyFile is returned by LoadFile when the input contains zero non-blank
// lines. A header-only file is not empty; it yields zero records and no error.
var ErrEmptyFile = errors.New("file has no usable lines")

// ColumnMismatchError describes a data row whose field count differs from
// the header. It is a soft, per-row condition: the row is dropped with a
// warning and parsing continues.
type ColumnMismatchError struct {
	Line int // 1-based line number in the source; 0 when unknown
	Want int // header column count
	Got  int // split field count
}

func (e *ColumnMismatchError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("row %d: incorrect number of fields (expected %d, got %d)", e.Line, e.Want, e.Got)
	}
	return fmt.Sprintf("incorrect number of fields (expected %d, got %d)", e.Want, e.Got)
}
