package xlsxio

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// SheetError represents a failure reading or writing one workbook sheet.
type SheetError struct {
	Sheet string
	Op    string // "read", "write"
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s sheet %q: %v", e.Op, e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// ColumnNotFoundError reports an import column name that is not in the
// header row. Available lists the headers that were found.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in headers: [%s]", e.Column, strings.Join(e.Available, ", "))
}
