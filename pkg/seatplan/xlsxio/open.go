package xlsxio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/xuri/excelize/v2"
)

func openFile(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFormat, path, err)
	}
	return f, nil
}

func openReader(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return f, nil
}

func hasSheet(f *excelize.File, name string) bool {
	return slices.Contains(f.GetSheetList(), name)
}

// readSheet returns the raw rows of a sheet, or nil when it does not exist.
func readSheet(f *excelize.File, name string) ([][]string, error) {
	if !hasSheet(f, name) {
		return nil, nil
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &SheetError{Sheet: name, Op: "read", Err: err}
	}
	return rows, nil
}

// activeSheet returns the name of the sheet selected when the workbook was saved.
func activeSheet(f *excelize.File) string {
	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		if sheets := f.GetSheetList(); len(sheets) > 0 {
			name = sheets[0]
		}
	}
	return name
}
