package xlsxio

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// GetHeaders returns the non-empty cells of the first row of the workbook's
// active sheet. An empty sheet yields an empty slice.
func GetHeaders(path string) ([]string, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return headers(f)
}

// ReadHeaders is GetHeaders for a workbook read from r.
func ReadHeaders(r io.Reader) ([]string, error) {
	f, err := openReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return headers(f)
}

func headers(f *excelize.File) ([]string, error) {
	row, err := firstRow(f, activeSheet(f))
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, cell := range row {
		if cell != "" {
			out = append(out, cell)
		}
	}
	return out, nil
}

// firstRow streams only the first row of a sheet.
func firstRow(f *excelize.File, sheet string) ([]string, error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, &SheetError{Sheet: sheet, Op: "read", Err: err}
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Error()
	}
	cols, err := rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &SheetError{Sheet: sheet, Op: "read", Err: err}
	}
	return cols, nil
}

// headerIndex maps normalized header names to their column index.
// The first occurrence of a repeated header wins.
type headerIndex map[string]int

func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

func (h headerIndex) lookup(name string) (int, bool) {
	i, ok := h[normalizeHeader(name)]
	return i, ok
}

// normalizeHeader trims a header and puts it in NFC form, so headers typed
// with combining marks match their precomposed spelling.
func normalizeHeader(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
