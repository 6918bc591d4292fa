package xlsxio

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellRef is a single-cell reference such as Tables!$A$2.
type cellRef struct {
	Sheet string
	Cell  string
}

// tableRowRef returns the formula that points a guest at a table row.
func tableRowRef(row int) string {
	return fmt.Sprintf("%s!A%d", SheetTables, row)
}

// parseCellRef parses a formula consisting of one cell reference.
// Accepted forms: Sheet!$A$1, 'Sheet name'!A1, =Sheet!A1 and A1 (resolved
// against defaultSheet). Anything else, such as a function call or a range,
// is rejected.
func parseCellRef(formula, defaultSheet string) (cellRef, bool) {
	s := strings.TrimSpace(formula)
	s = strings.TrimPrefix(s, "=")
	if s == "" {
		return cellRef{}, false
	}

	sheet := defaultSheet
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		sheet = s[:idx]
		s = s[idx+1:]
		if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
	}
	if sheet == "" {
		return cellRef{}, false
	}

	s = strings.ReplaceAll(s, "$", "")
	col, row, err := excelize.CellNameToCoordinates(s)
	if err != nil {
		return cellRef{}, false
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return cellRef{}, false
	}
	return cellRef{Sheet: sheet, Cell: cell}, true
}

// resolveCell returns the value a cell shows. Plain cells return raw as read.
// Formula cells are resolved by following a single-cell reference, then by
// evaluating the formula, and finally fall back to the cached value in raw.
func resolveCell(f *excelize.File, sheet string, col, row int, raw string) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	formula, err := f.GetCellFormula(sheet, name)
	if err != nil || formula == "" {
		return raw
	}
	if ref, ok := parseCellRef(formula, sheet); ok {
		v, err := f.GetCellValue(ref.Sheet, ref.Cell, excelize.Options{RawCellValue: true})
		if err == nil && strings.TrimSpace(v) != "" {
			return v
		}
	}
	if v, err := f.CalcCellValue(sheet, name, excelize.Options{RawCellValue: true}); err == nil && strings.TrimSpace(v) != "" {
		return v
	}
	return raw
}
