package xlsxio

import (
	"math"
	"strconv"
	"strings"
)

// cellState classifies a numeric cell.
type cellState int

const (
	cellBlank cellState = iota
	cellOK
	cellInvalid
)

// parseInt reads a cell expected to hold a whole number. Integers, floats
// and numeric strings all go through float parsing and are truncated, so
// "10", "10.0" and 10.0 all yield 10.
func parseInt(s string) (int, cellState) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, cellBlank
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, cellInvalid
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, cellInvalid
	}
	return int(math.Trunc(f)), cellOK
}

// intOr returns the parsed value of s, or def when s is blank or invalid.
func intOr(s string, def int) (int, cellState) {
	v, st := parseInt(s)
	if st != cellOK {
		return def, st
	}
	return v, st
}

// cellAt returns the cell at idx, or "" for cells past the end of the row.
// Readers trim trailing empty cells, so short rows are normal.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
