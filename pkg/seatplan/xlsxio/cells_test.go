package xlsxio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
		state cellState
	}{
		{"10", 10, cellOK},
		{"10.0", 10, cellOK},
		{" 7 ", 7, cellOK},
		{"3.9", 3, cellOK},
		{"-2", -2, cellOK},
		{"1e2", 100, cellOK},
		{"", 0, cellBlank},
		{"   ", 0, cellBlank},
		{"abc", 0, cellInvalid},
		{"NaN", 0, cellInvalid},
		{"Inf", 0, cellInvalid},
		{"1e20", 0, cellInvalid},
	}

	for _, tt := range tests {
		got, st := parseInt(tt.input)
		assert.Equal(t, tt.state, st, "parseInt(%q) state", tt.input)
		assert.Equal(t, tt.want, got, "parseInt(%q)", tt.input)
	}
}

func TestIntOr(t *testing.T) {
	v, st := intOr("", 100)
	assert.Equal(t, 100, v)
	assert.Equal(t, cellBlank, st)

	v, st = intOr("x", 100)
	assert.Equal(t, 100, v)
	assert.Equal(t, cellInvalid, st)

	v, st = intOr("42.0", 100)
	assert.Equal(t, 42, v)
	assert.Equal(t, cellOK, st)
}

func TestCellAt(t *testing.T) {
	row := []string{"a", "b"}
	assert.Equal(t, "b", cellAt(row, 1))
	assert.Equal(t, "", cellAt(row, 2))
	assert.Equal(t, "", cellAt(row, -1))
}

func TestParseCellRef(t *testing.T) {
	tests := []struct {
		formula string
		want    cellRef
		ok      bool
	}{
		{"Tables!A2", cellRef{Sheet: "Tables", Cell: "A2"}, true},
		{"=Tables!$A$3", cellRef{Sheet: "Tables", Cell: "A3"}, true},
		{"'My Tables'!A4", cellRef{Sheet: "My Tables", Cell: "A4"}, true},
		{"'O''Brien'!B1", cellRef{Sheet: "O'Brien", Cell: "B1"}, true},
		{"c7", cellRef{Sheet: "Guests", Cell: "C7"}, true},
		{"SUM(A1:A3)", cellRef{}, false},
		{"Tables!A1:A3", cellRef{}, false},
		{"!A1", cellRef{}, false},
		{"", cellRef{}, false},
	}

	for _, tt := range tests {
		got, ok := parseCellRef(tt.formula, SheetGuests)
		assert.Equal(t, tt.ok, ok, "parseCellRef(%q)", tt.formula)
		assert.Equal(t, tt.want, got, "parseCellRef(%q)", tt.formula)
	}
}

func TestDetectGuestLayout(t *testing.T) {
	current := [][]string{{"ID", "Name", "Category", "Capacity", "Table ID"}, {"1", "Ann", "Fam", "2"}}
	assert.Equal(t, currentGuestLayout, detectGuestLayout(current))

	legacy := [][]string{{"ID", "Name", "Category", "Table ID"}, {"1", "Ann", "Fam", "1"}}
	assert.Equal(t, legacyGuestLayout, detectGuestLayout(legacy))

	headerless := [][]string{{}, {"1", "Ann", "Fam", "2", "1"}}
	assert.Equal(t, currentGuestLayout, detectGuestLayout(headerless))
}
