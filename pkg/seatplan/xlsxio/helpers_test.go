package xlsxio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sheetData describes one sheet of a test workbook. Formulas are applied
// after the rows, keyed by cell name.
type sheetData struct {
	name     string
	rows     [][]any
	formulas map[string]string
}

// writeWorkbook saves the sheets, first one active, to a temp file.
func writeWorkbook(t *testing.T, sheets ...sheetData) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.name, cell, &row))
		}
		for cell, formula := range s.formulas {
			require.NoError(t, f.SetCellFormula(s.name, cell, formula))
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func tablesSheet(rows ...[]any) sheetData {
	return sheetData{name: SheetTables, rows: append([][]any{{"ID", "Name", "Capacity", "X", "Y"}}, rows...)}
}

func guestsSheet(rows ...[]any) sheetData {
	return sheetData{name: SheetGuests, rows: append([][]any{{"ID", "Name", "Category", "Capacity", "Table ID"}}, rows...)}
}

func metadataSheet(nextGuest, nextTable any) sheetData {
	return sheetData{name: SheetMetadata, rows: [][]any{{"Next Guest ID", "Next Table ID"}, {nextGuest, nextTable}}}
}

func intPtr(v int) *int { return &v }
