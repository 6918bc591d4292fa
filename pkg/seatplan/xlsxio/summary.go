package xlsxio

import (
	"fmt"
	"io"
	"slices"

	"github.com/ukaji3/seatplan-go/internal/atomicfile"
	"github.com/ukaji3/seatplan-go/pkg/seatplan"
	"github.com/ukaji3/seatplan-go/pkg/seatplan/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Header rows of a summary report.
var (
	SummaryGuestHeaders = []string{"Guest Name", "Category", "Group Dimension", "Table"}
	SummaryTableHeaders = []string{"Table Name", "Capacity", "Occupancy", "Status"}
)

// Unseated is the table column value of a guest without a table.
const Unseated = "Unseated"

// WriteSummary writes a read-only report of the plan to path. Unlike Save,
// the report cannot be loaded back.
func WriteSummary(plan *seatplan.Plan, path string) error {
	if err := atomicfile.Write(path, func(w io.Writer) error { return WriteSummaryTo(plan, w) }); err != nil {
		return fmt.Errorf("write summary %s: %w", path, err)
	}
	return nil
}

// WriteSummaryTo encodes the summary report to w. Guests and tables are
// listed by name.
func WriteSummaryTo(plan *seatplan.Plan, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetGuests); err != nil {
		return &SheetError{Sheet: SheetGuests, Op: "write", Err: err}
	}
	if _, err := f.NewSheet(SheetTables); err != nil {
		return &SheetError{Sheet: SheetTables, Op: "write", Err: err}
	}

	tables := plan.Tables()
	names := make(map[int]string, len(tables))
	for _, t := range tables {
		names[t.ID] = t.Name
	}

	col := collate.New(language.Und)
	guests := plan.Guests()
	slices.SortStableFunc(guests, func(a, b models.Guest) int {
		return col.CompareString(a.Name, b.Name)
	})
	slices.SortStableFunc(tables, func(a, b models.Table) int {
		return col.CompareString(a.Name, b.Name)
	})

	if err := writeHeader(f, SheetGuests, SummaryGuestHeaders); err != nil {
		return &SheetError{Sheet: SheetGuests, Op: "write", Err: err}
	}
	for i, g := range guests {
		table := Unseated
		if g.TableID != nil {
			if name, ok := names[*g.TableID]; ok {
				table = name
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetGuests, cell, &[]any{g.Name, g.Category, g.Size, table}); err != nil {
			return &SheetError{Sheet: SheetGuests, Op: "write", Err: err}
		}
	}

	if err := writeHeader(f, SheetTables, SummaryTableHeaders); err != nil {
		return &SheetError{Sheet: SheetTables, Op: "write", Err: err}
	}
	for i, t := range tables {
		occ, _ := plan.Occupancy(t.ID)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetTables, cell, &[]any{t.Name, t.Capacity, occ, tableStatus(t.Capacity, occ)}); err != nil {
			return &SheetError{Sheet: SheetTables, Op: "write", Err: err}
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func tableStatus(capacity, occupancy int) string {
	if occupancy >= capacity {
		return "Full"
	}
	return fmt.Sprintf("%d seats left", capacity-occupancy)
}
