package xlsxio

import (
	"fmt"
	"io"

	"github.com/ukaji3/seatplan-go/internal/atomicfile"
	"github.com/ukaji3/seatplan-go/pkg/seatplan"
	"github.com/xuri/excelize/v2"
)

// Save writes the plan to an xlsx file at path, replacing it atomically.
func Save(plan *seatplan.Plan, path string) error {
	if err := atomicfile.Write(path, func(w io.Writer) error { return Write(plan, w) }); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Write encodes the plan as an xlsx workbook to w.
//
// A seated guest's Table ID cell holds a formula pointing at its table's
// ID cell (e.g. Tables!A3). A reference to a table that no longer exists
// is written as the plain id; unseated guests leave the cell blank.
func Write(plan *seatplan.Plan, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetGuests); err != nil {
		return &SheetError{Sheet: SheetGuests, Op: "write", Err: err}
	}
	for _, name := range []string{SheetTables, SheetMetadata} {
		if _, err := f.NewSheet(name); err != nil {
			return &SheetError{Sheet: name, Op: "write", Err: err}
		}
	}

	tableRows, err := writeTables(f, plan)
	if err != nil {
		return &SheetError{Sheet: SheetTables, Op: "write", Err: err}
	}
	if err := writeGuests(f, plan, tableRows); err != nil {
		return &SheetError{Sheet: SheetGuests, Op: "write", Err: err}
	}
	if err := writeMetadata(f, plan); err != nil {
		return &SheetError{Sheet: SheetMetadata, Op: "write", Err: err}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	return f.SetSheetRow(sheet, "A1", &row)
}

// writeTables writes one row per table and returns table id -> row number.
func writeTables(f *excelize.File, plan *seatplan.Plan) (map[int]int, error) {
	if err := writeHeader(f, SheetTables, TableHeaders); err != nil {
		return nil, err
	}
	rows := make(map[int]int)
	for i, t := range plan.Tables() {
		rowNum := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(SheetTables, cell, &[]any{t.ID, t.Name, t.Capacity, t.X, t.Y}); err != nil {
			return nil, err
		}
		rows[t.ID] = rowNum
	}
	return rows, nil
}

func writeGuests(f *excelize.File, plan *seatplan.Plan, tableRows map[int]int) error {
	if err := writeHeader(f, SheetGuests, GuestHeaders); err != nil {
		return err
	}
	for i, g := range plan.Guests() {
		rowNum := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(SheetGuests, cell, &[]any{g.ID, g.Name, g.Category, g.Size}); err != nil {
			return err
		}
		if g.TableID == nil {
			continue
		}
		refCell, _ := excelize.CoordinatesToCellName(currentGuestLayout.table+1, rowNum)
		if tableRow, ok := tableRows[*g.TableID]; ok {
			if err := f.SetCellFormula(SheetGuests, refCell, tableRowRef(tableRow)); err != nil {
				return err
			}
			continue
		}
		if err := f.SetCellValue(SheetGuests, refCell, *g.TableID); err != nil {
			return err
		}
	}
	return nil
}

func writeMetadata(f *excelize.File, plan *seatplan.Plan) error {
	if err := writeHeader(f, SheetMetadata, MetadataHeaders); err != nil {
		return err
	}
	return f.SetSheetRow(SheetMetadata, "A2", &[]any{plan.NextGuestID(), plan.NextTableID()})
}
