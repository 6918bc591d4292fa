package xlsxio

import (
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/seatplan-go/pkg/seatplan"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ImportResult summarizes a group import.
type ImportResult struct {
	// Created is the number of guest entries added.
	Created int
	// Seats is the total size of the added entries.
	Seats int
	// Skipped counts data rows without a group name or with a count below 1.
	Skipped int
}

// group is one qualifying row of a group sheet.
type group struct {
	name     string
	category string
	count    int
}

// ImportGroups adds one unseated guest per row of the active sheet of the
// workbook at path. Columns are matched by header name. The guest's size is
// the row's count and its category is the category cell, or the group name
// when there is no category. Tables and seating are never touched.
//
// A column name missing from the header row returns a *ColumnNotFoundError
// before anything is added.
func ImportGroups(path string, plan *seatplan.Plan, opts ImportOptions) (ImportResult, error) {
	f, err := openFile(path)
	if err != nil {
		return ImportResult{}, err
	}
	defer f.Close()
	res, err := importGroups(f, plan, opts)
	if err != nil {
		return res, fmt.Errorf("import %s: %w", path, err)
	}
	return res, nil
}

// ReadGroups is ImportGroups for a workbook read from r.
func ReadGroups(r io.Reader, plan *seatplan.Plan, opts ImportOptions) (ImportResult, error) {
	f, err := openReader(r)
	if err != nil {
		return ImportResult{}, err
	}
	defer f.Close()
	return importGroups(f, plan, opts)
}

func importGroups(f *excelize.File, plan *seatplan.Plan, opts ImportOptions) (ImportResult, error) {
	var res ImportResult
	sheet := activeSheet(f)
	log := opts.logger().With(zap.String("sheet", sheet))

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return res, &SheetError{Sheet: sheet, Op: "read", Err: err}
	}
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	cols, err := resolveGroupColumns(header, opts)
	if err != nil {
		return res, err
	}

	var groups []group
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := strings.TrimSpace(cellAt(row, cols.group))
		if name == "" {
			res.Skipped++
			continue
		}

		raw := cellAt(row, cols.count)
		count, st := parseInt(raw)
		switch st {
		case cellInvalid:
			log.Warn("count is not a number, using 1", zap.Int("row", i+1), zap.String("value", raw))
			count = 1
		case cellBlank:
			count = 1
		}
		if count <= 0 {
			res.Skipped++
			continue
		}

		category := name
		if cols.category >= 0 {
			if c := strings.TrimSpace(cellAt(row, cols.category)); c != "" {
				category = c
			}
		}
		groups = append(groups, group{name: name, category: category, count: count})
	}

	for _, g := range groups {
		plan.AddGuest(g.name, g.category, g.count)
		res.Created++
		res.Seats += g.count
	}
	log.Debug("groups imported", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
	return res, nil
}

type groupColumns struct {
	group, count, category int
}

func resolveGroupColumns(header []string, opts ImportOptions) (groupColumns, error) {
	idx := makeHeaderIndex(header)
	notFound := func(name string) error {
		available := []string{}
		for _, h := range header {
			if h != "" {
				available = append(available, h)
			}
		}
		return &ColumnNotFoundError{Column: name, Available: available}
	}

	cols := groupColumns{category: -1}
	var ok bool
	if cols.group, ok = idx.lookup(opts.GroupColumn); !ok {
		return cols, notFound(opts.GroupColumn)
	}
	if cols.count, ok = idx.lookup(opts.CountColumn); !ok {
		return cols, notFound(opts.CountColumn)
	}
	if opts.CategoryColumn != "" {
		if cols.category, ok = idx.lookup(opts.CategoryColumn); !ok {
			return cols, notFound(opts.CategoryColumn)
		}
	}
	return cols, nil
}
