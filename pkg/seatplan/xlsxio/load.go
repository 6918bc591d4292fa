package xlsxio

import (
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/seatplan-go/pkg/seatplan"
	"github.com/ukaji3/seatplan-go/pkg/seatplan/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// tableRow is a Tables sheet row after cell normalization.
type tableRow struct {
	row      int
	id       int
	name     string
	capacity int
	x, y     int
}

// guestRow is a Guests sheet row after cell normalization.
type guestRow struct {
	row      int
	id       int
	name     string
	category string
	size     int
	tableID  int
	hasTable bool
}

// counters holds the Metadata sheet values that parsed.
type counters struct {
	nextGuest, nextTable       int
	hasNextGuest, hasNextTable bool
}

// Load reads the plan workbook at path into plan.
//
// With opts.Clear the plan's guests and tables are replaced by the file's,
// keeping the stored ids. Otherwise the file is merged in: a table or guest
// whose id is already taken gets a fresh id, and guest table references are
// remapped to follow their table. The plan is only modified once the whole
// workbook has been read; on error it is left unchanged.
func Load(path string, plan *seatplan.Plan, opts LoadOptions) error {
	f, err := openFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := load(f, plan, opts); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Read is Load for a workbook read from r.
func Read(r io.Reader, plan *seatplan.Plan, opts LoadOptions) error {
	f, err := openReader(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return load(f, plan, opts)
}

func load(f *excelize.File, plan *seatplan.Plan, opts LoadOptions) error {
	log := opts.logger()

	tables, err := readTables(f, log)
	if err != nil {
		return err
	}
	guests, err := readGuests(f, log)
	if err != nil {
		return err
	}
	meta, err := readMetadata(f, log)
	if err != nil {
		return err
	}

	b, err := plan.Begin()
	if err != nil {
		return err
	}
	if opts.Clear {
		b.Clear()
	}

	tableIDs := applyTables(b, tables, opts.Clear, log)
	applyGuests(b, guests, tableIDs, opts.Clear, log)
	applyCounters(b, meta, opts.Clear)
	b.Commit()

	log.Debug("workbook loaded",
		zap.Int("tables", len(tables)),
		zap.Int("guests", len(guests)),
		zap.Bool("clear", opts.Clear),
	)
	return nil
}

func readTables(f *excelize.File, log *zap.Logger) ([]tableRow, error) {
	rows, err := readSheet(f, SheetTables)
	if err != nil || len(rows) < 2 {
		return nil, err
	}
	log = log.With(zap.String("sheet", SheetTables))

	var out []tableRow
	for i, row := range rows[1:] {
		rowNum := i + 2
		id, ok := primaryID(row, rowNum, log)
		if !ok {
			continue
		}
		t := tableRow{row: rowNum, id: id, name: cellAt(row, 1)}

		var st cellState
		if t.capacity, st = intOr(cellAt(row, 2), 0); st == cellInvalid {
			log.Warn("capacity is not a number, using 0", zap.Int("row", rowNum), zap.String("value", cellAt(row, 2)))
		}
		if t.x, st = intOr(cellAt(row, 3), seatplan.DefaultTableX); st == cellInvalid {
			log.Warn("x is not a number, using default", zap.Int("row", rowNum), zap.String("value", cellAt(row, 3)))
		}
		if t.y, st = intOr(cellAt(row, 4), seatplan.DefaultTableY); st == cellInvalid {
			log.Warn("y is not a number, using default", zap.Int("row", rowNum), zap.String("value", cellAt(row, 4)))
		}
		out = append(out, t)
	}
	return out, nil
}

func readGuests(f *excelize.File, log *zap.Logger) ([]guestRow, error) {
	rows, err := readSheet(f, SheetGuests)
	if err != nil || len(rows) < 2 {
		return nil, err
	}
	log = log.With(zap.String("sheet", SheetGuests))
	layout := detectGuestLayout(rows)

	var out []guestRow
	for i, row := range rows[1:] {
		rowNum := i + 2
		id, ok := primaryID(row, rowNum, log)
		if !ok {
			continue
		}
		g := guestRow{
			row:      rowNum,
			id:       id,
			name:     cellAt(row, layout.name),
			category: cellAt(row, layout.category),
			size:     1,
		}
		if strings.TrimSpace(g.category) == "" {
			g.category = models.DefaultCategory
		}

		if layout.size >= 0 {
			size, st := parseInt(cellAt(row, layout.size))
			switch {
			case st == cellInvalid:
				log.Warn("size is not a number, using 1", zap.Int("row", rowNum), zap.String("value", cellAt(row, layout.size)))
			case st == cellOK && size < 1:
				log.Warn("size below 1, using 1", zap.Int("row", rowNum), zap.Int("value", size))
			case st == cellOK:
				g.size = size
			}
		}

		ref := resolveCell(f, SheetGuests, layout.table+1, rowNum, cellAt(row, layout.table))
		switch tid, st := parseInt(ref); st {
		case cellOK:
			g.tableID, g.hasTable = tid, true
		case cellInvalid:
			log.Warn("table reference is not a number, guest left unseated", zap.Int("row", rowNum), zap.String("value", ref))
		}
		out = append(out, g)
	}
	return out, nil
}

func readMetadata(f *excelize.File, log *zap.Logger) (counters, error) {
	var c counters
	rows, err := readSheet(f, SheetMetadata)
	if err != nil || len(rows) < 2 {
		return c, err
	}
	row := rows[1]
	var st cellState
	if c.nextGuest, st = parseInt(cellAt(row, 0)); st == cellOK {
		c.hasNextGuest = true
	} else if st == cellInvalid {
		log.Warn("next guest id is not a number", zap.String("sheet", SheetMetadata), zap.String("value", cellAt(row, 0)))
	}
	if c.nextTable, st = parseInt(cellAt(row, 1)); st == cellOK {
		c.hasNextTable = true
	} else if st == cellInvalid {
		log.Warn("next table id is not a number", zap.String("sheet", SheetMetadata), zap.String("value", cellAt(row, 1)))
	}
	return c, nil
}

// primaryID parses the id in column A. Blank ids skip the row silently;
// unparseable or non-positive ids skip it with a warning.
func primaryID(row []string, rowNum int, log *zap.Logger) (int, bool) {
	id, st := parseInt(cellAt(row, 0))
	switch {
	case st == cellBlank:
		return 0, false
	case st == cellInvalid:
		log.Warn("id is not a number, row skipped", zap.Int("row", rowNum), zap.String("value", cellAt(row, 0)))
		return 0, false
	case id < 1:
		log.Warn("id is not positive, row skipped", zap.Int("row", rowNum), zap.Int("id", id))
		return 0, false
	}
	return id, true
}

// applyTables stages the file's tables and returns file id -> plan id.
func applyTables(b *seatplan.Batch, rows []tableRow, replace bool, log *zap.Logger) map[int]int {
	ids := make(map[int]int, len(rows))
	for _, r := range rows {
		if _, dup := ids[r.id]; dup {
			log.Warn("duplicate table id, row skipped", zap.String("sheet", SheetTables), zap.Int("row", r.row), zap.Int("id", r.id))
			continue
		}
		id := r.id
		if !replace && b.HasTable(id) {
			id = b.AllocTableID()
		}
		ids[r.id] = id
		b.PutTable(models.Table{ID: id, Name: r.name, Capacity: r.capacity, X: r.x, Y: r.y})
	}
	return ids
}

// applyGuests stages the file's guests and seats them in file order.
func applyGuests(b *seatplan.Batch, rows []guestRow, tableIDs map[int]int, replace bool, log *zap.Logger) {
	seen := make(map[int]bool, len(rows))
	for _, r := range rows {
		if seen[r.id] {
			log.Warn("duplicate guest id, row skipped", zap.String("sheet", SheetGuests), zap.Int("row", r.row), zap.Int("id", r.id))
			continue
		}
		seen[r.id] = true

		id := r.id
		if !replace && b.HasGuest(id) {
			id = b.AllocGuestID()
		}
		b.PutGuest(models.Guest{ID: id, Name: r.name, Category: r.category, Size: r.size})
		if !r.hasTable {
			continue
		}

		tableID := r.tableID
		if mapped, ok := tableIDs[tableID]; ok && !replace {
			tableID = mapped
		}
		if !b.HasTable(tableID) {
			log.Warn("table not found, guest left unseated", zap.String("sheet", SheetGuests), zap.Int("row", r.row), zap.Int("table_id", tableID))
			continue
		}
		if !b.Seat(id, tableID) {
			log.Warn("table over capacity, guest left unseated", zap.String("sheet", SheetGuests), zap.Int("row", r.row), zap.Int("table_id", tableID))
		}
	}
}

// applyCounters takes the file's counters verbatim on a clear load and never
// lowers them on a merge. Commit then raises both above the ids in use.
func applyCounters(b *seatplan.Batch, c counters, replace bool) {
	nextGuest, nextTable := b.Counters()
	if c.hasNextGuest {
		if replace {
			nextGuest = c.nextGuest
		} else {
			nextGuest = max(nextGuest, c.nextGuest)
		}
	}
	if c.hasNextTable {
		if replace {
			nextTable = c.nextTable
		} else {
			nextTable = max(nextTable, c.nextTable)
		}
	}
	b.SetCounters(nextGuest, nextTable)
}
