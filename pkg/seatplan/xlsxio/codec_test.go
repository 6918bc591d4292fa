package xlsxio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/seatplan-go/pkg/seatplan"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func mergeOptions() LoadOptions {
	return LoadOptions{Clear: false}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := seatplan.New()
	t1 := p.AddTable("Head Table", 6)
	t2 := p.AddTableAt("Garden", 4, 250, 80)
	g1 := p.AddGuest("Alice", "Family", 2)
	g2 := p.AddGuest("Bob", "Friends", 1)
	p.AddGuest("Carol", "", 3)
	require.True(t, p.AssignGuestToTable(g1.ID, t1.ID))
	require.True(t, p.AssignGuestToTable(g2.ID, t2.ID))

	path := filepath.Join(t.TempDir(), "plan.xlsx")
	require.NoError(t, Save(p, path))

	loaded := seatplan.New()
	require.NoError(t, Load(path, loaded, DefaultLoadOptions()))

	assert.Equal(t, p.Tables(), loaded.Tables())
	assert.Equal(t, p.Guests(), loaded.Guests())
	assert.Equal(t, p.NextGuestID(), loaded.NextGuestID())
	assert.Equal(t, p.NextTableID(), loaded.NextTableID())
}

func TestSaveWritesFormulaReference(t *testing.T) {
	p := seatplan.New()
	p.AddTable("First", 4)
	second := p.AddTable("Second", 4)
	g := p.AddGuest("Alice", "Family", 1)
	require.True(t, p.AssignGuestToTable(g.ID, second.ID))
	p.AddGuest("Bob", "Family", 1)

	var buf bytes.Buffer
	require.NoError(t, Write(p, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetGuests, SheetTables, SheetMetadata}, f.GetSheetList())

	formula, err := f.GetCellFormula(SheetGuests, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Tables!A3", formula)

	formula, err = f.GetCellFormula(SheetGuests, "E3")
	require.NoError(t, err)
	assert.Empty(t, formula)
	v, err := f.GetCellValue(SheetGuests, "E3")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestLoadMergeRemapsCollidingIDs(t *testing.T) {
	p := seatplan.New()
	head := p.AddTable("Head", 10)
	host := p.AddGuest("Host", "Family", 1)
	require.True(t, p.AssignGuestToTable(host.ID, head.ID))

	path := writeWorkbook(t,
		guestsSheet(
			[]any{1, "Visitor", "Friends", 2, 1},
			[]any{5, "Walker", "Friends", 1},
		),
		tablesSheet([]any{1, "Incoming", 8, 300, 300}),
		metadataSheet(3, 2),
	)
	require.NoError(t, Load(path, p, mergeOptions()))

	tables := p.Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, "Head", tables[0].Name)
	assert.Equal(t, []int{host.ID}, tables[0].GuestIDs)

	incoming := tables[1]
	assert.Equal(t, 2, incoming.ID)
	assert.Equal(t, "Incoming", incoming.Name)

	visitor, ok := p.Guest(incoming.GuestIDs[0])
	require.True(t, ok)
	assert.Equal(t, "Visitor", visitor.Name)
	assert.NotEqual(t, host.ID, visitor.ID)
	assert.Equal(t, intPtr(incoming.ID), visitor.TableID)

	walker, ok := p.Guest(5)
	require.True(t, ok, "non-colliding guest id is kept")
	assert.Equal(t, "Walker", walker.Name)
	assert.False(t, walker.Seated())

	h, _ := p.Guest(host.ID)
	assert.Equal(t, "Host", h.Name)
	assert.Equal(t, intPtr(head.ID), h.TableID)
}

func TestLoadMergeKeepsRowsOutOfIDOrder(t *testing.T) {
	p := seatplan.New()
	head := p.AddTable("Head", 10)
	host := p.AddGuest("Host", "Family", 1)
	require.True(t, p.AssignGuestToTable(host.ID, head.ID))

	path := writeWorkbook(t,
		guestsSheet(
			[]any{2, "File G2", "Friends", 1, 2},
			[]any{1, "File G1", "Friends", 1, 1},
		),
		tablesSheet(
			[]any{2, "File T2", 4, 100, 100},
			[]any{1, "File T1", 4, 100, 100},
		),
	)
	require.NoError(t, Load(path, p, mergeOptions()))

	guests, tables := p.Len()
	assert.Equal(t, 3, guests)
	assert.Equal(t, 3, tables)

	t2, ok := p.Table(2)
	require.True(t, ok)
	assert.Equal(t, "File T2", t2.Name)
	t3, ok := p.Table(3)
	require.True(t, ok)
	assert.Equal(t, "File T1", t3.Name)

	g2, ok := p.Guest(2)
	require.True(t, ok)
	assert.Equal(t, "File G2", g2.Name)
	assert.Equal(t, intPtr(2), g2.TableID)
	g3, ok := p.Guest(3)
	require.True(t, ok)
	assert.Equal(t, "File G1", g3.Name)
	assert.Equal(t, intPtr(3), g3.TableID)

	assert.Equal(t, 4, p.NextGuestID())
	assert.Equal(t, 4, p.NextTableID())
}

func TestLoadMergeRemapsFormulaReferences(t *testing.T) {
	p := seatplan.New()
	p.AddTable("Existing", 4)

	path := writeWorkbook(t,
		guestsSheet([]any{1, "Ann", "Family", 1}),
		tablesSheet([]any{1, "Copied", 4, 100, 100}),
		sheetData{name: SheetMetadata},
	)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetCellFormula(SheetGuests, "E2", "Tables!$A$2"))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	require.NoError(t, Load(path, p, mergeOptions()))

	ann, ok := p.Guest(1)
	require.True(t, ok)
	require.NotNil(t, ann.TableID)
	copied, ok := p.Table(*ann.TableID)
	require.True(t, ok)
	assert.Equal(t, "Copied", copied.Name)
	assert.Equal(t, 2, copied.ID)
}

func TestLoadCoercesNumericCells(t *testing.T) {
	path := writeWorkbook(t,
		guestsSheet(
			[]any{"1", "Ann", "Family", "2.0", "1"},
			[]any{2.0, "Bo", "Family", 1, 1.0},
		),
		tablesSheet(
			[]any{"1", "Main", 10.0, "50.0", 60},
			[]any{2, "Side", "12.0"},
		),
	)

	p := seatplan.New()
	require.NoError(t, Load(path, p, DefaultLoadOptions()))

	main, ok := p.Table(1)
	require.True(t, ok)
	assert.Equal(t, 10, main.Capacity)
	assert.Equal(t, 50, main.X)
	assert.Equal(t, 60, main.Y)
	assert.Equal(t, []int{1, 2}, main.GuestIDs)

	side, ok := p.Table(2)
	require.True(t, ok)
	assert.Equal(t, 12, side.Capacity)
	assert.Equal(t, seatplan.DefaultTableX, side.X)
	assert.Equal(t, seatplan.DefaultTableY, side.Y)

	ann, ok := p.Guest(1)
	require.True(t, ok)
	assert.Equal(t, 2, ann.Size)

	guests, tables := p.Len()
	assert.Equal(t, 2, guests)
	assert.Equal(t, 2, tables)
}

func TestLoadEvaluatesComputedReference(t *testing.T) {
	path := writeWorkbook(t,
		sheetData{
			name:     SheetGuests,
			rows:     [][]any{{"ID", "Name", "Category", "Capacity", "Table ID"}, {1, "Ann", "Family", 1}},
			formulas: map[string]string{"E2": "1+1"},
		},
		tablesSheet([]any{1, "One", 4}, []any{2, "Two", 4}),
	)

	p := seatplan.New()
	require.NoError(t, Load(path, p, DefaultLoadOptions()))

	ann, ok := p.Guest(1)
	require.True(t, ok)
	assert.Equal(t, intPtr(2), ann.TableID)
}

func TestLoadLegacyLayout(t *testing.T) {
	path := writeWorkbook(t,
		sheetData{name: SheetGuests, rows: [][]any{
			{"ID", "Name", "Category", "Table ID"},
			{1, "Ann", "Family", 1},
			{2, "Bo", "Friends"},
		}},
		tablesSheet([]any{1, "Main", 4}),
	)

	p := seatplan.New()
	require.NoError(t, Load(path, p, DefaultLoadOptions()))

	ann, _ := p.Guest(1)
	assert.Equal(t, 1, ann.Size)
	assert.Equal(t, intPtr(1), ann.TableID)

	bo, _ := p.Guest(2)
	assert.Equal(t, 1, bo.Size)
	assert.False(t, bo.Seated())
}

func TestLoadBlankSizeDefaultsToOne(t *testing.T) {
	path := writeWorkbook(t,
		guestsSheet([]any{1, "Ann", "Family", "", 1}),
		tablesSheet([]any{1, "Main", 4}),
	)

	p := seatplan.New()
	require.NoError(t, Load(path, p, DefaultLoadOptions()))

	ann, _ := p.Guest(1)
	assert.Equal(t, 1, ann.Size)
	assert.Equal(t, intPtr(1), ann.TableID)
}

func TestLoadDegradesRowByRow(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	path := writeWorkbook(t,
		guestsSheet(
			[]any{"", "No ID"},
			[]any{"x", "Bad ID"},
			[]any{1, "Ann", "", 2, 2},
			[]any{3, "Cy", "Fam", "lots", 2},
			[]any{4, "Dee", "Fam", 1, "nope"},
			[]any{5, "Eve", "Fam", 1, 99},
			[]any{6, "Fay", "Fam", 0},
		),
		tablesSheet(
			[]any{"abc", "Bad"},
			[]any{-3, "Negative", 4},
			[]any{1, "No capacity", "many"},
			[]any{2, "Main", 4, "left", "top"},
		),
	)

	p := seatplan.New()
	require.NoError(t, Load(path, p, LoadOptions{Clear: true, Logger: zap.New(core)}))

	guests, tables := p.Len()
	assert.Equal(t, 5, guests)
	assert.Equal(t, 2, tables)

	noCap, _ := p.Table(1)
	assert.Equal(t, 0, noCap.Capacity)

	main, _ := p.Table(2)
	assert.Equal(t, seatplan.DefaultTableX, main.X)
	assert.Equal(t, seatplan.DefaultTableY, main.Y)
	assert.Equal(t, []int{1, 3}, main.GuestIDs)

	ann, _ := p.Guest(1)
	assert.Equal(t, seatplan.DefaultCategory, ann.Category)

	cy, _ := p.Guest(3)
	assert.Equal(t, 1, cy.Size)

	for _, id := range []int{4, 5} {
		g, ok := p.Guest(id)
		require.True(t, ok)
		assert.False(t, g.Seated(), "guest %d", id)
	}
	fay, _ := p.Guest(6)
	assert.Equal(t, 1, fay.Size)

	assert.NotZero(t, logs.FilterField(zap.String("sheet", SheetTables)).Len())
	assert.NotZero(t, logs.FilterField(zap.String("sheet", SheetGuests)).Len())
}

func TestLoadRejectsOverCapacitySeating(t *testing.T) {
	path := writeWorkbook(t,
		guestsSheet(
			[]any{1, "Ann", "Family", 2, 1},
			[]any{2, "Bo", "Family", 2, 1},
		),
		tablesSheet([]any{1, "Small", 3}),
	)

	p := seatplan.New()
	require.NoError(t, Load(path, p, DefaultLoadOptions()))

	small, _ := p.Table(1)
	assert.Equal(t, []int{1}, small.GuestIDs)
	bo, _ := p.Guest(2)
	assert.False(t, bo.Seated())
}

func TestLoadSkipsDuplicateIDs(t *testing.T) {
	path := writeWorkbook(t,
		guestsSheet(
			[]any{1, "First", "Family", 1},
			[]any{1, "Second", "Family", 1},
		),
		tablesSheet(
			[]any{1, "Original", 4},
			[]any{1, "Copy", 8},
		),
	)

	p := seatplan.New()
	require.NoError(t, Load(path, p, DefaultLoadOptions()))

	g, _ := p.Guest(1)
	assert.Equal(t, "First", g.Name)
	tbl, _ := p.Table(1)
	assert.Equal(t, "Original", tbl.Name)
	guests, tables := p.Len()
	assert.Equal(t, 1, guests)
	assert.Equal(t, 1, tables)
}

func TestLoadToleratesMissingSheets(t *testing.T) {
	p := seatplan.New()
	path := writeWorkbook(t, tablesSheet([]any{3, "Only", 4}))
	require.NoError(t, Load(path, p, DefaultLoadOptions()))

	guests, tables := p.Len()
	assert.Equal(t, 0, guests)
	assert.Equal(t, 1, tables)
	assert.Equal(t, 4, p.NextTableID())

	other := writeWorkbook(t, sheetData{name: "Notes", rows: [][]any{{"hello"}}})
	require.NoError(t, Load(other, p, DefaultLoadOptions()))
	guests, tables = p.Len()
	assert.Equal(t, 0, guests)
	assert.Equal(t, 0, tables)
}

func TestLoadCounters(t *testing.T) {
	t.Run("clear takes file values", func(t *testing.T) {
		path := writeWorkbook(t,
			tablesSheet([]any{1, "A", 4}, []any{2, "B", 4}),
			metadataSheet(50, 7),
		)
		p := seatplan.New()
		require.NoError(t, Load(path, p, DefaultLoadOptions()))
		assert.Equal(t, 50, p.NextGuestID())
		assert.Equal(t, 7, p.NextTableID())
	})

	t.Run("stale metadata is raised above ids in use", func(t *testing.T) {
		path := writeWorkbook(t,
			guestsSheet([]any{9, "Ann", "Family", 1}),
			tablesSheet([]any{5, "A", 4}),
			metadataSheet(1, 1),
		)
		p := seatplan.New()
		require.NoError(t, Load(path, p, DefaultLoadOptions()))
		assert.Equal(t, 10, p.NextGuestID())
		assert.Equal(t, 6, p.NextTableID())
	})

	t.Run("merge never lowers counters", func(t *testing.T) {
		base := writeWorkbook(t, tablesSheet([]any{1, "A", 4}), metadataSheet(10, 10))
		p := seatplan.New()
		require.NoError(t, Load(base, p, DefaultLoadOptions()))

		incoming := writeWorkbook(t, tablesSheet([]any{2, "B", 4}), metadataSheet(4, 20))
		require.NoError(t, Load(incoming, p, mergeOptions()))
		assert.Equal(t, 10, p.NextGuestID())
		assert.Equal(t, 20, p.NextTableID())
	})

	t.Run("clear without metadata keeps current counters", func(t *testing.T) {
		base := writeWorkbook(t, tablesSheet([]any{1, "A", 4}), metadataSheet(10, 10))
		p := seatplan.New()
		require.NoError(t, Load(base, p, DefaultLoadOptions()))

		bare := writeWorkbook(t, tablesSheet([]any{2, "B", 4}))
		require.NoError(t, Load(bare, p, DefaultLoadOptions()))
		assert.Equal(t, 10, p.NextGuestID())
		assert.Equal(t, 10, p.NextTableID())
	})
}

func TestLoadErrorsLeavePlanUntouched(t *testing.T) {
	p := seatplan.New()
	p.AddTable("Keep", 4)

	err := Load(filepath.Join(t.TempDir(), "missing.xlsx"), p, DefaultLoadOptions())
	require.ErrorIs(t, err, ErrFileNotFound)

	junk := filepath.Join(t.TempDir(), "junk.xlsx")
	require.NoError(t, os.WriteFile(junk, []byte("not a workbook"), 0o644))
	err = Load(junk, p, DefaultLoadOptions())
	require.ErrorIs(t, err, ErrInvalidFormat)

	err = Read(bytes.NewReader([]byte("still not a workbook")), p, DefaultLoadOptions())
	require.ErrorIs(t, err, ErrInvalidFormat)

	_, tables := p.Len()
	assert.Equal(t, 1, tables)
}

func TestReadWriteStream(t *testing.T) {
	p := seatplan.New()
	tbl := p.AddTable("Main", 4)
	g := p.AddGuest("Ann", "Family", 2)
	require.True(t, p.AssignGuestToTable(g.ID, tbl.ID))

	var buf bytes.Buffer
	require.NoError(t, Write(p, &buf))

	loaded := seatplan.New()
	require.NoError(t, Read(&buf, loaded, DefaultLoadOptions()))
	assert.Equal(t, p.Tables(), loaded.Tables())
	assert.Equal(t, p.Guests(), loaded.Guests())
}
