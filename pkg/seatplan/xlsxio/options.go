// Package xlsxio reads and writes seating plans as xlsx workbooks.
//
// A plan workbook has three sheets: Tables, Guests and Metadata. Guests
// point at their table with a formula referencing the table's row, so the
// file stays readable when edited by hand. Loading tolerates the usual
// spreadsheet noise (whole numbers stored as floats, ids stored as text,
// missing optional columns) and degrades row by row instead of failing.
package xlsxio

import "go.uber.org/zap"

// Sheet names of a plan workbook.
const (
	SheetGuests   = "Guests"
	SheetTables   = "Tables"
	SheetMetadata = "Metadata"
)

// Header rows of a plan workbook.
var (
	GuestHeaders    = []string{"ID", "Name", "Category", "Capacity", "Table ID"}
	TableHeaders    = []string{"ID", "Name", "Capacity", "X", "Y"}
	MetadataHeaders = []string{"Next Guest ID", "Next Table ID"}
)

// LoadOptions configures Load and Read.
type LoadOptions struct {
	// Clear replaces the plan's guests and tables with the file's. When false
	// the file is merged in and colliding ids are reallocated.
	Clear bool
	// Logger receives row-level warnings. Nil discards them.
	Logger *zap.Logger
}

// DefaultLoadOptions returns options for a clear load.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{Clear: true}
}

func (o LoadOptions) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// ImportOptions configures ImportGroups and ReadGroups.
type ImportOptions struct {
	// GroupColumn is the header of the group name column (required).
	GroupColumn string
	// CountColumn is the header of the party size column (required).
	CountColumn string
	// CategoryColumn is the header of the category column. Empty means none.
	CategoryColumn string
	// Logger receives row-level warnings. Nil discards them.
	Logger *zap.Logger
}

func (o ImportOptions) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
