package xlsxio

import "strings"

// guestLayout maps the columns of a Guests sheet.
type guestLayout struct {
	id, name, category int
	size               int // -1 in the legacy layout
	table              int
}

var (
	currentGuestLayout = guestLayout{id: 0, name: 1, category: 2, size: 3, table: 4}
	legacyGuestLayout  = guestLayout{id: 0, name: 1, category: 2, size: -1, table: 3}
)

// detectGuestLayout picks the 5-column layout or the legacy 4-column one
// (no size column). Readers drop trailing empty cells, so a current-layout
// row of an unseated guest looks 4 cells wide; the header row decides.
// Without a header the widest row decides.
func detectGuestLayout(rows [][]string) guestLayout {
	width := 0
	if len(rows) > 0 {
		width = usedWidth(rows[0])
	}
	if width == 0 {
		for _, row := range rows {
			width = max(width, usedWidth(row))
		}
	}
	if width >= len(GuestHeaders) {
		return currentGuestLayout
	}
	return legacyGuestLayout
}

// usedWidth returns the index after the last non-empty cell of a row.
func usedWidth(row []string) int {
	for i := len(row) - 1; i >= 0; i-- {
		if strings.TrimSpace(row[i]) != "" {
			return i + 1
		}
	}
	return 0
}
