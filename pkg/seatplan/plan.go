// Package seatplan provides the seating plan aggregate: guests, tables and
// the capacity-checked links between them.
//
// A Plan is the only writer of guest/table relationships. Callers receive
// copies of guests and tables, so a seated guest's TableID and a table's
// GuestIDs can only change through AssignGuestToTable, UnseatGuest and the
// other Plan methods, which keep both sides in agreement.
//
// Validation failures (unknown ids, exceeded capacity) are reported as a
// false result and leave the plan untouched. A Plan is not safe for
// concurrent use.
package seatplan

import (
	"github.com/ukaji3/seatplan-go/pkg/seatplan/models"
)

// Defaults applied to new guests and tables.
const (
	DefaultCategory = models.DefaultCategory
	DefaultTableX   = 100
	DefaultTableY   = 100
)

// Plan is the aggregate root of one event's guests and tables.
type Plan struct {
	st state
}

// New returns an empty plan whose counters start at 1.
func New() *Plan {
	return &Plan{st: newState()}
}

// AddGuest creates an unseated guest with the next guest id.
// An empty category becomes "General" and a size below 1 becomes 1.
func (p *Plan) AddGuest(name, category string, size int) models.Guest {
	if category == "" {
		category = DefaultCategory
	}
	if size < 1 {
		size = 1
	}
	g := &models.Guest{
		ID:       p.st.NextGuestID,
		Name:     name,
		Category: category,
		Size:     size,
	}
	p.st.Guests[g.ID] = g
	p.st.NextGuestID++
	return g.Clone()
}

// AddTable creates a table with the next table id at the default position.
func (p *Plan) AddTable(name string, capacity int) models.Table {
	return p.AddTableAt(name, capacity, DefaultTableX, DefaultTableY)
}

// AddTableAt creates a table with the next table id at (x, y).
// Capacity is not validated; a table with capacity 0 cannot seat anyone.
func (p *Plan) AddTableAt(name string, capacity, x, y int) models.Table {
	t := &models.Table{
		ID:       p.st.NextTableID,
		Name:     name,
		Capacity: capacity,
		GuestIDs: []int{},
		X:        x,
		Y:        y,
	}
	p.st.Tables[t.ID] = t
	p.st.NextTableID++
	return t.Clone()
}

// RemoveGuest unseats and deletes a guest. Unknown ids are ignored.
func (p *Plan) RemoveGuest(id int) {
	p.st.removeGuest(id)
}

// RemoveTable unseats every guest at the table and deletes it.
// Unknown ids are ignored.
func (p *Plan) RemoveTable(id int) {
	p.st.removeTable(id)
}

// AssignGuestToTable seats a guest at a table, moving it if it is seated
// elsewhere. It returns false without changing anything when either id is
// unknown or the guest's size does not fit next to the table's other
// occupants. The guest is appended to the table's seating order.
func (p *Plan) AssignGuestToTable(guestID, tableID int) bool {
	return p.st.assign(guestID, tableID)
}

// UnseatGuest removes a guest from its table. Unseated or unknown guests
// are left as they are.
func (p *Plan) UnseatGuest(guestID int) {
	p.st.unseat(guestID)
}

// Clone returns an independent deep copy of the plan.
func (p *Plan) Clone() (*Plan, error) {
	st, err := p.st.clone()
	if err != nil {
		return nil, err
	}
	return &Plan{st: st}, nil
}
