package seatplan

import (
	"fmt"

	"github.com/ukaji3/seatplan-go/pkg/seatplan/models"
)

// Batch stages edits against a private copy of a plan's state. Loaders use
// it to place entities under explicit ids; nothing becomes visible in the
// plan until Commit, which swaps the staged state in whole.
type Batch struct {
	plan *Plan
	st   state
	done bool
}

// Begin starts a batch on a deep copy of the plan's current state.
func (p *Plan) Begin() (*Batch, error) {
	st, err := p.st.clone()
	if err != nil {
		return nil, fmt.Errorf("stage plan: %w", err)
	}
	return &Batch{plan: p, st: st}, nil
}

// Clear empties the staged guest and table collections. Counters are kept.
func (b *Batch) Clear() {
	b.st.Guests = make(map[int]*models.Guest)
	b.st.Tables = make(map[int]*models.Table)
}

// HasGuest reports whether a guest id is in use in the staged state.
func (b *Batch) HasGuest(id int) bool {
	_, ok := b.st.Guests[id]
	return ok
}

// HasTable reports whether a table id is in use in the staged state.
func (b *Batch) HasTable(id int) bool {
	_, ok := b.st.Tables[id]
	return ok
}

// AllocGuestID reserves the next guest id.
func (b *Batch) AllocGuestID() int {
	id := b.st.NextGuestID
	b.st.NextGuestID++
	return id
}

// AllocTableID reserves the next table id.
func (b *Batch) AllocTableID() int {
	id := b.st.NextTableID
	b.st.NextTableID++
	return id
}

// PutTable stores a table under its own id with an empty seating list.
// A table already stored under that id is removed first. The table counter
// is raised above the id so later allocations cannot reuse it.
func (b *Batch) PutTable(t models.Table) {
	b.st.removeTable(t.ID)
	t.GuestIDs = []int{}
	b.st.Tables[t.ID] = &t
	b.st.NextTableID = max(b.st.NextTableID, t.ID+1)
}

// PutGuest stores an unseated guest under its own id.
// A guest already stored under that id is removed first. The guest counter
// is raised above the id so later allocations cannot reuse it.
func (b *Batch) PutGuest(g models.Guest) {
	b.st.removeGuest(g.ID)
	g.TableID = nil
	b.st.Guests[g.ID] = &g
	b.st.NextGuestID = max(b.st.NextGuestID, g.ID+1)
}

// Seat links a staged guest to a staged table with the same checks as
// Plan.AssignGuestToTable.
func (b *Batch) Seat(guestID, tableID int) bool {
	return b.st.assign(guestID, tableID)
}

// Counters returns the staged id counters.
func (b *Batch) Counters() (nextGuestID, nextTableID int) {
	return b.st.NextGuestID, b.st.NextTableID
}

// SetCounters overwrites the staged id counters.
func (b *Batch) SetCounters(nextGuestID, nextTableID int) {
	b.st.NextGuestID = nextGuestID
	b.st.NextTableID = nextTableID
}

// Commit raises the counters above every id in use and replaces the plan's
// state with the staged one. A batch can be committed once.
func (b *Batch) Commit() {
	if b.done {
		return
	}
	b.st.settleCounters()
	b.plan.st = b.st
	b.done = true
}
