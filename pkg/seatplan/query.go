package seatplan

import (
	"github.com/ukaji3/seatplan-go/pkg/seatplan/models"
)

// Stats summarizes seat usage. Guest totals count seats (sizes), not entries.
type Stats struct {
	TotalGuests    int `json:"total_guests"`
	SeatedGuests   int `json:"seated_guests"`
	TotalTables    int `json:"total_tables"`
	TotalCapacity  int `json:"total_capacity"`
	TotalOccupancy int `json:"total_occupancy"`
}

// Guest returns a copy of the guest with the given id.
func (p *Plan) Guest(id int) (models.Guest, bool) {
	g, ok := p.st.Guests[id]
	if !ok {
		return models.Guest{}, false
	}
	return g.Clone(), true
}

// Table returns a copy of the table with the given id.
func (p *Plan) Table(id int) (models.Table, bool) {
	t, ok := p.st.Tables[id]
	if !ok {
		return models.Table{}, false
	}
	return t.Clone(), true
}

// Guests returns copies of all guests in id order.
func (p *Plan) Guests() []models.Guest {
	out := make([]models.Guest, 0, len(p.st.Guests))
	for _, id := range sortedKeys(p.st.Guests) {
		out = append(out, p.st.Guests[id].Clone())
	}
	return out
}

// Tables returns copies of all tables in id order.
func (p *Plan) Tables() []models.Table {
	out := make([]models.Table, 0, len(p.st.Tables))
	for _, id := range sortedKeys(p.st.Tables) {
		out = append(out, p.st.Tables[id].Clone())
	}
	return out
}

// UnseatedGuests returns copies of the guests without a table, in id order.
func (p *Plan) UnseatedGuests() []models.Guest {
	var out []models.Guest
	for _, id := range sortedKeys(p.st.Guests) {
		if g := p.st.Guests[id]; g.TableID == nil {
			out = append(out, g.Clone())
		}
	}
	return out
}

// Occupancy returns the number of seats used at a table.
func (p *Plan) Occupancy(tableID int) (int, bool) {
	t, ok := p.st.Tables[tableID]
	if !ok {
		return 0, false
	}
	return p.st.occupancy(t, 0), true
}

// NextGuestID returns the id the next added guest will receive.
func (p *Plan) NextGuestID() int { return p.st.NextGuestID }

// NextTableID returns the id the next added table will receive.
func (p *Plan) NextTableID() int { return p.st.NextTableID }

// Len returns the number of guest entries and tables.
func (p *Plan) Len() (guests, tables int) {
	return len(p.st.Guests), len(p.st.Tables)
}

// Stats computes seat usage across the plan.
func (p *Plan) Stats() Stats {
	var s Stats
	for _, g := range p.st.Guests {
		s.TotalGuests += g.Size
		if g.TableID != nil {
			s.SeatedGuests += g.Size
		}
	}
	for _, t := range p.st.Tables {
		s.TotalTables++
		s.TotalCapacity += t.Capacity
		s.TotalOccupancy += p.st.occupancy(t, 0)
	}
	return s
}
