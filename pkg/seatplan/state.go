package seatplan

import (
	"slices"

	"github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/seatplan-go/pkg/seatplan/models"
)

// state holds everything a plan owns. Plan and Batch both operate on it;
// every invariant-preserving edit is a method here.
type state struct {
	Guests      map[int]*models.Guest
	Tables      map[int]*models.Table
	NextGuestID int
	NextTableID int
}

func newState() state {
	return state{
		Guests:      make(map[int]*models.Guest),
		Tables:      make(map[int]*models.Table),
		NextGuestID: 1,
		NextTableID: 1,
	}
}

func (s *state) clone() (state, error) {
	var out state
	if err := deepcopy.Copy(&out, s); err != nil {
		return state{}, err
	}
	if out.Guests == nil {
		out.Guests = make(map[int]*models.Guest)
	}
	if out.Tables == nil {
		out.Tables = make(map[int]*models.Table)
	}
	return out, nil
}

// occupancy sums the sizes of the guests seated at t, skipping except.
func (s *state) occupancy(t *models.Table, except int) int {
	total := 0
	for _, id := range t.GuestIDs {
		if id == except {
			continue
		}
		if g, ok := s.Guests[id]; ok {
			total += g.Size
		}
	}
	return total
}

func (s *state) fits(g *models.Guest, t *models.Table) bool {
	return s.occupancy(t, g.ID)+g.Size <= t.Capacity
}

func (s *state) assign(guestID, tableID int) bool {
	g, ok := s.Guests[guestID]
	if !ok {
		return false
	}
	t, ok := s.Tables[tableID]
	if !ok {
		return false
	}
	if !s.fits(g, t) {
		return false
	}
	s.unseat(guestID)
	id := tableID
	g.TableID = &id
	t.GuestIDs = append(t.GuestIDs, guestID)
	return true
}

func (s *state) unseat(guestID int) bool {
	g, ok := s.Guests[guestID]
	if !ok || g.TableID == nil {
		return false
	}
	if t, ok := s.Tables[*g.TableID]; ok {
		t.GuestIDs = slices.DeleteFunc(t.GuestIDs, func(id int) bool { return id == guestID })
	}
	g.TableID = nil
	return true
}

func (s *state) removeGuest(id int) {
	if _, ok := s.Guests[id]; !ok {
		return
	}
	s.unseat(id)
	delete(s.Guests, id)
}

func (s *state) removeTable(id int) {
	t, ok := s.Tables[id]
	if !ok {
		return
	}
	for _, gid := range slices.Clone(t.GuestIDs) {
		s.unseat(gid)
	}
	delete(s.Tables, id)
}

// trimToCapacity unseats guests from the end of t's seating order until the
// table's occupancy fits its capacity. Returns the unseated ids in that order.
func (s *state) trimToCapacity(t *models.Table) []int {
	var unseated []int
	for len(t.GuestIDs) > 0 && s.occupancy(t, 0) > t.Capacity {
		last := t.GuestIDs[len(t.GuestIDs)-1]
		s.unseat(last)
		unseated = append(unseated, last)
	}
	return unseated
}

// settleCounters raises each counter above the highest id in use.
func (s *state) settleCounters() {
	s.NextGuestID = max(s.NextGuestID, 1)
	s.NextTableID = max(s.NextTableID, 1)
	for id := range s.Guests {
		s.NextGuestID = max(s.NextGuestID, id+1)
	}
	for id := range s.Tables {
		s.NextTableID = max(s.NextTableID, id+1)
	}
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
