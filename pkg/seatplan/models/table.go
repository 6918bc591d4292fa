package models

import "slices"

// Table represents a table on the floor plan.
type Table struct {
	// ID is the plan-unique identifier (positive).
	ID int `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Capacity is the maximum total guest size the table holds.
	Capacity int `json:"capacity"`
	// GuestIDs lists seated guests in seating order.
	GuestIDs []int `json:"guest_ids"`
	// X is the horizontal canvas coordinate.
	X int `json:"x"`
	// Y is the vertical canvas coordinate.
	Y int `json:"y"`
}

// Clone returns a copy that shares no memory with t.
func (t Table) Clone() Table {
	t.GuestIDs = slices.Clone(t.GuestIDs)
	if t.GuestIDs == nil {
		t.GuestIDs = []int{}
	}
	return t
}

// Equal reports whether two tables hold the same field values.
// A nil and an empty membership list compare equal.
func (t Table) Equal(o Table) bool {
	return t.ID == o.ID &&
		t.Name == o.Name &&
		t.Capacity == o.Capacity &&
		t.X == o.X &&
		t.Y == o.Y &&
		slices.Equal(t.GuestIDs, o.GuestIDs)
}

// ToRecord flattens the table into a field name -> primitive value record.
func (t Table) ToRecord() Record {
	ids := make([]any, len(t.GuestIDs))
	for i, id := range t.GuestIDs {
		ids[i] = id
	}
	return Record{
		"id":        t.ID,
		"name":      t.Name,
		"capacity":  t.Capacity,
		"guest_ids": ids,
		"x":         t.X,
		"y":         t.Y,
	}
}

// TableFromRecord builds a table from a flat record. Missing coordinates
// default to 0 and a missing membership list to empty.
func TableFromRecord(r Record) Table {
	return Table{
		ID:       r.Int("id", 0),
		Name:     r.String("name", ""),
		Capacity: r.Int("capacity", 0),
		GuestIDs: r.Ints("guest_ids"),
		X:        r.Int("x", 0),
		Y:        r.Int("y", 0),
	}
}
