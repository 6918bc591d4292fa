// Package models defines the guest and table records of a seating plan.
package models

// DefaultCategory is the category given to guests created without one.
const DefaultCategory = "General"

// Guest represents one guest entry. An entry may stand for a whole party:
// Size is the number of seats it consumes.
type Guest struct {
	// ID is the plan-unique identifier (positive).
	ID int `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Category groups guests for display (e.g. "Family", "Friends").
	Category string `json:"category"`
	// Size is the number of seats this entry consumes.
	Size int `json:"size"`
	// TableID is the table the guest is seated at (nil when unseated).
	TableID *int `json:"table_id"`
}

// Seated reports whether the guest references a table.
func (g Guest) Seated() bool {
	return g.TableID != nil
}

// Clone returns a copy that shares no memory with g.
func (g Guest) Clone() Guest {
	if g.TableID != nil {
		id := *g.TableID
		g.TableID = &id
	}
	return g
}

// Equal reports whether two guests hold the same field values.
func (g Guest) Equal(o Guest) bool {
	if g.ID != o.ID || g.Name != o.Name || g.Category != o.Category || g.Size != o.Size {
		return false
	}
	if g.TableID == nil || o.TableID == nil {
		return g.TableID == nil && o.TableID == nil
	}
	return *g.TableID == *o.TableID
}

// ToRecord flattens the guest into a field name -> primitive value record.
func (g Guest) ToRecord() Record {
	var tableID any
	if g.TableID != nil {
		tableID = *g.TableID
	}
	return Record{
		"id":       g.ID,
		"name":     g.Name,
		"category": g.Category,
		"table_id": tableID,
		"size":     g.Size,
	}
}

// GuestFromRecord builds a guest from a flat record. Missing fields take
// their defaults: category "General", size 1, unseated. No validation is done.
func GuestFromRecord(r Record) Guest {
	g := Guest{
		ID:       r.Int("id", 0),
		Name:     r.String("name", ""),
		Category: r.String("category", DefaultCategory),
		Size:     r.Int("size", 1),
	}
	if id, ok := r.OptionalInt("table_id"); ok {
		g.TableID = &id
	}
	return g
}
