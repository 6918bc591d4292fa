package seatplan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/seatplan-go/internal/atomicfile"
	"github.com/ukaji3/seatplan-go/pkg/seatplan/models"
)

// Document is the plain structured file form of a plan.
type Document struct {
	Guests      []models.Record `json:"guests"`
	Tables      []models.Record `json:"tables"`
	NextGuestID *int            `json:"next_guest_id,omitempty"`
	NextTableID *int            `json:"next_table_id,omitempty"`
}

// Document returns the plan as a plain structured document.
func (p *Plan) Document() Document {
	doc := Document{
		Guests: make([]models.Record, 0, len(p.st.Guests)),
		Tables: make([]models.Record, 0, len(p.st.Tables)),
	}
	for _, g := range p.Guests() {
		doc.Guests = append(doc.Guests, g.ToRecord())
	}
	for _, t := range p.Tables() {
		doc.Tables = append(doc.Tables, t.ToRecord())
	}
	ng, nt := p.st.NextGuestID, p.st.NextTableID
	doc.NextGuestID, doc.NextTableID = &ng, &nt
	return doc
}

// WriteJSON writes the plan as an indented JSON document.
func (p *Plan) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(p.Document())
}

// SaveJSON writes the plan to path, replacing the file atomically.
func (p *Plan) SaveJSON(path string) error {
	return atomicfile.Write(path, p.WriteJSON)
}

// ReadJSON replaces the plan's contents with the document read from r.
// On error the plan is unchanged.
func (p *Plan) ReadJSON(r io.Reader) error {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPlanFile, err)
	}
	return p.ApplyDocument(doc)
}

// LoadJSON replaces the plan's contents with the document stored at path.
func (p *Plan) LoadJSON(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := p.ReadJSON(f); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyDocument replaces the plan's contents with doc. Entries with a
// non-positive or repeated id are dropped and guest sizes below 1 become 1.
// Seating is rebuilt from each guest's table_id in the order the table's
// guest_ids lists them (unlisted guests follow by id); references to missing
// tables and seatings that would exceed capacity are loaded as unseated.
func (p *Plan) ApplyDocument(doc Document) error {
	b, err := p.Begin()
	if err != nil {
		return err
	}
	b.Clear()

	ng, nt := 1, 1
	if doc.NextGuestID != nil {
		ng = *doc.NextGuestID
	}
	if doc.NextTableID != nil {
		nt = *doc.NextTableID
	}
	b.SetCounters(ng, nt)

	var order []models.Table
	for _, r := range doc.Tables {
		t := models.TableFromRecord(r)
		if t.ID < 1 || b.HasTable(t.ID) {
			continue
		}
		order = append(order, t)
		b.PutTable(t)
	}

	wanted := make(map[int]int)
	var guestIDs []int
	for _, r := range doc.Guests {
		g := models.GuestFromRecord(r)
		if g.ID < 1 || b.HasGuest(g.ID) {
			continue
		}
		if g.Size < 1 {
			g.Size = 1
		}
		if g.TableID != nil {
			wanted[g.ID] = *g.TableID
		}
		guestIDs = append(guestIDs, g.ID)
		b.PutGuest(g)
	}

	seated := make(map[int]bool)
	for _, t := range order {
		for _, gid := range t.GuestIDs {
			if tid, ok := wanted[gid]; ok && tid == t.ID && !seated[gid] {
				seated[gid] = b.Seat(gid, t.ID)
			}
		}
	}
	for _, gid := range guestIDs {
		if tid, ok := wanted[gid]; ok && !seated[gid] {
			seated[gid] = b.Seat(gid, tid)
		}
	}

	b.Commit()
	return nil
}
