package seatplan

// UpdateGuest replaces a guest's name, category and size. The edit is always
// applied; if the guest is seated and its new size no longer fits the table,
// the guest is unseated instead of the edit being rejected. An empty
// category becomes "General" and a size below 1 becomes 1.
// ok is false only when the guest does not exist.
func (p *Plan) UpdateGuest(id int, name, category string, size int) (unseated, ok bool) {
	g, ok := p.st.Guests[id]
	if !ok {
		return false, false
	}
	if category == "" {
		category = DefaultCategory
	}
	if size < 1 {
		size = 1
	}
	g.Name = name
	g.Category = category
	g.Size = size

	if g.TableID == nil {
		return false, true
	}
	t, ok := p.st.Tables[*g.TableID]
	if !ok || p.st.occupancy(t, 0) > t.Capacity {
		p.st.unseat(id)
		return true, true
	}
	return false, true
}

// UpdateTable replaces a table's name and capacity. When the new capacity is
// below the current occupancy, guests are unseated from the end of the
// seating order until the rest fit; their ids are returned.
func (p *Plan) UpdateTable(id int, name string, capacity int) (unseated []int, ok bool) {
	t, ok := p.st.Tables[id]
	if !ok {
		return nil, false
	}
	t.Name = name
	t.Capacity = capacity
	return p.st.trimToCapacity(t), true
}

// MoveTable sets a table's canvas position.
func (p *Plan) MoveTable(id, x, y int) bool {
	t, ok := p.st.Tables[id]
	if !ok {
		return false
	}
	t.X, t.Y = x, y
	return true
}

// RenumberTable changes a table's id. The new id must be positive and
// unused. Seated guests follow the table, and the table counter is raised
// above the new id when needed.
func (p *Plan) RenumberTable(oldID, newID int) bool {
	if newID < 1 || newID == oldID {
		return false
	}
	t, ok := p.st.Tables[oldID]
	if !ok {
		return false
	}
	if _, taken := p.st.Tables[newID]; taken {
		return false
	}
	for _, gid := range t.GuestIDs {
		if g, ok := p.st.Guests[gid]; ok {
			id := newID
			g.TableID = &id
		}
	}
	t.ID = newID
	p.st.Tables[newID] = t
	delete(p.st.Tables, oldID)
	p.st.NextTableID = max(p.st.NextTableID, newID+1)
	return true
}
