package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestGuestRecordRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		guest Guest
	}{
		{"unseated", Guest{ID: 1, Name: "Alice", Category: "Friends", Size: 1}},
		{"seated party", Guest{ID: 7, Name: "Family Cohen", Category: "Family", Size: 4, TableID: intPtr(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GuestFromRecord(tt.guest.ToRecord())
			assert.True(t, tt.guest.Equal(got), "got %+v, want %+v", got, tt.guest)
		})
	}
}

func TestGuestFromRecordDefaults(t *testing.T) {
	g := GuestFromRecord(Record{"id": 3.0, "name": "Bob"})

	assert.Equal(t, 3, g.ID)
	assert.Equal(t, DefaultCategory, g.Category)
	assert.Equal(t, 1, g.Size)
	assert.False(t, g.Seated())
}

func TestRecordFromDecodedJSON(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"id": 2, "name": "T2", "capacity": 10.0, "guest_ids": [4, 5.0, "x"], "x": 120, "y": "80"}`), &r))

	table := TableFromRecord(r)

	assert.Equal(t, 2, table.ID)
	assert.Equal(t, 10, table.Capacity)
	assert.Equal(t, []int{4, 5}, table.GuestIDs)
	assert.Equal(t, 120, table.X)
	assert.Equal(t, 80, table.Y)
}

func TestRecordIntRejectsOutOfRange(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "size": 1e12, "table_id": -1e12, "name": "Huge"}`), &r))

	tests := []struct {
		value any
		ok    bool
	}{
		{2147483647, true},
		{int64(2147483648), false},
		{-2147483649.0, false},
		{"3e10", false},
		{1e12, false},
	}
	for _, tt := range tests {
		_, ok := Record{"v": tt.value}.OptionalInt("v")
		assert.Equal(t, tt.ok, ok, "value %v", tt.value)
	}

	g := GuestFromRecord(r)
	assert.Equal(t, 3, g.ID)
	assert.Equal(t, 1, g.Size)
	assert.Nil(t, g.TableID)
}

func TestGuestCloneIsIndependent(t *testing.T) {
	g := Guest{ID: 1, Name: "A", Size: 1, TableID: intPtr(2)}
	c := g.Clone()
	*c.TableID = 9

	assert.Equal(t, 2, *g.TableID)
}

func TestTableEqualTreatsNilAndEmptyMembersAlike(t *testing.T) {
	a := Table{ID: 1, Name: "T", Capacity: 4}
	b := Table{ID: 1, Name: "T", Capacity: 4, GuestIDs: []int{}}

	assert.True(t, a.Equal(b))
	b.GuestIDs = append(b.GuestIDs, 3)
	assert.False(t, a.Equal(b))
}
