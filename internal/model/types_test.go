package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCollection() Collection {
	return Collection{
		{
			ID:   "f1",
			Name: "Groceries",
			Items: []Item{
				{ID: "i1", Title: "Milk", Completed: true},
				{ID: "i2", Title: "Eggs", Completed: false},
			},
		},
		{
			ID:   "f2",
			Name: "Chores",
			Items: []Item{
				{ID: "i3", Title: "Vacuum", Completed: false},
			},
		},
		{
			ID:    "f3",
			Name:  "Empty",
			Items: []Item{},
		},
	}
}

func TestFindFolder(t *testing.T) {
	c := testCollection()

	f := c.FindFolder("f2")
	require.NotNil(t, f)
	assert.Equal(t, "Chores", f.Name)

	assert.Nil(t, c.FindFolder("missing"))
	assert.Nil(t, Collection{}.FindFolder("f1"))
}

func TestFindFolder_ReturnsPointerIntoCollection(t *testing.T) {
	c := testCollection()

	f := c.FindFolder("f1")
	require.NotNil(t, f)
	f.Items = append(f.Items, Item{ID: "i9", Title: "Bread"})

	assert.Len(t, c[0].Items, 3)
}

func TestFindFolder_FirstMatchWins(t *testing.T) {
	c := Collection{
		{ID: "dup", Name: "First", Items: []Item{}},
		{ID: "dup", Name: "Second", Items: []Item{}},
	}

	f := c.FindFolder("dup")
	require.NotNil(t, f)
	assert.Equal(t, "First", f.Name)
}

func TestFindItem(t *testing.T) {
	c := testCollection()
	f := c.FindFolder("f1")
	require.NotNil(t, f)

	it := f.FindItem("i2")
	require.NotNil(t, it)
	assert.Equal(t, "Eggs", it.Title)

	assert.Nil(t, f.FindItem("i3"), "items in other folders are not visible")
	assert.Nil(t, f.FindItem("missing"))
}

func TestFindItem_FirstMatchWins(t *testing.T) {
	f := Folder{
		ID:   "f1",
		Name: "Dups",
		Items: []Item{
			{ID: "dup", Title: "First"},
			{ID: "dup", Title: "Second"},
		},
	}

	it := f.FindItem("dup")
	require.NotNil(t, it)
	assert.Equal(t, "First", it.Title)
}

func TestCounts(t *testing.T) {
	tests := []struct {
		name        string
		items       []Item
		wantDone    int
		wantPending int
	}{
		{
			name:        "mixed",
			items:       []Item{{Completed: true}, {Completed: false}, {Completed: true}},
			wantDone:    2,
			wantPending: 1,
		},
		{
			name:        "all pending",
			items:       []Item{{}, {}},
			wantDone:    0,
			wantPending: 2,
		},
		{
			name:        "empty",
			items:       []Item{},
			wantDone:    0,
			wantPending: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Folder{Items: tt.items}
			done, pending := f.Counts()
			assert.Equal(t, tt.wantDone, done)
			assert.Equal(t, tt.wantPending, pending)
		})
	}
}

func TestClone_Isolation(t *testing.T) {
	original := testCollection()
	clone := original.Clone()

	clone[0].Name = "Renamed"
	clone[0].Items[0].Completed = false
	clone[1].Items = append(clone[1].Items, Item{ID: "i9", Title: "Dust"})

	assert.Equal(t, "Groceries", original[0].Name)
	assert.True(t, original[0].Items[0].Completed)
	assert.Len(t, original[1].Items, 1)
}

func TestClone_NormalizesNilSlices(t *testing.T) {
	var c Collection
	clone := c.Clone()
	require.NotNil(t, clone)
	assert.Len(t, clone, 0)

	c = Collection{{ID: "f1", Name: "NilItems", Items: nil}}
	clone = c.Clone()
	require.NotNil(t, clone[0].Items)
	assert.Len(t, clone[0].Items, 0)
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.Len(t, id, 36)
		assert.False(t, seen[id], "ids must not repeat")
		seen[id] = true
	}
}
