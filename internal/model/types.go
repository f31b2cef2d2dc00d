// Package model defines the core data structures for binder.
package model

// Item is a titled, completable unit of work belonging to exactly one folder.
// The id and title are fixed at creation; only the completion flag mutates.
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"isCompleted"`
}

// Folder is a named, ordered container of items. Items keep insertion order
// except where removal drops entries; titles carry no uniqueness constraint.
type Folder struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Collection is the ordered sequence of all folders. It is the unit of
// persistence: the entire collection is serialized as one value under a
// single storage key.
type Collection []Folder

// FindFolder returns the first folder with the given id, or nil.
func (c Collection) FindFolder(id string) *Folder {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}

// FindItem returns the first item with the given id, or nil.
func (f *Folder) FindItem(id string) *Item {
	for i := range f.Items {
		if f.Items[i].ID == id {
			return &f.Items[i]
		}
	}
	return nil
}

// Counts returns the number of completed and pending items in the folder.
func (f *Folder) Counts() (done, pending int) {
	for _, it := range f.Items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return done, pending
}

// Clone returns a deep copy of the collection. Mutating the clone never
// touches the original; item slices are always non-nil in the copy so the
// encoded form stays a JSON array.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i, f := range c {
		out[i] = f
		out[i].Items = make([]Item, len(f.Items))
		copy(out[i].Items, f.Items)
	}
	return out
}
