// Package store implements the observable folder collection behind binder.
//
// The Store is the sole owner of the in-memory Collection. Every completed
// mutation re-serializes the whole collection and writes it to the storage
// backend under a single fixed key, then synchronously notifies subscribed
// observers with a deep-copy snapshot. Persistence failures are logged and
// recorded, never surfaced to the mutating caller: a failed load leaves the
// store empty (or as previously loaded), a failed save leaves the in-memory
// state mutated and the persisted copy stale.
package store

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/maelko/binder/internal/model"
	"github.com/maelko/binder/internal/storage"
)

// CollectionKey is the single key the whole collection is stored under.
// Readers that bypass the store, like dump --raw and check, use it too.
const CollectionKey = "folders.json"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for the store. Without it, logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type observer struct {
	id int
	fn func(model.Collection)
}

// Store owns the folder collection and its persistence round trip.
type Store struct {
	mu          sync.Mutex
	backend     storage.Backend
	collection  model.Collection
	observers   []observer
	nextObsID   int
	lastSaveErr error
	logger      *slog.Logger
}

// Open creates a Store over the given backend and loads the stored
// collection. A missing or unreadable stored value leaves the store empty;
// opening never fails.
func Open(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend:    backend,
		collection: model.Collection{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

// load replaces the collection with the stored value if one exists and
// decodes. Any other outcome keeps the current state.
func (s *Store) load() {
	data, err := s.backend.Get(CollectionKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("no stored collection, starting empty")
			return
		}
		s.logger.Warn("failed to load collection", "error", err)
		return
	}

	c, err := model.Decode(data)
	if err != nil {
		s.logger.Warn("stored collection is unreadable, keeping current state", "error", err)
		return
	}
	s.collection = c
	s.logger.Debug("loaded collection", "folders", len(c))
}

// save writes the collection to the backend and records the outcome in
// lastSaveErr. On failure the in-memory state stays as mutated and the
// persisted copy goes stale. Callers hold mu.
func (s *Store) save() {
	data, err := model.Encode(s.collection)
	if err != nil {
		s.lastSaveErr = err
		s.logger.Error("failed to encode collection", "error", err)
		return
	}
	if err := s.backend.Put(CollectionKey, data); err != nil {
		s.lastSaveErr = err
		s.logger.Error("failed to persist collection", "error", err)
		return
	}
	s.lastSaveErr = nil
}

// mutate runs fn under the lock. When fn reports a change the collection is
// persisted and every observer receives a snapshot before mutate returns.
// The lock is released on all paths, including save failure.
func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	s.save()
	snapshot := s.collection.Clone()
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	// Observers run outside the lock; a subscriber may call back into the
	// store. Each gets its own copy of the snapshot.
	for _, o := range observers {
		o.fn(snapshot.Clone())
	}
}

// Folders returns a deep-copy snapshot of the current collection.
func (s *Store) Folders() model.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.Clone()
}

// LastSaveErr returns the error from the most recent save attempt, or nil
// when it succeeded. Mutators never surface persistence failures themselves.
func (s *Store) LastSaveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// Close releases the underlying backend. The store must not be used after.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Subscribe registers fn to run synchronously after every completed
// mutation with a deep-copy snapshot of the new state. The returned cancel
// func removes the subscription.
func (s *Store) Subscribe(fn func(model.Collection)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// AddFolder appends a new folder with a fresh identifier and no items, and
// returns it.
func (s *Store) AddFolder(name string) model.Folder {
	var folder model.Folder
	s.mutate(func() bool {
		folder = model.Folder{
			ID:    model.NewID(),
			Name:  name,
			Items: []model.Item{},
		}
		s.collection = append(s.collection, folder)
		return true
	})
	return folder
}

// RemoveFolders removes the folders at the given zero-based positions in
// one batch. Survivors keep their relative order; out-of-range positions
// are ignored.
func (s *Store) RemoveFolders(positions ...int) {
	s.mutate(func() bool {
		drop := dropSet(positions, len(s.collection))
		if len(drop) == 0 {
			return false
		}
		kept := make(model.Collection, 0, len(s.collection)-len(drop))
		for i, f := range s.collection {
			if !drop[i] {
				kept = append(kept, f)
			}
		}
		s.collection = kept
		return true
	})
}

// AddItem appends a new pending item to the folder with the given id and
// returns it. A missing folder is a silent no-op, reported by ok=false.
func (s *Store) AddItem(folderID, title string) (item model.Item, ok bool) {
	s.mutate(func() bool {
		folder := s.collection.FindFolder(folderID)
		if folder == nil {
			s.logger.Debug("add item: no such folder", "folder", folderID)
			return false
		}
		item = model.Item{ID: model.NewID(), Title: title}
		folder.Items = append(folder.Items, item)
		ok = true
		return true
	})
	return item, ok
}

// RemoveItems removes the items at the given zero-based positions within
// the folder in one batch. A missing folder is a no-op; out-of-range
// positions are ignored.
func (s *Store) RemoveItems(folderID string, positions ...int) {
	s.mutate(func() bool {
		folder := s.collection.FindFolder(folderID)
		if folder == nil {
			s.logger.Debug("remove items: no such folder", "folder", folderID)
			return false
		}
		drop := dropSet(positions, len(folder.Items))
		if len(drop) == 0 {
			return false
		}
		kept := make([]model.Item, 0, len(folder.Items)-len(drop))
		for i, it := range folder.Items {
			if !drop[i] {
				kept = append(kept, it)
			}
		}
		folder.Items = kept
		return true
	})
}

// ToggleItem flips the completion flag of the item. If either lookup
// misses, nothing happens.
func (s *Store) ToggleItem(folderID, itemID string) {
	s.mutate(func() bool {
		folder := s.collection.FindFolder(folderID)
		if folder == nil {
			s.logger.Debug("toggle item: no such folder", "folder", folderID)
			return false
		}
		item := folder.FindItem(itemID)
		if item == nil {
			s.logger.Debug("toggle item: no such item", "folder", folderID, "item", itemID)
			return false
		}
		item.Completed = !item.Completed
		return true
	})
}

// dropSet maps the in-range positions to a removal set.
func dropSet(positions []int, length int) map[int]bool {
	drop := make(map[int]bool, len(positions))
	for _, p := range positions {
		if p >= 0 && p < length {
			drop[p] = true
		}
	}
	return drop
}
