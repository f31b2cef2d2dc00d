package main

import (
	"strconv"

	"github.com/maelko/binder/internal/cli"
	"github.com/maelko/binder/internal/model"
)

// resolveFolder resolves a user-supplied folder reference against a
// snapshot: exact name first, then id, then 1-based position. It returns
// the folder and its index.
func resolveFolder(c model.Collection, ref string) (model.Folder, int, error) {
	for i, f := range c {
		if f.Name == ref {
			return f, i, nil
		}
	}
	for i, f := range c {
		if f.ID == ref {
			return f, i, nil
		}
	}
	if pos, err := strconv.Atoi(ref); err == nil && pos >= 1 && pos <= len(c) {
		return c[pos-1], pos - 1, nil
	}
	return model.Folder{}, 0, &cli.NotFoundError{Type: "folder", Ref: ref}
}

// resolveItem resolves an item reference within a folder: 1-based position
// first, then exact title. Positions win so that numeric titles stay
// addressable by position, matching what list prints.
func resolveItem(f model.Folder, ref string) (model.Item, int, error) {
	if pos, err := strconv.Atoi(ref); err == nil && pos >= 1 && pos <= len(f.Items) {
		return f.Items[pos-1], pos - 1, nil
	}
	for i, it := range f.Items {
		if it.Title == ref {
			return it, i, nil
		}
	}
	return model.Item{}, 0, &cli.NotFoundError{Type: "item", Ref: ref}
}
