package model

import (
	"encoding/json"
	"fmt"
)

// Encode serializes the collection as indented JSON with a trailing newline.
// Nil slices are normalized first so the output always uses arrays, never null.
func Encode(c Collection) ([]byte, error) {
	data, err := json.MarshalIndent(c.Clone(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a serialized collection. Folders with missing or null item
// lists come back with empty slices.
func Decode(data []byte) (Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	if c == nil {
		c = Collection{}
	}
	for i := range c {
		if c[i].Items == nil {
			c[i].Items = []Item{}
		}
	}
	return c, nil
}
