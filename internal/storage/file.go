package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// tempFilePrefix marks in-flight atomic writes in the data directory.
const tempFilePrefix = "binder-tmp-"

// FileBackend stores each key as a plain file inside a directory. Writes go
// through a temp file and a rename so a crash never leaves a partial value
// under the key.
type FileBackend struct {
	dir string
}

// NewFileBackend opens a file backend rooted at dir, creating the directory
// if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the directory the backend stores files in.
func (b *FileBackend) Dir() string {
	return b.dir
}

// Get returns the contents of the file named key.
func (b *FileBackend) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(b.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return data, nil
}

// Put writes value to the file named key atomically.
func (b *FileBackend) Put(key string, value []byte) error {
	return writeFileAtomic(filepath.Join(b.dir, key), value, 0644)
}

// Close is a no-op for the file backend.
func (b *FileBackend) Close() error {
	return nil
}

// writeFileAtomic writes data to a temp file in the target's directory and
// renames it onto the target name.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // Clean up if we fail before rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
