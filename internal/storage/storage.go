// Package storage provides key-value blob backends for binder data.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Backend kinds accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	// envDir overrides the data directory when set.
	envDir = "BINDER_DIR"
	// defaultDirName is the data directory under the user's home.
	defaultDirName = ".binder"
	// sqliteFile is the database file name for the sqlite backend.
	sqliteFile = "binder.db"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("key not found")

// Backend is a minimal key-value blob store. Put replaces any previous value
// under the key.
type Backend interface {
	// Get returns the value stored under key, or an error wrapping
	// ErrNotFound when the key has never been written.
	Get(key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error

	// Close releases backend resources.
	Close() error
}

// Open returns the backend named by kind, rooted at dir. An empty kind
// selects the file backend. The data directory is created on first use.
func Open(dir, kind string) (Backend, error) {
	switch kind {
	case "", BackendFile:
		return NewFileBackend(dir)
	case BackendSQLite:
		return NewSQLiteBackend(filepath.Join(dir, sqliteFile))
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", kind)
	}
}

// DefaultDir returns the binder data directory: $BINDER_DIR if set,
// otherwise ~/.binder.
func DefaultDir() (string, error) {
	if dir := os.Getenv(envDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}
