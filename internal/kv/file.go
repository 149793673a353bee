package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File stores each key as one JSON file in a data directory, for
// single-user installs that do not want to run Postgres. Writes go through
// a temp file and rename so a crash mid-write never leaves a torn value.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile returns a file-backed Store rooted at dir, creating the
// directory if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("kv.NewFile: create %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// path maps a key to its file. Keys are fixed internal constants, never
// user input, so no escaping is needed.
func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements Store.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNoKey
	}
	if err != nil {
		return nil, fmt.Errorf("kv.File.Get %q: %w", key, err)
	}
	return data, nil
}

// Set implements Store.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return fmt.Errorf("kv.File.Set %q: write temp: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("kv.File.Set %q: rename: %w", key, err)
	}
	return nil
}
