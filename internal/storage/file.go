// internal/storage/file.go
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is a KV backed by one file per key under a root directory.
type FileStore struct {
	root string
}

// NewFileStore creates a file-backed KV rooted at dir
func NewFileStore(dir string) (*FileStore, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("storage: resolve working directory: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: mkdir %s: %w", dir, err)
	}
	return &FileStore{root: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.root, key+".json")
}

// Get returns the value stored under key, or ErrNotFound.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get %s: %w", key, err)
	}
	return data, nil
}

// Put stores value under key, replacing any previous value.
func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	full := s.path(key)
	// Write-then-rename so a crash mid-write never leaves a torn snapshot.
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		return fmt.Errorf("storage: rename %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}
