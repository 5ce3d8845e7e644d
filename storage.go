package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/viant/afs"
)

// Store reads source files and writes generated files.
type Store interface {
	Download(ctx context.Context, path string) ([]byte, error)
	Upload(ctx context.Context, path string, data []byte) error
}

// FileStore is a Store backed by afs. Relative paths resolve against the
// working directory.
type FileStore struct {
	fs afs.Service
}

// NewFileStore returns a FileStore using the default afs service.
func NewFileStore() *FileStore {
	return &FileStore{fs: afs.New()}
}

// Download returns the full content of the file at path.
func (s *FileStore) Download(ctx context.Context, path string) ([]byte, error) {
	location, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Upload replaces the file at path with data, creating parent directories.
func (s *FileStore) Upload(ctx context.Context, path string, data []byte) error {
	location, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := s.fs.Upload(ctx, location, 0644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
