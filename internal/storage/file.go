package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacksmith/hp/internal/model"
)

// FileAdapter stores the collection as a JSON array in a single file.
type FileAdapter struct {
	path string
}

// NewFileAdapter returns an adapter for the file at path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Path returns the file location.
func (a *FileAdapter) Path() string {
	return a.path
}

// Load reads the collection from disk.
func (a *FileAdapter) Load() ([]model.Prospect, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return []model.Prospect{}, fmt.Errorf("failed to read %s: %w", a.path, err)
	}

	people, err := model.DecodeProspects(data)
	if err != nil {
		return []model.Prospect{}, fmt.Errorf("failed to parse %s: %w", a.path, err)
	}
	return people, nil
}

// Save writes the collection to disk.
func (a *FileAdapter) Save(people []model.Prospect) error {
	data, err := model.EncodeProspects(people)
	if err != nil {
		return fmt.Errorf("failed to encode prospects: %w", err)
	}
	return WriteFileAtomic(a.path, data, 0644)
}

// WriteFileAtomic writes data to a temp file next to path, syncs it, and
// renames it into place.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (retErr error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
