package filestore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage is the byte store the attachment coordinates resolve against.
type Storage interface {
	// Save writes the payload for a file. Writing a file that already
	// exists is a benign no-op: identical bytes hash to identical paths,
	// so a concurrent duplicate upload is harmless.
	Save(file ChatFile, data []byte) error
	Exists(file ChatFile) bool
	Read(file ChatFile) ([]byte, error)
}

// LocalStorage stores file bytes on the local filesystem under a base
// directory, keyed by the sharded content-addressed path.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a local storage rooted at baseDir.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

// BaseDir returns the storage root.
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

// Save writes the file unless it is already present.
func (s *LocalStorage) Save(file ChatFile, data []byte) error {
	path := file.Path(s.baseDir)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create file directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Exists reports whether the file's bytes are present.
func (s *LocalStorage) Exists(file ChatFile) bool {
	_, err := os.Stat(file.Path(s.baseDir))
	return err == nil
}

// Read returns the file's bytes.
func (s *LocalStorage) Read(file ChatFile) ([]byte, error) {
	data, err := os.ReadFile(file.Path(s.baseDir))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
