package service

import (
	"fmt"

	"chatserver/internal/domain"
	"chatserver/internal/filestore"
)

// FileService handles content-addressed file upload and retrieval
type FileService struct {
	storage filestore.Storage
}

// NewFileService creates a new file service
func NewFileService(storage filestore.Storage) *FileService {
	return &FileService{storage: storage}
}

// Upload stores a file under its content hash and returns its URL.
// Re-uploading identical content is a no-op that yields the same URL.
func (s *FileService) Upload(workspaceID int64, filename string, data []byte) (string, error) {
	file := filestore.NewChatFile(workspaceID, filename, data)
	if err := s.storage.Save(file, data); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return file.URL(), nil
}

// Download resolves a file URL and returns the file's bytes along with
// its extension. Files are workspace-scoped: a URL pointing into another
// workspace is treated as absent.
func (s *FileService) Download(workspaceID int64, url string) ([]byte, string, error) {
	file, err := filestore.ParseURL(url)
	if err != nil {
		return nil, "", err
	}
	if file.WorkspaceID != workspaceID {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrFileNotFound, url)
	}
	if !s.storage.Exists(file) {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrFileNotFound, url)
	}

	data, err := s.storage.Read(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	return data, file.Ext, nil
}
