package service

import (
	"testing"

	"chatserver/internal/domain"
	"chatserver/internal/filestore"

	"github.com/stretchr/testify/assert"
)

func TestFileService_Upload(t *testing.T) {
	storage := new(MockStorage)
	svc := NewFileService(storage)

	file := filestore.NewChatFile(1, "notes.txt", []byte("hello"))
	storage.On("Save", file, []byte("hello")).Return(nil)

	url, err := svc.Upload(1, "notes.txt", []byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, file.URL(), url)

	storage.AssertExpectations(t)
}

func TestFileService_Download(t *testing.T) {
	file := filestore.NewChatFile(1, "notes.txt", []byte("hello"))

	t.Run("success", func(t *testing.T) {
		storage := new(MockStorage)
		svc := NewFileService(storage)

		storage.On("Exists", file).Return(true)
		storage.On("Read", file).Return([]byte("hello"), nil)

		data, ext, err := svc.Download(1, file.URL())
		assert.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
		assert.Equal(t, "txt", ext)
	})

	t.Run("workspace mismatch reads as absent", func(t *testing.T) {
		storage := new(MockStorage)
		svc := NewFileService(storage)

		_, _, err := svc.Download(2, file.URL())
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		storage := new(MockStorage)
		svc := NewFileService(storage)

		storage.On("Exists", file).Return(false)

		_, _, err := svc.Download(1, file.URL())
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
	})
}
