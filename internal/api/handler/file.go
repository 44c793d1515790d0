package handler

import (
	"io"
	"mime"
	"net/http"

	"chatserver/internal/api/middleware"
	"chatserver/internal/api/response"
	"chatserver/internal/service"
)

// maxUploadBytes caps a single attachment at 50MB
const maxUploadBytes = 50 << 20

// FileHandler handles attachment upload and download
type FileHandler struct {
	fileService *service.FileService
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload stores an attachment under its content hash. Duplicate uploads
// return the same URL without rewriting the bytes.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(w, "failed to read file")
		return
	}

	url, err := h.fileService.Upload(workspaceID, header.Filename, data)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, map[string]any{"url": url})
}

// Download streams an attachment by its URL path. Callers can only reach
// files in their own workspace.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	data, ext, err := h.fileService.Download(workspaceID, r.URL.Path)
	if err != nil {
		response.FromError(w, err)
		return
	}

	contentType := mime.TypeByExtension("." + ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
