package handler

import (
	"encoding/json"
	"net/http"

	"chatserver/internal/api/middleware"
	"chatserver/internal/api/response"
	"chatserver/internal/service"
)

// WorkspaceHandler handles workspace endpoints
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// Get returns the caller's workspace
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	ws, err := h.workspaceService.Get(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, ws)
}

// ListUsers returns all users in the caller's workspace
func (h *WorkspaceHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	users, err := h.workspaceService.ListUsers(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, users)
}

// TransferOwner hands workspace ownership to another member
func (h *WorkspaceHandler) TransferOwner(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input struct {
		NewOwnerID int64 `json:"new_owner_id" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	ws, err := h.workspaceService.TransferOwner(r.Context(), workspaceID, userID, input.NewOwnerID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, ws)
}
