package service

import (
	"context"
	"fmt"

	"chatserver/internal/domain"
)

// WorkspaceService handles workspace operations
type WorkspaceService struct {
	workspaces domain.WorkspaceRepository
	users      domain.UserRepository
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(workspaces domain.WorkspaceRepository, users domain.UserRepository) *WorkspaceService {
	return &WorkspaceService{workspaces: workspaces, users: users}
}

// Get retrieves a workspace by id
func (s *WorkspaceService) Get(ctx context.Context, id int64) (*domain.Workspace, error) {
	ws, err := s.workspaces.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if ws == nil {
		return nil, fmt.Errorf("%w: workspace %d", domain.ErrNotFound, id)
	}
	return ws, nil
}

// ListUsers returns all users in a workspace
func (s *WorkspaceService) ListUsers(ctx context.Context, workspaceID int64) ([]domain.ChatUser, error) {
	users, err := s.users.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace users: %w", err)
	}
	return users, nil
}

// TransferOwner makes another member of the workspace its owner. Only the
// current owner may do this.
func (s *WorkspaceService) TransferOwner(ctx context.Context, workspaceID, actorID, newOwnerID int64) (*domain.Workspace, error) {
	ws, err := s.Get(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws.OwnerID != actorID {
		return nil, domain.ErrNotWorkspaceOwner
	}
	return s.workspaces.TransferOwner(ctx, workspaceID, newOwnerID)
}
