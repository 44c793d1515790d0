package domain

import (
	"context"
	"time"
)

// Workspace represents a tenant workspace
type Workspace struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkspaceRepository defines the interface for workspace storage
type WorkspaceRepository interface {
	Create(ctx context.Context, name string, ownerID int64) (*Workspace, error)
	GetByID(ctx context.Context, id int64) (*Workspace, error)
	GetByName(ctx context.Context, name string) (*Workspace, error)

	// TransferOwner moves ownership to a user that already belongs to the
	// workspace. Returns ErrNotFound when the target user is outside it.
	TransferOwner(ctx context.Context, id, ownerID int64) (*Workspace, error)
}
