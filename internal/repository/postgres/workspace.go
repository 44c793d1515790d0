package postgres

import (
	"context"
	"errors"
	"fmt"

	"chatserver/internal/domain"

	"github.com/jackc/pgx/v5"
)

// WorkspaceRepository implements domain.WorkspaceRepository
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create inserts a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, name string, ownerID int64) (*domain.Workspace, error) {
	query := `
		INSERT INTO workspaces (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, name, owner_id, created_at
	`
	return r.scanWorkspace(r.db.Pool.QueryRow(ctx, query, name, ownerID))
}

// GetByID retrieves a workspace by ID
func (r *WorkspaceRepository) GetByID(ctx context.Context, id int64) (*domain.Workspace, error) {
	query := `SELECT id, name, owner_id, created_at FROM workspaces WHERE id = $1`
	return r.scanWorkspace(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByName retrieves a workspace by name
func (r *WorkspaceRepository) GetByName(ctx context.Context, name string) (*domain.Workspace, error) {
	query := `SELECT id, name, owner_id, created_at FROM workspaces WHERE name = $1`
	return r.scanWorkspace(r.db.Pool.QueryRow(ctx, query, name))
}

// TransferOwner moves ownership to a user already inside the workspace.
// The membership requirement sits in the UPDATE's predicate, so a stale
// read cannot hand the workspace to an outsider.
func (r *WorkspaceRepository) TransferOwner(ctx context.Context, id, ownerID int64) (*domain.Workspace, error) {
	query := `
		UPDATE workspaces
		SET owner_id = $1
		WHERE id = $2 AND (SELECT workspace_id FROM users WHERE id = $1) = $2
		RETURNING id, name, owner_id, created_at
	`

	ws, err := r.scanWorkspace(r.db.Pool.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, fmt.Errorf("%w: workspace %d has no member %d", domain.ErrNotFound, id, ownerID)
	}
	return ws, nil
}

func (r *WorkspaceRepository) scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var ws domain.Workspace
	err := row.Scan(&ws.ID, &ws.Name, &ws.OwnerID, &ws.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return &ws, nil
}
