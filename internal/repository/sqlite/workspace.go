package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chatserver/internal/domain"
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
	ws := &domain.Workspace{Name: name, OwnerID: ownerID, CreatedAt: time.Now().UTC()}

	err := r.db.Conn.QueryRowContext(ctx,
		`INSERT INTO workspaces (name, owner_id, created_at) VALUES (?, ?, ?) RETURNING id`,
		ws.Name, ws.OwnerID, ws.CreatedAt,
	).Scan(&ws.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return ws, nil
}

// GetByID retrieves a workspace by ID
func (r *WorkspaceRepository) GetByID(ctx context.Context, id int64) (*domain.Workspace, error) {
	return r.scanWorkspace(r.db.Conn.QueryRowContext(ctx,
		`SELECT id, name, owner_id, created_at FROM workspaces WHERE id = ?`, id))
}

// GetByName retrieves a workspace by name
func (r *WorkspaceRepository) GetByName(ctx context.Context, name string) (*domain.Workspace, error) {
	return r.scanWorkspace(r.db.Conn.QueryRowContext(ctx,
		`SELECT id, name, owner_id, created_at FROM workspaces WHERE name = ?`, name))
}

// TransferOwner moves ownership to a user already inside the workspace
func (r *WorkspaceRepository) TransferOwner(ctx context.Context, id, ownerID int64) (*domain.Workspace, error) {
	res, err := r.db.Conn.ExecContext(ctx,
		`UPDATE workspaces SET owner_id = ?
		 WHERE id = ? AND (SELECT workspace_id FROM users WHERE id = ?) = ?`,
		ownerID, id, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to transfer ownership: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: workspace %d has no member %d", domain.ErrNotFound, id, ownerID)
	}

	return r.GetByID(ctx, id)
}

func (r *WorkspaceRepository) scanWorkspace(row *sql.Row) (*domain.Workspace, error) {
	var ws domain.Workspace
	err := row.Scan(&ws.ID, &ws.Name, &ws.OwnerID, &ws.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return &ws, nil
}
