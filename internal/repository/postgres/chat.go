package postgres

import (
	"context"
	"errors"
	"fmt"

	"chatserver/internal/domain"

	"github.com/jackc/pgx/v5"
)

// ChatRepository implements domain.ChatRepository
type ChatRepository struct {
	db *DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{db: db}
}

const chatColumns = `id, workspace_id, name, type, members, created_at`

// Create inserts a new chat. Member existence is re-checked inside the
// same transaction as the insert, so membership cannot change underneath
// the type that was resolved from it.
func (r *ChatRepository) Create(ctx context.Context, workspaceID int64, name *string, chatType domain.ChatType, members []int64) (*domain.Chat, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.checkMembers(ctx, tx, workspaceID, members); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO chats (workspace_id, name, type, members)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + chatColumns

	chat, err := scanChat(tx.QueryRow(ctx, query, workspaceID, name, chatType, members))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return chat, nil
}

// Update rewrites a chat's name, type and members, with the same in-
// transaction member validation as Create.
func (r *ChatRepository) Update(ctx context.Context, id, workspaceID int64, name *string, chatType domain.ChatType, members []int64) (*domain.Chat, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.checkMembers(ctx, tx, workspaceID, members); err != nil {
		return nil, err
	}

	query := `
		UPDATE chats
		SET name = $1, type = $2, members = $3
		WHERE id = $4 AND workspace_id = $5
		RETURNING ` + chatColumns

	chat, err := scanChat(tx.QueryRow(ctx, query, name, chatType, members, id, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: chat %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return chat, nil
}

// Delete removes a chat and returns the prior row
func (r *ChatRepository) Delete(ctx context.Context, id int64) (*domain.Chat, error) {
	query := `DELETE FROM chats WHERE id = $1 RETURNING ` + chatColumns

	chat, err := scanChat(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: chat %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return chat, nil
}

// GetByID retrieves a chat within a workspace
func (r *ChatRepository) GetByID(ctx context.Context, id, workspaceID int64) (*domain.Chat, error) {
	query := `SELECT ` + chatColumns + ` FROM chats WHERE id = $1 AND workspace_id = $2`

	chat, err := scanChat(r.db.Pool.QueryRow(ctx, query, id, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return chat, nil
}

// ListByUser retrieves the chats a user belongs to within a workspace
func (r *ChatRepository) ListByUser(ctx context.Context, workspaceID, userID int64) ([]domain.Chat, error) {
	query := `
		SELECT ` + chatColumns + `
		FROM chats
		WHERE workspace_id = $1 AND $2 = ANY(members)
		ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, *chat)
	}

	return chats, rows.Err()
}

// IsMember reports whether the user is in the chat's member set
func (r *ChatRepository) IsMember(ctx context.Context, chatID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM chats WHERE id = $1 AND $2 = ANY(members))`
	if err := r.db.Pool.QueryRow(ctx, query, chatID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

func (r *ChatRepository) checkMembers(ctx context.Context, tx pgx.Tx, workspaceID int64, members []int64) error {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE id = ANY($1) AND workspace_id = $2`
	if err := tx.QueryRow(ctx, query, members, workspaceID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}
	if count != len(members) {
		return domain.ErrUnknownMembers
	}
	return nil
}

func scanChat(row pgx.Row) (*domain.Chat, error) {
	var chat domain.Chat
	err := row.Scan(
		&chat.ID,
		&chat.WorkspaceID,
		&chat.Name,
		&chat.Type,
		&chat.Members,
		&chat.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan chat: %w", err)
	}
	return &chat, nil
}
