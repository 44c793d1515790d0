package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chatserver/internal/domain"
)

// ChatRepository implements domain.ChatRepository
type ChatRepository struct {
	db *DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create inserts a new chat, re-checking member existence in the same
// transaction as the insert.
func (r *ChatRepository) Create(ctx context.Context, workspaceID int64, name *string, chatType domain.ChatType, members []int64) (*domain.Chat, error) {
	tx, err := r.db.Conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkMembers(ctx, tx, workspaceID, members); err != nil {
		return nil, err
	}

	encoded, err := encodeJSON(members)
	if err != nil {
		return nil, err
	}

	chat := &domain.Chat{
		WorkspaceID: workspaceID,
		Name:        name,
		Type:        chatType,
		Members:     members,
		CreatedAt:   time.Now().UTC(),
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO chats (workspace_id, name, type, members, created_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		workspaceID, name, chatType, encoded, chat.CreatedAt,
	).Scan(&chat.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return chat, nil
}

// Update rewrites a chat's name, type and members
func (r *ChatRepository) Update(ctx context.Context, id, workspaceID int64, name *string, chatType domain.ChatType, members []int64) (*domain.Chat, error) {
	tx, err := r.db.Conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkMembers(ctx, tx, workspaceID, members); err != nil {
		return nil, err
	}

	encoded, err := encodeJSON(members)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE chats SET name = ?, type = ?, members = ? WHERE id = ? AND workspace_id = ?`,
		name, chatType, encoded, id, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to update chat: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: chat %d", domain.ErrNotFound, id)
	}

	chat, err := scanChat(tx.QueryRowContext(ctx,
		`SELECT id, workspace_id, name, type, members, created_at FROM chats WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return chat, nil
}

// Delete removes a chat and returns the prior row
func (r *ChatRepository) Delete(ctx context.Context, id int64) (*domain.Chat, error) {
	chat, err := scanChat(r.db.Conn.QueryRowContext(ctx,
		`DELETE FROM chats WHERE id = ? RETURNING id, workspace_id, name, type, members, created_at`, id))
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("%w: chat %d", domain.ErrNotFound, id)
	}
	return chat, nil
}

// GetByID retrieves a chat within a workspace
func (r *ChatRepository) GetByID(ctx context.Context, id, workspaceID int64) (*domain.Chat, error) {
	return scanChat(r.db.Conn.QueryRowContext(ctx,
		`SELECT id, workspace_id, name, type, members, created_at
		 FROM chats WHERE id = ? AND workspace_id = ?`, id, workspaceID))
}

// ListByUser retrieves the chats a user belongs to within a workspace
func (r *ChatRepository) ListByUser(ctx context.Context, workspaceID, userID int64) ([]domain.Chat, error) {
	query := `
		SELECT id, workspace_id, name, type, members, created_at
		FROM chats
		WHERE workspace_id = ?
		  AND EXISTS (SELECT 1 FROM json_each(chats.members) WHERE json_each.value = ?)
		ORDER BY id
	`

	rows, err := r.db.Conn.QueryContext(ctx, query, workspaceID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var chat domain.Chat
		var encoded string
		if err := rows.Scan(&chat.ID, &chat.WorkspaceID, &chat.Name, &chat.Type, &encoded, &chat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		if err := decodeJSON(encoded, &chat.Members); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

// IsMember reports whether the user is in the chat's member set
func (r *ChatRepository) IsMember(ctx context.Context, chatID, userID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM chats, json_each(chats.members)
			WHERE chats.id = ? AND json_each.value = ?
		)
	`
	if err := r.db.Conn.QueryRowContext(ctx, query, chatID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

func checkMembers(ctx context.Context, tx *sql.Tx, workspaceID int64, members []int64) error {
	encoded, err := encodeJSON(members)
	if err != nil {
		return err
	}

	var count int
	query := `
		SELECT COUNT(*) FROM users
		WHERE workspace_id = ?
		  AND id IN (SELECT value FROM json_each(?))
	`
	if err := tx.QueryRowContext(ctx, query, workspaceID, encoded).Scan(&count); err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}
	if count != len(members) {
		return domain.ErrUnknownMembers
	}
	return nil
}

func scanChat(row *sql.Row) (*domain.Chat, error) {
	var chat domain.Chat
	var encoded string
	err := row.Scan(&chat.ID, &chat.WorkspaceID, &chat.Name, &chat.Type, &encoded, &chat.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan chat: %w", err)
	}
	if err := decodeJSON(encoded, &chat.Members); err != nil {
		return nil, err
	}
	return &chat, nil
}
