package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chatserver/internal/domain"
)

// MessageRepository implements domain.MessageRepository
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, chatID, senderID int64, content string, files []string) (*domain.Message, error) {
	if files == nil {
		files = []string{}
	}
	encoded, err := encodeJSON(files)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		Files:     files,
		CreatedAt: time.Now().UTC(),
	}

	err = r.db.Conn.QueryRowContext(ctx,
		`INSERT INTO messages (chat_id, sender_id, content, files, created_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		chatID, senderID, content, encoded, msg.CreatedAt,
	).Scan(&msg.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

// List returns one page of a chat's messages below the cursor, newest
// first; the last returned id is the next page's cursor
func (r *MessageRepository) List(ctx context.Context, chatID int64, input domain.MessageList) ([]domain.Message, error) {
	lastID, limit := input.Window()

	query := `
		SELECT id, chat_id, sender_id, content, modified_content, files, created_at
		FROM messages
		WHERE chat_id = ? AND id < ?
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.Conn.QueryContext(ctx, query, chatID, lastID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var encoded string
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Content,
			&msg.ModifiedContent, &encoded, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		if err := decodeJSON(encoded, &msg.Files); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// Delete removes a message and returns the prior row
func (r *MessageRepository) Delete(ctx context.Context, chatID, messageID int64) (*domain.Message, error) {
	row := r.db.Conn.QueryRowContext(ctx,
		`DELETE FROM messages WHERE id = ? AND chat_id = ?
		 RETURNING id, chat_id, sender_id, content, modified_content, files, created_at`,
		messageID, chatID)

	var msg domain.Message
	var encoded string
	err := row.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Content,
		&msg.ModifiedContent, &encoded, &msg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: message %d", domain.ErrNotFound, messageID)
		}
		return nil, fmt.Errorf("failed to delete message: %w", err)
	}
	if err := decodeJSON(encoded, &msg.Files); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SetModifiedContent records an agent's rewrite of a message
func (r *MessageRepository) SetModifiedContent(ctx context.Context, messageID int64, content string) error {
	res, err := r.db.Conn.ExecContext(ctx,
		`UPDATE messages SET modified_content = ? WHERE id = ?`, content, messageID)
	if err != nil {
		return fmt.Errorf("failed to set modified content: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: message %d", domain.ErrNotFound, messageID)
	}
	return nil
}
