package postgres

import (
	"context"
	"errors"
	"fmt"

	"chatserver/internal/domain"

	"github.com/jackc/pgx/v5"
)

// MessageRepository implements domain.MessageRepository
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, chat_id, sender_id, content, modified_content, files, created_at`

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, chatID, senderID int64, content string, files []string) (*domain.Message, error) {
	if files == nil {
		files = []string{}
	}

	query := `
		INSERT INTO messages (chat_id, sender_id, content, files)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + messageColumns

	msg, err := scanMessage(r.db.Pool.QueryRow(ctx, query, chatID, senderID, content, files))
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

// List returns one page of a chat's messages: ids strictly below the
// cursor, newest first, capped by the clamped limit. Passing the last
// returned id as the next cursor walks toward older messages. Each call
// is independent and deterministic given the same cursor; no
// server-side cursor state exists.
func (r *MessageRepository) List(ctx context.Context, chatID int64, input domain.MessageList) ([]domain.Message, error) {
	lastID, limit := input.Window()

	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE chat_id = $1 AND id < $2
		ORDER BY id DESC
		LIMIT $3
	`

	rows, err := r.db.Pool.Query(ctx, query, chatID, lastID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}

	return messages, rows.Err()
}

// Delete removes a message and returns the prior row
func (r *MessageRepository) Delete(ctx context.Context, chatID, messageID int64) (*domain.Message, error) {
	query := `
		DELETE FROM messages
		WHERE id = $1 AND chat_id = $2
		RETURNING ` + messageColumns

	msg, err := scanMessage(r.db.Pool.QueryRow(ctx, query, messageID, chatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: message %d", domain.ErrNotFound, messageID)
		}
		return nil, err
	}
	return msg, nil
}

// SetModifiedContent records an agent's rewrite of a message. The
// original content column is never touched.
func (r *MessageRepository) SetModifiedContent(ctx context.Context, messageID int64, content string) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE messages SET modified_content = $2 WHERE id = $1`, messageID, content)
	if err != nil {
		return fmt.Errorf("failed to set modified content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: message %d", domain.ErrNotFound, messageID)
	}
	return nil
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var msg domain.Message
	err := row.Scan(
		&msg.ID,
		&msg.ChatID,
		&msg.SenderID,
		&msg.Content,
		&msg.ModifiedContent,
		&msg.Files,
		&msg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan message: %w", err)
	}
	return &msg, nil
}
