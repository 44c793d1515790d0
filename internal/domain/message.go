package domain

import (
	"context"
	"math"
	"time"
)

// Message is immutable once created except for ModifiedContent, which an
// agent's modify decision may set. The original content is retained.
type Message struct {
	ID              int64     `json:"id"`
	ChatID          int64     `json:"chat_id"`
	SenderID        int64     `json:"sender_id"`
	Content         string    `json:"content"`
	ModifiedContent *string   `json:"modified_content,omitempty"`
	Files           []string  `json:"files"`
	CreatedAt       time.Time `json:"created_at"`
}

// MessageCreate represents message creation data
type MessageCreate struct {
	Content string   `json:"content"`
	Files   []string `json:"files"`
}

// MessageList holds backward-paging cursor parameters. LastID bounds the
// page to ids strictly below it; zero means unbounded. Limit 0 means no
// cap, anything outside [1,100] is clamped to 100.
type MessageList struct {
	LastID int64 `json:"last_id"`
	Limit  int64 `json:"limit"`
}

// Window resolves the effective query bounds for one page: the exclusive
// upper id bound and the row cap. A zero cursor means unbounded; limit 0
// means no cap, anything outside [1,100] is clamped to 100 so the value
// reaching the store is always a valid LIMIT.
func (l MessageList) Window() (lastID, limit int64) {
	lastID = l.LastID
	if lastID == 0 {
		lastID = math.MaxInt64
	}

	switch {
	case l.Limit == 0:
		limit = math.MaxInt64
	case l.Limit < 0 || l.Limit > 100:
		limit = 100
	default:
		limit = l.Limit
	}
	return lastID, limit
}

// MessageRepository defines the interface for message storage
type MessageRepository interface {
	Create(ctx context.Context, chatID, senderID int64, content string, files []string) (*Message, error)
	List(ctx context.Context, chatID int64, input MessageList) ([]Message, error)
	Delete(ctx context.Context, chatID, messageID int64) (*Message, error)
	SetModifiedContent(ctx context.Context, messageID int64, content string) error
}
