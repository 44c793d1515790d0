package domain

import (
	"context"
	"time"
)

// ChatType is derived from membership and name, never set directly.
type ChatType string

const (
	ChatTypeSingle         ChatType = "single"
	ChatTypeGroup          ChatType = "group"
	ChatTypePrivateChannel ChatType = "private_channel"
	ChatTypePublicChannel  ChatType = "public_channel"
)

// Chat represents a conversation scoped to a workspace
type Chat struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	Name        *string   `json:"name"`
	Type        ChatType  `json:"type"`
	Members     []int64   `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatCreate represents chat creation/update data
type ChatCreate struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Members []int64 `json:"members" validate:"required"`
	Public  bool    `json:"public"`
}

// ResolveChatType validates a chat's membership and name and derives its
// type. Member existence is not checked here; the store re-validates it
// inside the transaction that mutates the chat row.
func ResolveChatType(members []int64, name *string, public bool, actorID int64) (ChatType, error) {
	if len(members) < 2 {
		return "", ErrTooFewMembers
	}

	seen := make(map[int64]struct{}, len(members))
	actorFound := false
	for _, m := range members {
		if _, ok := seen[m]; ok {
			return "", ErrDuplicateMembers
		}
		seen[m] = struct{}{}
		if m == actorID {
			actorFound = true
		}
	}
	if !actorFound {
		return "", ErrActorNotMember
	}

	if name != nil && len(*name) < 3 {
		return "", ErrNameTooShort
	}
	if len(members) > 8 && name == nil {
		return "", ErrGroupNeedsName
	}

	switch {
	case name == nil && len(members) == 2:
		return ChatTypeSingle, nil
	case name == nil:
		return ChatTypeGroup, nil
	case public:
		return ChatTypePublicChannel, nil
	default:
		return ChatTypePrivateChannel, nil
	}
}

// ChatRepository defines the interface for chat storage.
// Create and Update verify that every member id resolves to an existing
// user in the workspace within the same transaction as the row mutation,
// failing with ErrUnknownMembers otherwise.
type ChatRepository interface {
	Create(ctx context.Context, workspaceID int64, name *string, chatType ChatType, members []int64) (*Chat, error)
	Update(ctx context.Context, id, workspaceID int64, name *string, chatType ChatType, members []int64) (*Chat, error)
	Delete(ctx context.Context, id int64) (*Chat, error)
	GetByID(ctx context.Context, id, workspaceID int64) (*Chat, error)
	ListByUser(ctx context.Context, workspaceID, userID int64) ([]Chat, error)
	IsMember(ctx context.Context, chatID, userID int64) (bool, error)
}
