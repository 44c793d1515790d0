package domain

import (
	"context"
	"time"
)

// AgentType selects how an agent reacts to a message.
type AgentType string

const (
	AgentTypeProxy AgentType = "proxy"
	AgentTypeReply AgentType = "reply"
	AgentTypeTap   AgentType = "tap"
)

// AdapterType identifies the AI backend an agent talks to.
type AdapterType string

const (
	AdapterTypeDeepSeek AdapterType = "deepseek"
	AdapterTypeGemini   AdapterType = "gemini"
)

// ChatAgent is an automated participant attached to a chat. It is invoked
// for every new message in that chat.
type ChatAgent struct {
	ID        int64          `json:"id"`
	ChatID    int64          `json:"chat_id"`
	Name      string         `json:"name"`
	Type      AgentType      `json:"type"`
	Adapter   AdapterType    `json:"adapter"`
	Model     string         `json:"model"`
	Prompt    string         `json:"prompt"`
	Args      map[string]any `json:"args"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// AgentCreate represents agent creation data
type AgentCreate struct {
	Name    string         `json:"name" validate:"required,max=255"`
	Type    AgentType      `json:"type" validate:"required,oneof=proxy reply tap"`
	Adapter AdapterType    `json:"adapter" validate:"required,oneof=deepseek gemini"`
	Model   string         `json:"model" validate:"required,max=255"`
	Prompt  string         `json:"prompt" validate:"required"`
	Args    map[string]any `json:"args"`
}

// AgentUpdate represents agent update data
type AgentUpdate struct {
	Prompt *string        `json:"prompt,omitempty"`
	Model  *string        `json:"model,omitempty" validate:"omitempty,max=255"`
	Args   map[string]any `json:"args,omitempty"`
}

// AgentRepository defines the interface for chat agent storage
type AgentRepository interface {
	Create(ctx context.Context, agent *ChatAgent) (*ChatAgent, error)
	Update(ctx context.Context, chatID, agentID int64, input AgentUpdate) (*ChatAgent, error)
	// ListByChat returns a chat's agents ordered by ascending id, the
	// invocation order of the decision pipeline.
	ListByChat(ctx context.Context, chatID int64) ([]ChatAgent, error)
	Exists(ctx context.Context, chatID int64, name string) (bool, error)
}
