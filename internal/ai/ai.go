// Package ai defines the chat-completion contract the agent pipeline is
// written against. Concrete backends live in subpackages and plug in by
// implementing Adapter.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// Role tags a message in a completion request.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one role-tagged entry of a completion request.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// Adapter is the abstract AI backend contract. Complete sends an ordered
// list of messages and returns the answer text.
type Adapter interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ErrNoResponse indicates the backend returned zero choices.
var ErrNoResponse = errors.New("no response from AI backend")

// NetworkError wraps transport and decoding failures of a backend call.
type NetworkError struct {
	Adapter string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s network error: %v", e.Adapter, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
