// Package agent implements the decision pipeline for automated chat
// participants. Each chat agent is realized as one of a closed set of
// variants that inspect a new message and yield a decision.
package agent

import (
	"context"
	"fmt"

	"chatserver/internal/ai"
	"chatserver/internal/domain"
)

// Context carries the invocation context of a pipeline run.
type Context struct {
	ChatID    int64
	MessageID int64
	SenderID  int64
}

// Decision is the closed set of effects an agent may request.
type Decision interface {
	decision()
}

// Modify sets the message's modified content, keeping the original.
type Modify struct {
	Content string
}

// Reply creates a new message authored by the agent.
type Reply struct {
	Content string
}

// Delete removes the triggering message.
type Delete struct{}

// None requests no effect.
type None struct{}

func (Modify) decision() {}
func (Reply) decision()  {}
func (Delete) decision() {}
func (None) decision()   {}

// Variant is one concrete agent behavior.
type Variant interface {
	Process(ctx context.Context, content string, mctx Context) (Decision, error)
}

// ProxyAgent rewrites the message through the AI backend, prepending its
// prompt to the message text.
type ProxyAgent struct {
	Name    string
	Prompt  string
	Adapter ai.Adapter
}

func (a *ProxyAgent) Process(ctx context.Context, content string, _ Context) (Decision, error) {
	messages := []ai.Message{ai.UserMessage(a.Prompt + ": " + content)}
	response, err := a.Adapter.Complete(ctx, messages)
	if err != nil {
		return nil, err
	}
	return Modify{Content: response}, nil
}

// ReplyAgent answers the message verbatim through the AI backend.
type ReplyAgent struct {
	Name    string
	Prompt  string
	Adapter ai.Adapter
}

func (a *ReplyAgent) Process(ctx context.Context, content string, _ Context) (Decision, error) {
	messages := []ai.Message{ai.UserMessage(content)}
	response, err := a.Adapter.Complete(ctx, messages)
	if err != nil {
		return nil, err
	}
	return Reply{Content: response}, nil
}

// TapAgent observes without calling the backend. Hook point for future
// side effects.
type TapAgent struct {
	Name string
}

func (a *TapAgent) Process(_ context.Context, _ string, _ Context) (Decision, error) {
	return None{}, nil
}

// New builds the variant for a stored chat agent using the given backend
// adapter.
func New(a domain.ChatAgent, adapter ai.Adapter) (Variant, error) {
	switch a.Type {
	case domain.AgentTypeProxy:
		return &ProxyAgent{Name: a.Name, Prompt: a.Prompt, Adapter: adapter}, nil
	case domain.AgentTypeReply:
		return &ReplyAgent{Name: a.Name, Prompt: a.Prompt, Adapter: adapter}, nil
	case domain.AgentTypeTap:
		return &TapAgent{Name: a.Name}, nil
	default:
		return nil, fmt.Errorf("unknown agent type: %s", a.Type)
	}
}
