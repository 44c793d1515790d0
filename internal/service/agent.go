package service

import (
	"context"
	"fmt"

	"chatserver/internal/domain"
)

// AgentService handles chat agent configuration
type AgentService struct {
	agents domain.AgentRepository
}

// NewAgentService creates a new agent service
func NewAgentService(agents domain.AgentRepository) *AgentService {
	return &AgentService{agents: agents}
}

// Create attaches a new agent to a chat. Agent names are unique per chat.
func (s *AgentService) Create(ctx context.Context, chatID int64, input domain.AgentCreate) (*domain.ChatAgent, error) {
	exists, err := s.agents.Exists(ctx, chatID, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check agent name: %w", err)
	}
	if exists {
		return nil, domain.ErrAgentExists
	}

	return s.agents.Create(ctx, &domain.ChatAgent{
		ChatID:  chatID,
		Name:    input.Name,
		Type:    input.Type,
		Adapter: input.Adapter,
		Model:   input.Model,
		Prompt:  input.Prompt,
		Args:    input.Args,
	})
}

// Update patches an existing agent's prompt, model and args
func (s *AgentService) Update(ctx context.Context, chatID, agentID int64, input domain.AgentUpdate) (*domain.ChatAgent, error) {
	return s.agents.Update(ctx, chatID, agentID, input)
}

// List returns a chat's agents in their invocation order
func (s *AgentService) List(ctx context.Context, chatID int64) ([]domain.ChatAgent, error) {
	return s.agents.ListByChat(ctx, chatID)
}
