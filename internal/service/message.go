package service

import (
	"context"
	"fmt"

	"chatserver/internal/agent"
	"chatserver/internal/domain"
	"chatserver/internal/filestore"
)

// MessageService handles the message pipeline: validation, persistence
// and the agent decision pass.
type MessageService struct {
	messages domain.MessageRepository
	storage  filestore.Storage
	runner   *agent.Runner
}

// NewMessageService creates a new message service
func NewMessageService(messages domain.MessageRepository, storage filestore.Storage, runner *agent.Runner) *MessageService {
	return &MessageService{messages: messages, storage: storage, runner: runner}
}

// Create validates and persists a message, then runs the chat's agents
// over it. The returned message reflects the state before any agent
// decision; the report describes what the agents did.
func (s *MessageService) Create(ctx context.Context, chatID, senderID int64, input domain.MessageCreate) (*domain.Message, *agent.Report, error) {
	if input.Content == "" {
		return nil, nil, domain.ErrEmptyContent
	}

	for _, url := range input.Files {
		file, err := filestore.ParseURL(url)
		if err != nil {
			return nil, nil, err
		}
		if !s.storage.Exists(file) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, url)
		}
	}

	msg, err := s.messages.Create(ctx, chatID, senderID, input.Content, input.Files)
	if err != nil {
		return nil, nil, err
	}

	var report *agent.Report
	if s.runner != nil {
		report = s.runner.Run(ctx, msg)
	}
	return msg, report, nil
}

// List returns one page of a chat's messages
func (s *MessageService) List(ctx context.Context, chatID int64, input domain.MessageList) ([]domain.Message, error) {
	return s.messages.List(ctx, chatID, input)
}

// Delete removes a message from a chat
func (s *MessageService) Delete(ctx context.Context, chatID, messageID int64) (*domain.Message, error) {
	return s.messages.Delete(ctx, chatID, messageID)
}
