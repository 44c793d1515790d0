package service

import (
	"context"
	"testing"

	"chatserver/internal/agent"
	"chatserver/internal/domain"
	"chatserver/internal/filestore"

	"github.com/stretchr/testify/assert"
)

func TestMessageService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("empty content is rejected", func(t *testing.T) {
		messages := new(MockMessageRepository)
		svc := NewMessageService(messages, new(MockStorage), nil)

		_, _, err := svc.Create(ctx, 3, 1, domain.MessageCreate{Content: ""})
		assert.ErrorIs(t, err, domain.ErrEmptyContent)
	})

	t.Run("malformed file url is rejected", func(t *testing.T) {
		messages := new(MockMessageRepository)
		svc := NewMessageService(messages, new(MockStorage), nil)

		_, _, err := svc.Create(ctx, 3, 1, domain.MessageCreate{
			Content: "hi",
			Files:   []string{"/elsewhere/1/aaa/bbb/ccc.txt"},
		})
		assert.ErrorIs(t, err, domain.ErrMalformedFileURL)
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		messages := new(MockMessageRepository)
		storage := new(MockStorage)
		svc := NewMessageService(messages, storage, nil)

		file := filestore.NewChatFile(1, "a.txt", []byte("hello"))
		storage.On("Exists", file).Return(false)

		_, _, err := svc.Create(ctx, 3, 1, domain.MessageCreate{
			Content: "hi",
			Files:   []string{file.URL()},
		})
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
		assert.ErrorContains(t, err, file.URL())
	})

	t.Run("persists and runs the agent pass", func(t *testing.T) {
		messages := new(MockMessageRepository)
		storage := new(MockStorage)
		agents := new(MockAgentRepository)
		runner := agent.NewRunner(agents, messages, agent.NewRegistry())
		svc := NewMessageService(messages, storage, runner)

		file := filestore.NewChatFile(1, "a.txt", []byte("hello"))
		storage.On("Exists", file).Return(true)

		created := &domain.Message{ID: 42, ChatID: 3, SenderID: 1, Content: "hi", Files: []string{file.URL()}}
		messages.On("Create", ctx, int64(3), int64(1), "hi", []string{file.URL()}).
			Return(created, nil)
		agents.On("ListByChat", ctx, int64(3)).Return([]domain.ChatAgent{}, nil)

		msg, report, err := svc.Create(ctx, 3, 1, domain.MessageCreate{
			Content: "hi",
			Files:   []string{file.URL()},
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(42), msg.ID)
		assert.NotNil(t, report)
		assert.Equal(t, int64(42), report.MessageID)
		assert.False(t, report.Deleted)

		messages.AssertExpectations(t)
		agents.AssertExpectations(t)
	})
}

func TestMessageService_Delete(t *testing.T) {
	ctx := context.Background()

	messages := new(MockMessageRepository)
	svc := NewMessageService(messages, new(MockStorage), nil)

	messages.On("Delete", ctx, int64(3), int64(42)).
		Return(&domain.Message{ID: 42, ChatID: 3}, nil).Once()
	messages.On("Delete", ctx, int64(3), int64(42)).
		Return(nil, domain.ErrNotFound)

	msg, err := svc.Delete(ctx, 3, 42)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), msg.ID)

	// a second delete of the same message misses
	_, err = svc.Delete(ctx, 3, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
