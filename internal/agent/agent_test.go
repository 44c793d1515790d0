package agent

import (
	"context"
	"errors"
	"testing"

	"chatserver/internal/ai"
	"chatserver/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAdapter answers every completion with a fixed response or error.
type stubAdapter struct {
	response string
	err      error
	calls    []string
}

func (s *stubAdapter) Name() string { return "stub" }

func (s *stubAdapter) Complete(_ context.Context, messages []ai.Message) (string, error) {
	for _, m := range messages {
		s.calls = append(s.calls, m.Content)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestProxyAgent_Process(t *testing.T) {
	adapter := &stubAdapter{response: "bonjour"}
	variant := &ProxyAgent{Name: "translator", Prompt: "Translate to French", Adapter: adapter}

	decision, err := variant.Process(context.Background(), "hello", Context{})
	require.NoError(t, err)

	assert.Equal(t, Modify{Content: "bonjour"}, decision)
	require.Len(t, adapter.calls, 1)
	assert.Equal(t, "Translate to French: hello", adapter.calls[0])
}

func TestReplyAgent_Process(t *testing.T) {
	adapter := &stubAdapter{response: "42"}
	variant := &ReplyAgent{Name: "oracle", Prompt: "ignored here", Adapter: adapter}

	decision, err := variant.Process(context.Background(), "what is the answer", Context{})
	require.NoError(t, err)

	assert.Equal(t, Reply{Content: "42"}, decision)
	require.Len(t, adapter.calls, 1)
	assert.Equal(t, "what is the answer", adapter.calls[0])
}

func TestTapAgent_Process(t *testing.T) {
	variant := &TapAgent{Name: "audit"}

	decision, err := variant.Process(context.Background(), "anything", Context{})
	require.NoError(t, err)
	assert.Equal(t, None{}, decision)
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(domain.ChatAgent{Type: "mystery"}, nil)
	assert.Error(t, err)
}

// fakeAgentRepo serves a fixed agent list.
type fakeAgentRepo struct {
	agents []domain.ChatAgent
}

func (f *fakeAgentRepo) Create(context.Context, *domain.ChatAgent) (*domain.ChatAgent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAgentRepo) Update(context.Context, int64, int64, domain.AgentUpdate) (*domain.ChatAgent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAgentRepo) ListByChat(context.Context, int64) ([]domain.ChatAgent, error) {
	return f.agents, nil
}

func (f *fakeAgentRepo) Exists(context.Context, int64, string) (bool, error) {
	return false, nil
}

// fakeMessageRepo records decision applications in memory.
type fakeMessageRepo struct {
	created  []domain.Message
	modified map[int64]string
	deleted  []int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{modified: make(map[int64]string)}
}

func (f *fakeMessageRepo) Create(_ context.Context, chatID, senderID int64, content string, files []string) (*domain.Message, error) {
	msg := domain.Message{ID: int64(len(f.created) + 1000), ChatID: chatID, SenderID: senderID, Content: content, Files: files}
	f.created = append(f.created, msg)
	return &msg, nil
}

func (f *fakeMessageRepo) List(context.Context, int64, domain.MessageList) ([]domain.Message, error) {
	return nil, nil
}

func (f *fakeMessageRepo) Delete(_ context.Context, _ int64, messageID int64) (*domain.Message, error) {
	f.deleted = append(f.deleted, messageID)
	return &domain.Message{ID: messageID}, nil
}

func (f *fakeMessageRepo) SetModifiedContent(_ context.Context, messageID int64, content string) error {
	f.modified[messageID] = content
	return nil
}

func testRegistry(adapter ai.Adapter) *Registry {
	registry := NewRegistry()
	registry.Register(domain.AdapterTypeDeepSeek, func(string) ai.Adapter { return adapter })
	return registry
}

func TestRunner_AppliesDecisionsInOrder(t *testing.T) {
	agents := &fakeAgentRepo{agents: []domain.ChatAgent{
		{ID: 1, ChatID: 3, Name: "rewriter", Type: domain.AgentTypeProxy, Adapter: domain.AdapterTypeDeepSeek, Prompt: "Clean up"},
		{ID: 2, ChatID: 3, Name: "responder", Type: domain.AgentTypeReply, Adapter: domain.AdapterTypeDeepSeek},
	}}
	messages := newFakeMessageRepo()
	runner := NewRunner(agents, messages, testRegistry(&stubAdapter{response: "polished"}))

	msg := &domain.Message{ID: 42, ChatID: 3, SenderID: 1, Content: "raw text"}
	report := runner.Run(context.Background(), msg)

	require.Len(t, report.Results, 2)
	assert.NoError(t, report.Results[0].Err)
	assert.NoError(t, report.Results[1].Err)
	assert.False(t, report.Deleted)

	// proxy decision lands as modified content, reply as a new message
	assert.Equal(t, "polished", messages.modified[42])
	require.Len(t, messages.created, 1)
	assert.Equal(t, int64(2), messages.created[0].SenderID)
	assert.Equal(t, "polished", messages.created[0].Content)
}

func TestRunner_FailingAgentDoesNotStopTheRun(t *testing.T) {
	broken := &stubAdapter{err: &ai.NetworkError{Adapter: "stub", Err: errors.New("connection refused")}}

	agents := &fakeAgentRepo{agents: []domain.ChatAgent{
		{ID: 1, ChatID: 3, Name: "broken", Type: domain.AgentTypeReply, Adapter: domain.AdapterTypeDeepSeek},
		{ID: 2, ChatID: 3, Name: "audit", Type: domain.AgentTypeTap, Adapter: domain.AdapterTypeDeepSeek},
	}}
	messages := newFakeMessageRepo()
	runner := NewRunner(agents, messages, testRegistry(broken))

	msg := &domain.Message{ID: 42, ChatID: 3, SenderID: 1, Content: "hello"}
	report := runner.Run(context.Background(), msg)

	require.Len(t, report.Results, 2)
	assert.Error(t, report.Results[0].Err)
	assert.NoError(t, report.Results[1].Err)

	// the message itself is untouched
	assert.Empty(t, messages.deleted)
	assert.Empty(t, messages.created)
}

func TestRunner_UnconfiguredAdapterFails(t *testing.T) {
	agents := &fakeAgentRepo{agents: []domain.ChatAgent{
		{ID: 1, ChatID: 3, Name: "orphan", Type: domain.AgentTypeReply, Adapter: domain.AdapterTypeGemini},
	}}
	messages := newFakeMessageRepo()
	runner := NewRunner(agents, messages, testRegistry(&stubAdapter{response: "unused"}))

	report := runner.Run(context.Background(), &domain.Message{ID: 42, ChatID: 3, Content: "hello"})

	require.Len(t, report.Results, 1)
	assert.Error(t, report.Results[0].Err)
}

func TestRunner_TapIgnoresUnconfiguredAdapter(t *testing.T) {
	agents := &fakeAgentRepo{agents: []domain.ChatAgent{
		{ID: 1, ChatID: 3, Name: "audit", Type: domain.AgentTypeTap, Adapter: domain.AdapterTypeGemini},
	}}
	messages := newFakeMessageRepo()
	runner := NewRunner(agents, messages, NewRegistry())

	report := runner.Run(context.Background(), &domain.Message{ID: 42, ChatID: 3, Content: "hello"})

	require.Len(t, report.Results, 1)
	assert.NoError(t, report.Results[0].Err)
	assert.Equal(t, None{}, report.Results[0].Decision)
}

func TestRunner_ApplyDelete(t *testing.T) {
	messages := newFakeMessageRepo()
	runner := NewRunner(&fakeAgentRepo{}, messages, NewRegistry())

	msg := &domain.Message{ID: 42, ChatID: 3, Content: "hello"}
	report := &Report{MessageID: msg.ID}

	err := runner.apply(context.Background(), domain.ChatAgent{ID: 9}, msg, Delete{}, report)
	require.NoError(t, err)
	assert.True(t, report.Deleted)
	assert.Equal(t, []int64{42}, messages.deleted)
}
