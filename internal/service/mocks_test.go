package service

import (
	"context"

	"chatserver/internal/domain"
	"chatserver/internal/filestore"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListByWorkspace(ctx context.Context, workspaceID int64) ([]domain.ChatUser, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.ChatUser), args.Error(1)
}

// MockWorkspaceRepository mocks the WorkspaceRepository interface
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, name string, ownerID int64) (*domain.Workspace, error) {
	args := m.Called(ctx, name, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id int64) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) GetByName(ctx context.Context, name string) (*domain.Workspace, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) TransferOwner(ctx context.Context, id, ownerID int64) (*domain.Workspace, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

// MockChatRepository mocks the ChatRepository interface
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Create(ctx context.Context, workspaceID int64, name *string, chatType domain.ChatType, members []int64) (*domain.Chat, error) {
	args := m.Called(ctx, workspaceID, name, chatType, members)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}

func (m *MockChatRepository) Update(ctx context.Context, id, workspaceID int64, name *string, chatType domain.ChatType, members []int64) (*domain.Chat, error) {
	args := m.Called(ctx, id, workspaceID, name, chatType, members)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}

func (m *MockChatRepository) Delete(ctx context.Context, id int64) (*domain.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}

func (m *MockChatRepository) GetByID(ctx context.Context, id, workspaceID int64) (*domain.Chat, error) {
	args := m.Called(ctx, id, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}

func (m *MockChatRepository) ListByUser(ctx context.Context, workspaceID, userID int64) ([]domain.Chat, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Get(0).([]domain.Chat), args.Error(1)
}

func (m *MockChatRepository) IsMember(ctx context.Context, chatID, userID int64) (bool, error) {
	args := m.Called(ctx, chatID, userID)
	return args.Bool(0), args.Error(1)
}

// MockMessageRepository mocks the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, chatID, senderID int64, content string, files []string) (*domain.Message, error) {
	args := m.Called(ctx, chatID, senderID, content, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockMessageRepository) List(ctx context.Context, chatID int64, input domain.MessageList) ([]domain.Message, error) {
	args := m.Called(ctx, chatID, input)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageRepository) Delete(ctx context.Context, chatID, messageID int64) (*domain.Message, error) {
	args := m.Called(ctx, chatID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockMessageRepository) SetModifiedContent(ctx context.Context, messageID int64, content string) error {
	args := m.Called(ctx, messageID, content)
	return args.Error(0)
}

// MockAgentRepository mocks the AgentRepository interface
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Create(ctx context.Context, agent *domain.ChatAgent) (*domain.ChatAgent, error) {
	args := m.Called(ctx, agent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatAgent), args.Error(1)
}

func (m *MockAgentRepository) Update(ctx context.Context, chatID, agentID int64, input domain.AgentUpdate) (*domain.ChatAgent, error) {
	args := m.Called(ctx, chatID, agentID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatAgent), args.Error(1)
}

func (m *MockAgentRepository) ListByChat(ctx context.Context, chatID int64) ([]domain.ChatAgent, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).([]domain.ChatAgent), args.Error(1)
}

func (m *MockAgentRepository) Exists(ctx context.Context, chatID int64, name string) (bool, error) {
	args := m.Called(ctx, chatID, name)
	return args.Bool(0), args.Error(1)
}

// MockStorage mocks the filestore.Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(file filestore.ChatFile, data []byte) error {
	args := m.Called(file, data)
	return args.Error(0)
}

func (m *MockStorage) Exists(file filestore.ChatFile) bool {
	args := m.Called(file)
	return args.Bool(0)
}

func (m *MockStorage) Read(file filestore.ChatFile) ([]byte, error) {
	args := m.Called(file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockMemberCache mocks the MemberCache interface
type MockMemberCache struct {
	mock.Mock
}

func (m *MockMemberCache) Contains(ctx context.Context, chatID, userID int64) (bool, bool, error) {
	args := m.Called(ctx, chatID, userID)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockMemberCache) Set(ctx context.Context, chatID int64, members []int64) error {
	args := m.Called(ctx, chatID, members)
	return args.Error(0)
}

func (m *MockMemberCache) Invalidate(ctx context.Context, chatID int64) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}
