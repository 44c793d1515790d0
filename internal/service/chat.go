package service

import (
	"context"
	"fmt"

	"chatserver/internal/domain"

	"github.com/rs/zerolog/log"
)

// MemberCache caches chat member sets for the hot message path. A nil
// cache is valid and every check falls through to the store.
type MemberCache interface {
	Contains(ctx context.Context, chatID, userID int64) (member, hit bool, err error)
	Set(ctx context.Context, chatID int64, members []int64) error
	Invalidate(ctx context.Context, chatID int64) error
}

// ChatService handles chat lifecycle and membership
type ChatService struct {
	chats domain.ChatRepository
	cache MemberCache
}

// NewChatService creates a new chat service
func NewChatService(chats domain.ChatRepository, cache MemberCache) *ChatService {
	return &ChatService{chats: chats, cache: cache}
}

// Create validates the chat shape, derives its type and persists it
func (s *ChatService) Create(ctx context.Context, workspaceID, actorID int64, input domain.ChatCreate) (*domain.Chat, error) {
	chatType, err := domain.ResolveChatType(input.Members, input.Name, input.Public, actorID)
	if err != nil {
		return nil, err
	}

	chat, err := s.chats.Create(ctx, workspaceID, input.Name, chatType, input.Members)
	if err != nil {
		return nil, err
	}

	s.cacheMembers(ctx, chat)
	return chat, nil
}

// Update revalidates the chat shape against the new members and name,
// rederives the type and persists the change
func (s *ChatService) Update(ctx context.Context, chatID, workspaceID, actorID int64, input domain.ChatCreate) (*domain.Chat, error) {
	chatType, err := domain.ResolveChatType(input.Members, input.Name, input.Public, actorID)
	if err != nil {
		return nil, err
	}

	chat, err := s.chats.Update(ctx, chatID, workspaceID, input.Name, chatType, input.Members)
	if err != nil {
		return nil, err
	}

	s.cacheMembers(ctx, chat)
	return chat, nil
}

// Delete removes a chat
func (s *ChatService) Delete(ctx context.Context, chatID int64) (*domain.Chat, error) {
	chat, err := s.chats.Delete(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, chatID); err != nil {
			log.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to invalidate member cache")
		}
	}
	return chat, nil
}

// Get retrieves a chat within a workspace
func (s *ChatService) Get(ctx context.Context, chatID, workspaceID int64) (*domain.Chat, error) {
	chat, err := s.chats.GetByID(ctx, chatID, workspaceID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("%w: chat %d", domain.ErrNotFound, chatID)
	}
	return chat, nil
}

// List returns the chats a user belongs to
func (s *ChatService) List(ctx context.Context, workspaceID, userID int64) ([]domain.Chat, error) {
	return s.chats.ListByUser(ctx, workspaceID, userID)
}

// IsMember reports whether the user belongs to the chat, consulting the
// member cache before the store
func (s *ChatService) IsMember(ctx context.Context, chatID, userID int64) (bool, error) {
	if s.cache != nil {
		if member, hit, err := s.cache.Contains(ctx, chatID, userID); err == nil && hit {
			return member, nil
		}
	}

	return s.chats.IsMember(ctx, chatID, userID)
}

func (s *ChatService) cacheMembers(ctx context.Context, chat *domain.Chat) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, chat.ID, chat.Members); err != nil {
		log.Warn().Err(err).Int64("chat_id", chat.ID).Msg("failed to cache chat members")
	}
}
