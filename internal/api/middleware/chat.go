package middleware

import (
	"context"
	"net/http"
	"strconv"

	"chatserver/internal/api/response"
	"chatserver/internal/service"

	"github.com/go-chi/chi/v5"
)

const ChatIDKey contextKey = "chatID"

// ChatMiddleware gates chat-scoped routes on membership
type ChatMiddleware struct {
	chatService *service.ChatService
}

// NewChatMiddleware creates a new chat middleware
func NewChatMiddleware(chatService *service.ChatService) *ChatMiddleware {
	return &ChatMiddleware{chatService: chatService}
}

// RequireMember parses the chat id from the URL and rejects callers who
// are not members of the chat
func (m *ChatMiddleware) RequireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatID, err := strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
		if err != nil {
			response.BadRequest(w, "invalid chat ID")
			return
		}

		userID, ok := GetUserID(r.Context())
		if !ok {
			response.Unauthorized(w, "unauthorized")
			return
		}

		member, err := m.chatService.IsMember(r.Context(), chatID, userID)
		if err != nil {
			response.FromError(w, err)
			return
		}
		if !member {
			response.Forbidden(w, "user is not a member of the chat")
			return
		}

		ctx := context.WithValue(r.Context(), ChatIDKey, chatID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetChatID gets the chat ID from context
func GetChatID(ctx context.Context) (int64, bool) {
	chatID, ok := ctx.Value(ChatIDKey).(int64)
	return chatID, ok
}
