package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"chatserver/internal/api/middleware"
	"chatserver/internal/api/response"
	"chatserver/internal/domain"
	"chatserver/internal/service"

	"github.com/go-chi/chi/v5"
)

// ChatHandler handles chat lifecycle endpoints
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Create creates a chat in the caller's workspace
func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	workspaceID, userID, ok := callerIdentity(r)
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.ChatCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	chat, err := h.chatService.Create(r.Context(), workspaceID, userID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, chat)
}

// Update rewrites a chat's name and membership
func (h *ChatHandler) Update(w http.ResponseWriter, r *http.Request) {
	workspaceID, userID, ok := callerIdentity(r)
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	chatID, err := chatIDParam(r)
	if err != nil {
		response.BadRequest(w, "invalid chat ID")
		return
	}

	var input domain.ChatCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	chat, err := h.chatService.Update(r.Context(), chatID, workspaceID, userID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, chat)
}

// Delete removes a chat
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	chatID, err := chatIDParam(r)
	if err != nil {
		response.BadRequest(w, "invalid chat ID")
		return
	}

	chat, err := h.chatService.Delete(r.Context(), chatID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, chat)
}

// Get returns one chat in the caller's workspace
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	workspaceID, _, ok := callerIdentity(r)
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	chatID, err := chatIDParam(r)
	if err != nil {
		response.BadRequest(w, "invalid chat ID")
		return
	}

	chat, err := h.chatService.Get(r.Context(), chatID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, chat)
}

// List returns the chats the caller belongs to
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, userID, ok := callerIdentity(r)
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	chats, err := h.chatService.List(r.Context(), workspaceID, userID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, chats)
}

func callerIdentity(r *http.Request) (workspaceID, userID int64, ok bool) {
	workspaceID, ok = middleware.GetWorkspaceID(r.Context())
	if !ok {
		return 0, 0, false
	}
	userID, ok = middleware.GetUserID(r.Context())
	return workspaceID, userID, ok
}

func chatIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
}
