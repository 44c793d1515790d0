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

// MessageHandler handles message endpoints. All routes are chat-scoped
// and sit behind the chat membership middleware.
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Create persists a message and runs the chat's agents over it
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	chatID, ok := middleware.GetChatID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.MessageCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	msg, report, err := h.messageService.Create(r.Context(), chatID, userID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	body := map[string]any{"message": msg}
	if report != nil {
		body["agent_run"] = report
	}
	response.Created(w, body)
}

// List returns one backward page of the chat's messages
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	chatID, ok := middleware.GetChatID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.MessageList
	if v := r.URL.Query().Get("last_id"); v != "" {
		lastID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(w, "invalid last_id")
			return
		}
		input.LastID = lastID
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(w, "invalid limit")
			return
		}
		input.Limit = limit
	}

	messages, err := h.messageService.List(r.Context(), chatID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, messages)
}

// Delete removes a message from the chat
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	chatID, ok := middleware.GetChatID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	messageID, err := strconv.ParseInt(chi.URLParam(r, "messageID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid message ID")
		return
	}

	msg, err := h.messageService.Delete(r.Context(), chatID, messageID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, msg)
}
