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

// AgentHandler handles chat agent configuration endpoints
type AgentHandler struct {
	agentService *service.AgentService
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agentService *service.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// Create attaches an agent to the chat
func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	chatID, ok := middleware.GetChatID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.AgentCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	agent, err := h.agentService.Create(r.Context(), chatID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, agent)
}

// Update patches an agent's prompt, model and args
func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	chatID, ok := middleware.GetChatID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	agentID, err := strconv.ParseInt(chi.URLParam(r, "agentID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid agent ID")
		return
	}

	var input domain.AgentUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	agent, err := h.agentService.Update(r.Context(), chatID, agentID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, agent)
}

// List returns the chat's agents in invocation order
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	chatID, ok := middleware.GetChatID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	agents, err := h.agentService.List(r.Context(), chatID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, agents)
}
