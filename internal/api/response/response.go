package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"chatserver/internal/domain"

	"github.com/rs/zerolog/log"
)

// Response represents a standard API response
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	json.NewEncoder(w).Encode(resp)
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, message any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{
		Success: false,
		Error:   message,
	}

	json.NewEncoder(w).Encode(resp)
}

// Created sends a 201 Created response with data
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, message any) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(w http.ResponseWriter, message any) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(w http.ResponseWriter, message any) {
	Error(w, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, message any) {
	Error(w, http.StatusNotFound, message)
}

// Conflict sends a 409 Conflict response
func Conflict(w http.ResponseWriter, message any) {
	Error(w, http.StatusConflict, message)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, message any) {
	Error(w, http.StatusInternalServerError, message)
}

// FromError maps a domain error to its HTTP status. Unclassified errors
// are logged and answered with a generic 500 so internal detail does not
// leak to clients.
func FromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrAgentExists):
		Conflict(w, err.Error())
	case errors.Is(err, domain.ErrTooFewMembers),
		errors.Is(err, domain.ErrDuplicateMembers),
		errors.Is(err, domain.ErrActorNotMember),
		errors.Is(err, domain.ErrNameTooShort),
		errors.Is(err, domain.ErrGroupNeedsName),
		errors.Is(err, domain.ErrUnknownMembers),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrMalformedFileURL),
		errors.Is(err, domain.ErrFileNotFound):
		BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotChatMember),
		errors.Is(err, domain.ErrNotWorkspaceOwner):
		Forbidden(w, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		NotFound(w, err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		InternalError(w, "internal server error")
	}
}
