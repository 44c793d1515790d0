package handler

import (
	"encoding/json"
	"net/http"

	"chatserver/internal/api/response"
	"chatserver/internal/domain"
	"chatserver/internal/service"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func validationErrors(err error) any {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	errors := make(map[string]string)
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			errors[e.Field()] = "field is required"
		case "email":
			errors[e.Field()] = "invalid email format"
		case "min":
			errors[e.Field()] = "must be at least " + e.Param() + " characters"
		case "max":
			errors[e.Field()] = "must be at most " + e.Param() + " characters"
		case "oneof":
			errors[e.Field()] = "must be one of: " + e.Param()
		default:
			errors[e.Field()] = "validation failed on " + e.Tag()
		}
	}
	return errors
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles account creation
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input domain.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	user, token, err := h.authService.Signup(r.Context(), input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, map[string]any{
		"user":  user,
		"token": token,
	})
}

// Signin handles user login
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var input domain.UserSignin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	user, token, err := h.authService.Signin(r.Context(), input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"user":  user,
		"token": token,
	})
}
