package domain

import (
	"context"
	"time"
)

// User represents a platform user. A user belongs to exactly one workspace.
type User struct {
	ID           int64     `json:"id"`
	WorkspaceID  int64     `json:"workspace_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChatUser is the member-facing projection of a user.
type ChatUser struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// UserCreate represents signup data
type UserCreate struct {
	Workspace string `json:"workspace" validate:"required,max=255"`
	FullName  string `json:"full_name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

// UserSignin represents login credentials
type UserSignin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]ChatUser, error)
}
