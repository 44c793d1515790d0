package service

import (
	"context"
	"fmt"

	"chatserver/internal/domain"
	"chatserver/internal/security"
)

// AuthService handles signup and signin
type AuthService struct {
	users      domain.UserRepository
	workspaces domain.WorkspaceRepository
	jwtManager *security.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	users domain.UserRepository,
	workspaces domain.WorkspaceRepository,
	jwtManager *security.JWTManager,
) *AuthService {
	return &AuthService{
		users:      users,
		workspaces: workspaces,
		jwtManager: jwtManager,
	}
}

// Signup creates a user account. The named workspace is created on first
// use and its first user becomes its owner.
func (s *AuthService) Signup(ctx context.Context, input domain.UserCreate) (*domain.User, string, error) {
	exists, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, "", domain.ErrEmailExists
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	ws, err := s.workspaces.GetByName(ctx, input.Workspace)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get workspace: %w", err)
	}
	if ws == nil {
		if ws, err = s.workspaces.Create(ctx, input.Workspace, 0); err != nil {
			return nil, "", fmt.Errorf("failed to create workspace: %w", err)
		}
	}

	user := &domain.User{
		WorkspaceID:  ws.ID,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	if ws.OwnerID == 0 {
		if _, err := s.workspaces.TransferOwner(ctx, ws.ID, user.ID); err != nil {
			return nil, "", fmt.Errorf("failed to assign workspace owner: %w", err)
		}
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.WorkspaceID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Signin authenticates a user and returns a token
func (s *AuthService) Signin(ctx context.Context, input domain.UserSignin) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !security.VerifyPassword(user.PasswordHash, input.Password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.WorkspaceID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
