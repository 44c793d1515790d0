package service

import (
	"context"
	"testing"
	"time"

	"chatserver/internal/domain"
	"chatserver/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestJWT() *security.JWTManager {
	return security.NewJWTManager("test-secret-key-with-32-chars!!", time.Hour)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("first user becomes workspace owner", func(t *testing.T) {
		users := new(MockUserRepository)
		workspaces := new(MockWorkspaceRepository)
		svc := NewAuthService(users, workspaces, newTestJWT())

		users.On("EmailExists", ctx, "a@acme.com").Return(false, nil)
		workspaces.On("GetByName", ctx, "acme").Return(nil, nil)
		workspaces.On("Create", ctx, "acme", int64(0)).
			Return(&domain.Workspace{ID: 1, Name: "acme"}, nil)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.User).ID = 10
			}).Return(nil)
		workspaces.On("TransferOwner", ctx, int64(1), int64(10)).
			Return(&domain.Workspace{ID: 1, Name: "acme", OwnerID: 10}, nil)

		user, token, err := svc.Signup(ctx, domain.UserCreate{
			Workspace: "acme",
			FullName:  "Alice",
			Email:     "a@acme.com",
			Password:  "password1",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(10), user.ID)
		assert.Equal(t, int64(1), user.WorkspaceID)
		assert.NotEqual(t, "password1", user.PasswordHash)

		users.AssertExpectations(t)
		workspaces.AssertExpectations(t)
	})

	t.Run("joining an existing workspace keeps its owner", func(t *testing.T) {
		users := new(MockUserRepository)
		workspaces := new(MockWorkspaceRepository)
		svc := NewAuthService(users, workspaces, newTestJWT())

		users.On("EmailExists", ctx, "b@acme.com").Return(false, nil)
		workspaces.On("GetByName", ctx, "acme").
			Return(&domain.Workspace{ID: 1, Name: "acme", OwnerID: 10}, nil)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.User).ID = 11
			}).Return(nil)

		_, _, err := svc.Signup(ctx, domain.UserCreate{
			Workspace: "acme",
			FullName:  "Bob",
			Email:     "b@acme.com",
			Password:  "password1",
		})
		assert.NoError(t, err)

		workspaces.AssertNotCalled(t, "TransferOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		workspaces := new(MockWorkspaceRepository)
		svc := NewAuthService(users, workspaces, newTestJWT())

		users.On("EmailExists", ctx, "a@acme.com").Return(true, nil)

		_, _, err := svc.Signup(ctx, domain.UserCreate{
			Workspace: "acme",
			FullName:  "Alice",
			Email:     "a@acme.com",
			Password:  "password1",
		})
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})
}

func TestAuthService_Signin(t *testing.T) {
	ctx := context.Background()

	hash, err := security.HashPassword("password1")
	assert.NoError(t, err)

	stored := &domain.User{ID: 10, WorkspaceID: 1, Email: "a@acme.com", PasswordHash: hash}

	t.Run("valid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, new(MockWorkspaceRepository), newTestJWT())

		users.On("GetByEmail", ctx, "a@acme.com").Return(stored, nil)

		user, token, err := svc.Signin(ctx, domain.UserSignin{Email: "a@acme.com", Password: "password1"})
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(10), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, new(MockWorkspaceRepository), newTestJWT())

		users.On("GetByEmail", ctx, "a@acme.com").Return(stored, nil)

		_, _, err := svc.Signin(ctx, domain.UserSignin{Email: "a@acme.com", Password: "nope"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, new(MockWorkspaceRepository), newTestJWT())

		users.On("GetByEmail", ctx, "nobody@acme.com").Return(nil, nil)

		_, _, err := svc.Signin(ctx, domain.UserSignin{Email: "nobody@acme.com", Password: "password1"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
