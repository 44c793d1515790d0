package domain

import "errors"

// Chat validation errors, in the order Create/Update checks them.
var (
	ErrTooFewMembers    = errors.New("chat needs at least two members")
	ErrDuplicateMembers = errors.New("chat members must be distinct")
	ErrActorNotMember   = errors.New("creator must be a chat member")
	ErrNameTooShort     = errors.New("chat name must be at least 3 characters")
	ErrGroupNeedsName   = errors.New("group chat with more than 8 members must have a name")
	ErrUnknownMembers   = errors.New("some members do not exist in the workspace")
)

// Message and file errors.
var (
	ErrEmptyContent     = errors.New("message content cannot be empty")
	ErrMalformedFileURL = errors.New("malformed file url")
	ErrFileNotFound     = errors.New("file does not exist")
)

// Access and account errors.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotChatMember      = errors.New("user is not a member of the chat")
	ErrNotWorkspaceOwner  = errors.New("only the workspace owner can do this")
	ErrAgentExists        = errors.New("chat already has an agent with this name")
)
