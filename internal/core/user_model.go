package core

import (
	"context"
	"time"
)

// Roles. Portal users are clients signing into the self-service portal;
// they carry a ContactID and only see their own records.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RolePortal = "portal"
)

// User is an authenticated account: back-office staff or a portal client.
type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	Role         string
	ContactID    *int
	IsActive     bool
	CreatedAt    time.Time
}

// UserService provides account lookup and creation.
type UserService interface {
	// GetByUsername finds an active user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByID returns a user by primary key.
	GetByID(ctx context.Context, userID int) (*User, error)

	// CreateUser stores a new account with a bcrypt password hash.
	// contactID is nil for staff accounts.
	CreateUser(ctx context.Context, username, email, password, role string, contactID *int) (*User, error)
}
