package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	pool *pgxpool.Pool
}

// NewUserService constructs a UserService backed by PostgreSQL.
func NewUserService(pool *pgxpool.Pool) UserService {
	return &userService{pool: pool}
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, role, contact_id, is_active, created_at
		FROM users
		WHERE username = $1 AND is_active = true
		LIMIT 1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.ContactID, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user %q not found: %w", username, err)
	}
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, userID int) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, role, contact_id, is_active, created_at
		FROM users
		WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.ContactID, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user id=%d not found: %w", userID, err)
	}
	return u, nil
}

func (s *userService) CreateUser(ctx context.Context, username, email, password, role string, contactID *int) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &ValidationError{Field: "username", Message: "must not be empty"}
	}
	if len(password) < 8 {
		return nil, &ValidationError{Field: "password", Message: "must be at least 8 characters"}
	}
	if role != RoleAdmin && role != RoleStaff && role != RolePortal {
		return nil, &ValidationError{Field: "role", Message: "unknown role " + role}
	}
	if role == RolePortal && contactID == nil {
		return nil, &ValidationError{Field: "contact_id", Message: "portal users must reference a contact"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role, contact_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, email, password_hash, role, contact_id, is_active, created_at`,
		username, email, string(hash), role, contactID,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.ContactID, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// CheckPassword compares a candidate password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
