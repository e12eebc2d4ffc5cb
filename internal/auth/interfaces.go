package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugh/taskhive/internal/database/models"
)

// Authenticator defines the registration and login operations.
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SessionStore defines the session lifecycle operations.
type SessionStore interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, string, error)
	Validate(ctx context.Context, envelope string) (*models.AuthSession, error)
	Revoke(ctx context.Context, raw string) error
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator = (*Service)(nil)
	_ SessionStore  = (*SessionManager)(nil)
)
