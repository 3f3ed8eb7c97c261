package ports

import (
	"context"

	"github.com/studytrack/task-system/internal/core/domain"
)

// AuthService implements registration, login, and user listing.
type AuthService interface {
	// Register creates an account and returns a token so the caller is
	// logged in immediately. The role is always forced to "user".
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
