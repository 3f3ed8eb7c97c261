package ports

import (
	"context"

	"github.com/studytrack/task-system/internal/core/domain"
)

// UserRepository defines the interface for user persistence. Uniqueness of
// email and username is enforced at this layer; violations surface as
// domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
}
