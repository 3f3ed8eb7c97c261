package ports

import (
	"context"

	"github.com/studytrack/task-system/internal/core/domain"
)

// TaskRepository persists tasks. Lookups are not owner-scoped: a task has
// no owner field, so authorization happens in the service layer against
// the parent module.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// FindByModule returns the module's tasks sorted oldest-first.
	FindByModule(ctx context.Context, moduleID string) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	// DeleteByModule removes every task of a module and reports the count.
	DeleteByModule(ctx context.Context, moduleID string) (int64, error)
}
