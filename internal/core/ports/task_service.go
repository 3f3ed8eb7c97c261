package ports

import (
	"context"

	"github.com/studytrack/task-system/internal/core/domain"
)

// TaskPatch carries a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
}

// CreateTaskInput carries all data needed to create a task. Status may be
// empty, in which case it defaults to "todo".
type CreateTaskInput struct {
	ModuleID    string
	OwnerID     string
	Title       string
	Description string
	Status      string
}

// TaskService defines use-case operations for tasks. A task's
// authorization is derived from its parent module's owner.
type TaskService interface {
	ListForModule(ctx context.Context, moduleID, ownerID string) ([]domain.Task, error)
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, taskID, ownerID string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, taskID, ownerID string) error
}
