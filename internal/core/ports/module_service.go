package ports

import (
	"context"

	"github.com/studytrack/task-system/internal/core/domain"
)

// ModulePatch carries a partial update. Nil fields are left unchanged.
type ModulePatch struct {
	Title       *string
	Description *string
}

// ModuleService defines use-case operations for modules. Every operation
// is scoped to the calling owner.
type ModuleService interface {
	List(ctx context.Context, ownerID string) ([]domain.Module, error)
	Get(ctx context.Context, id, ownerID string) (*domain.Module, error)
	Create(ctx context.Context, ownerID, title, description string) (*domain.Module, error)
	Update(ctx context.Context, id, ownerID string, patch ModulePatch) (*domain.Module, error)
	// Delete removes the module and cascades to its tasks. The cascade runs
	// before the module delete; if it fails the operation fails.
	Delete(ctx context.Context, id, ownerID string) error
}
