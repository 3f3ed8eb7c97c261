package ports

import (
	"context"

	"github.com/studytrack/task-system/internal/core/domain"
)

// ModuleRepository persists modules. Owner-scoped lookups return
// domain.ErrModuleNotFound both when the module is absent and when it is
// owned by someone else, so non-owners never learn that a module exists.
type ModuleRepository interface {
	Create(ctx context.Context, module *domain.Module) (*domain.Module, error)
	// FindByOwner returns the owner's modules sorted newest-first.
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Module, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Module, error)
	// FindByID is unscoped; used to resolve a task's parent module.
	FindByID(ctx context.Context, id string) (*domain.Module, error)
	Update(ctx context.Context, module *domain.Module) (*domain.Module, error)
	Delete(ctx context.Context, id string) error
}
