package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/task-system/internal/core/domain"
	"github.com/studytrack/task-system/internal/core/ports"
)

// ModuleService implements owner-scoped module CRUD. Every lookup runs
// through an owner-filtered query, so a module belonging to someone else
// is indistinguishable from one that does not exist.
type ModuleService struct {
	modules  ports.ModuleRepository
	tasks    ports.TaskRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewModuleService(modules ports.ModuleRepository, tasks ports.TaskRepository, activity ports.ActivityRecorder, logger zerolog.Logger) *ModuleService {
	return &ModuleService{modules: modules, tasks: tasks, activity: activity, logger: logger}
}

func (s *ModuleService) List(ctx context.Context, ownerID string) ([]domain.Module, error) {
	return s.modules.FindByOwner(ctx, ownerID)
}

func (s *ModuleService) Get(ctx context.Context, id, ownerID string) (*domain.Module, error) {
	return s.modules.FindByIDAndOwner(ctx, id, ownerID)
}

func (s *ModuleService) Create(ctx context.Context, ownerID, title, description string) (*domain.Module, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	now := time.Now().UTC()
	module := &domain.Module{
		Title:       title,
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.modules.Create(ctx, module)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("module_id", created.ID).Str("owner_id", ownerID).Msg("module created")
	s.record(domain.Activity{UserID: ownerID, Action: "created", Resource: "module", ResourceID: created.ID})

	return created, nil
}

// Update applies a partial patch: only supplied fields change, everything
// else keeps its prior value.
func (s *ModuleService) Update(ctx context.Context, id, ownerID string, patch ports.ModulePatch) (*domain.Module, error) {
	module, err := s.modules.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.ErrTitleRequired
		}
		module.Title = title
	}
	if patch.Description != nil {
		module.Description = strings.TrimSpace(*patch.Description)
	}
	module.UpdatedAt = time.Now().UTC()

	updated, err := s.modules.Update(ctx, module)
	if err != nil {
		return nil, err
	}

	s.record(domain.Activity{UserID: ownerID, Action: "updated", Resource: "module", ResourceID: id})
	return updated, nil
}

// Delete removes the module and all of its tasks. The task cascade runs
// first; if it fails the module is left in place and the error surfaces,
// so a success response always means both steps completed. A crash between
// the two steps can orphan the module without its tasks (accepted weak
// consistency, no cross-collection transaction).
func (s *ModuleService) Delete(ctx context.Context, id, ownerID string) error {
	module, err := s.modules.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return err
	}

	removed, err := s.tasks.DeleteByModule(ctx, module.ID)
	if err != nil {
		return fmt.Errorf("cascade delete tasks: %w", err)
	}

	if err := s.modules.Delete(ctx, module.ID); err != nil {
		return fmt.Errorf("delete module: %w", err)
	}

	s.logger.Info().Str("module_id", module.ID).Str("owner_id", ownerID).Int64("removed_tasks", removed).Msg("module deleted")
	s.record(domain.Activity{UserID: ownerID, Action: "deleted", Resource: "module", ResourceID: module.ID})

	return nil
}

func (s *ModuleService) record(entry domain.Activity) {
	if s.activity != nil {
		s.activity.Record(entry)
	}
}
