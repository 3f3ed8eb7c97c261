package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/task-system/internal/core/domain"
	"github.com/studytrack/task-system/internal/core/ports"
)

// TaskService implements task CRUD. Tasks carry no owner of their own:
// every authorization decision resolves the parent module and compares its
// owner against the caller. A task whose parent is owned by someone else
// is reported as not found, the same policy the module store applies.
type TaskService struct {
	tasks    ports.TaskRepository
	modules  ports.ModuleRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, modules ports.ModuleRepository, activity ports.ActivityRecorder, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, modules: modules, activity: activity, logger: logger}
}

// ListForModule returns the module's tasks oldest-first. A module that is
// missing or not owned by the caller yields ErrModuleNotFound.
func (s *TaskService) ListForModule(ctx context.Context, moduleID, ownerID string) ([]domain.Task, error) {
	if _, err := s.modules.FindByIDAndOwner(ctx, moduleID, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.FindByModule(ctx, moduleID)
}

// Create validates the title and the caller's ownership of the parent
// module before inserting, so no task can ever reference a module the
// caller does not own.
func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	status := domain.TaskStatus(in.Status)
	if in.Status == "" {
		status = domain.StatusTodo
	} else if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	if _, err := s.modules.FindByIDAndOwner(ctx, in.ModuleID, in.OwnerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		ModuleID:    in.ModuleID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("module_id", in.ModuleID).Msg("task created")
	s.record(domain.Activity{UserID: in.OwnerID, Action: "created", Resource: "task", ResourceID: created.ID})

	return created, nil
}

func (s *TaskService) Update(ctx context.Context, taskID, ownerID string, patch ports.TaskPatch) (*domain.Task, error) {
	task, err := s.resolveOwned(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.ErrTitleRequired
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		status := domain.TaskStatus(*patch.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
		task.Status = status
	}
	task.UpdatedAt = time.Now().UTC()

	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	s.record(domain.Activity{UserID: ownerID, Action: "updated", Resource: "task", ResourceID: taskID})
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, taskID, ownerID string) error {
	task, err := s.resolveOwned(ctx, taskID, ownerID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", task.ID).Str("owner_id", ownerID).Msg("task deleted")
	s.record(domain.Activity{UserID: ownerID, Action: "deleted", Resource: "task", ResourceID: task.ID})

	return nil
}

// resolveOwned fetches the task unscoped, then checks that the caller owns
// the parent module. An orphaned task (parent already gone) and a task
// under someone else's module both resolve to ErrTaskNotFound.
func (s *TaskService) resolveOwned(ctx context.Context, taskID, ownerID string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	module, err := s.modules.FindByID(ctx, task.ModuleID)
	if err != nil {
		if err == domain.ErrModuleNotFound {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	if module.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}

	return task, nil
}

func (s *TaskService) record(entry domain.Activity) {
	if s.activity != nil {
		s.activity.Record(entry)
	}
}
