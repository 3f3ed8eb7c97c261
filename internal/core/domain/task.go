package domain

import (
	"errors"
	"time"
)

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrInvalidStatus = errors.New("invalid task status")

// IsValid reports whether s is a member of the status enum.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is a unit of work belonging to exactly one module. It carries no
// owner of its own: access control is inherited from the parent module.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	ModuleID    string     `json:"module_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
