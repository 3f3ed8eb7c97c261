package domain

import (
	"errors"
	"time"
)

var ErrModuleNotFound = errors.New("module not found")
var ErrTitleRequired = errors.New("title is required")

// Module is a user-owned container of tasks (a study unit). OwnerID is set
// at creation and never changes; every authorization decision for the
// module and its tasks derives from it.
type Module struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
