package ports

import (
	"context"

	"github.com/studytrack/task-system/internal/core/domain"
)

// ActivityRepository persists audit-trail entries.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.Activity) error
}

// ActivityService processes a single activity entry off the queue.
type ActivityService interface {
	Process(ctx context.Context, entry domain.Activity) error
}

// ActivityRecorder is the fire-and-forget side the core services use to
// report successful mutations. The queue dispatcher implements it.
type ActivityRecorder interface {
	Record(entry domain.Activity)
}
