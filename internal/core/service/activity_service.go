package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/task-system/internal/core/domain"
	"github.com/studytrack/task-system/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that persists audit
// entries. It sits behind the queue dispatcher, so failures here never
// reach a client; the dispatcher logs them.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Process(ctx context.Context, entry domain.Activity) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &entry); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	s.log.Debug().
		Str("user_id", entry.UserID).
		Str("action", entry.Action).
		Str("resource", entry.Resource).
		Msg("activity recorded")

	return nil
}
