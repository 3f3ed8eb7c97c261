package domain

import "time"

// Activity is an audit-trail entry recording a successful mutation.
type Activity struct {
	UserID     string
	Action     string // "created", "updated", "deleted", "registered"
	Resource   string // "user", "module", "task"
	ResourceID string
	Timestamp  time.Time
}
