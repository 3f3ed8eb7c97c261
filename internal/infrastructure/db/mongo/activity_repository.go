package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studytrack/task-system/internal/core/domain"
	"github.com/studytrack/task-system/internal/core/ports"
)

const activityCollection = "activity_log"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	db *mongo.Database
}

func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{db: db}
}

// Insert persists an audit entry to the activity_log collection.
func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.Activity) error {
	doc := bson.M{
		"user_id":      entry.UserID,
		"action":       entry.Action,
		"resource":     entry.Resource,
		"resource_id":  entry.ResourceID,
		"timestamp":    entry.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}

	_, err := r.db.Collection(activityCollection).InsertOne(ctx, doc)
	return err
}
