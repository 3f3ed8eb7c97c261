package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studytrack/task-system/internal/core/domain"
)

const modulesCollection = "modules"

type ModuleRepository struct {
	coll *mongo.Collection
}

func NewModuleRepository(db *mongo.Database) *ModuleRepository {
	return &ModuleRepository{coll: db.Collection(modulesCollection)}
}

type moduleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d moduleDoc) toDomain() *domain.Module {
	return &domain.Module{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *ModuleRepository) Create(ctx context.Context, module *domain.Module) (*domain.Module, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := moduleDoc{
		Title:       module.Title,
		Description: module.Description,
		OwnerID:     module.OwnerID,
		CreatedAt:   module.CreatedAt,
		UpdatedAt:   module.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert module: %w", err)
	}

	created := *module
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ModuleRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Module, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer cur.Close(ctx)

	modules := []domain.Module{}
	for cur.Next(ctx) {
		var doc moduleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode module: %w", err)
		}
		modules = append(modules, *doc.toDomain())
	}
	return modules, cur.Err()
}

// FindByIDAndOwner runs an owner-filtered query, so "not yours" and "does
// not exist" are the same ErrModuleNotFound.
func (r *ModuleRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Module, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrModuleNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
}

func (r *ModuleRepository) FindByID(ctx context.Context, id string) (*domain.Module, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrModuleNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ModuleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Module, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc moduleDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrModuleNotFound
		}
		return nil, fmt.Errorf("find module: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ModuleRepository) Update(ctx context.Context, module *domain.Module) (*domain.Module, error) {
	oid, err := primitive.ObjectIDFromHex(module.ID)
	if err != nil {
		return nil, domain.ErrModuleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       module.Title,
		"description": module.Description,
		"updated_at":  module.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update module: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrModuleNotFound
	}
	return module, nil
}

func (r *ModuleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrModuleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrModuleNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index used by every scoped query.
func (r *ModuleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}
