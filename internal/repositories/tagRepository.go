package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"secondbrain/internal/database"
	"secondbrain/internal/models"
)

type TagRepository interface {
	FindByID(ctx context.Context, userID, tagID primitive.ObjectID) (*models.Tag, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Tag, error)
	Update(ctx context.Context, userID, tagID primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error)
	IncrementUsage(ctx context.Context, userID primitive.ObjectID, name string, delta int64) error
}

type tagRepository struct {
	db database.Service
}

func NewTagRepository(db database.Service) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) collection() *mongo.Collection {
	return r.db.Client().Database(database.Name).Collection("tags")
}

func (r *tagRepository) FindByID(ctx context.Context, userID, tagID primitive.ObjectID) (*models.Tag, error) {
	var tag models.Tag
	filter := bson.M{"_id": tagID, "user_id": userID}
	err := r.collection().FindOne(ctx, filter).Decode(&tag)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Tag, error) {
	var tags []models.Tag
	filter := bson.M{"user_id": userID}
	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tags: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("error decoding tags: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) Update(ctx context.Context, userID, tagID primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	filter := bson.M{"_id": tagID, "user_id": userID}
	update := bson.M{"$set": updateFields}
	result, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return result, nil
}

// IncrementUsage bumps the usage counter for a tag name, upserting the index
// entry on first use. A negative delta that drops the count to zero or below
// removes the entry, keeping the index an honest reflection of Item.Tags.
func (r *tagRepository) IncrementUsage(ctx context.Context, userID primitive.ObjectID, name string, delta int64) error {
	filter := bson.M{"user_id": userID, "name": name}
	update := bson.M{
		"$inc":         bson.M{"usage_count": delta},
		"$setOnInsert": bson.M{"created_at": primitive.NewDateTimeFromTime(time.Now())},
	}
	opts := options.Update().SetUpsert(delta > 0)

	_, err := r.collection().UpdateOne(ctx, filter, update, opts)
	if err != nil {
		log.Error().Err(err).Str("tag_name", name).Str("user_id", userID.Hex()).Msg("Failed to bump tag usage")
		return fmt.Errorf("failed to bump tag usage: %w", err)
	}

	if delta < 0 {
		_, err = r.collection().DeleteMany(ctx, bson.M{"user_id": userID, "name": name, "usage_count": bson.M{"$lte": 0}})
		if err != nil {
			return fmt.Errorf("failed to prune unused tag: %w", err)
		}
	}
	return nil
}
