package repositories

import (
	"context"
	"fmt"
	"regexp"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"secondbrain/internal/database"
	"secondbrain/internal/models"
	"secondbrain/internal/utils"
)

// ItemQuery narrows FindByOwner server-side. Zero values mean "no filter".
// It mirrors the in-memory view predicate so pushdown never changes results.
type ItemQuery struct {
	Type          string
	FavoritesOnly bool
	Search        string
	FolderID      *primitive.ObjectID
	Tag           string
}

type ItemRepository interface {
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID, q ItemQuery) ([]models.Item, error)
	FindOne(ctx context.Context, ownerID, itemID primitive.ObjectID) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	UpdatePartial(ctx context.Context, ownerID, itemID primitive.ObjectID, update bson.M) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, ownerID, itemID primitive.ObjectID) (*mongo.DeleteResult, error)
	CountByFolder(ctx context.Context, ownerID, folderID primitive.ObjectID) (int64, error)
	ReassignFolder(ctx context.Context, ownerID primitive.ObjectID, oldFolderID primitive.ObjectID, newFolderID *primitive.ObjectID) (int64, error)
}

type itemRepository struct {
	db database.Service
}

func NewItemRepository(db database.Service) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) collection() *mongo.Collection {
	return r.db.Client().Database(database.Name).Collection("items")
}

func buildOwnerFilter(ownerID primitive.ObjectID, q ItemQuery) bson.M {
	filter := bson.M{"user_id": ownerID}

	if q.Type != "" && q.Type != models.TypeFilterAll {
		filter["type"] = q.Type
	}
	if q.FavoritesOnly {
		filter["is_favorite"] = true
	}
	if q.FolderID != nil {
		filter["folder_id"] = *q.FolderID
	}
	if q.Tag != "" {
		filter["tags"] = q.Tag
	}
	if q.Search != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
			bson.M{"tags": regex},
		}
	}
	return filter
}

func (r *itemRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID, q ItemQuery) ([]models.Item, error) {
	queryType := "findByOwner"
	repository := "item"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection().Find(ctx, buildOwnerFilter(ownerID, q), opts)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to retrieve items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error decoding items: %w", err)
	}
	return items, nil
}

func (r *itemRepository) FindOne(ctx context.Context, ownerID, itemID primitive.ObjectID) (*models.Item, error) {
	queryType := "findOne"
	repository := "item"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var item models.Item
	filter := bson.M{"_id": itemID, "user_id": ownerID}
	err := r.collection().FindOne(ctx, filter).Decode(&item)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	queryType := "create"
	repository := "item"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	result, err := r.collection().InsertOne(ctx, item)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	item.ID = result.InsertedID.(primitive.ObjectID)
	return item, nil
}

func (r *itemRepository) UpdatePartial(ctx context.Context, ownerID, itemID primitive.ObjectID, update bson.M) (*mongo.UpdateResult, error) {
	queryType := "updatePartial"
	repository := "item"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	filter := bson.M{"_id": itemID, "user_id": ownerID}
	result, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return result, nil
}

func (r *itemRepository) Delete(ctx context.Context, ownerID, itemID primitive.ObjectID) (*mongo.DeleteResult, error) {
	queryType := "delete"
	repository := "item"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	filter := bson.M{"_id": itemID, "user_id": ownerID}
	deleteResult, err := r.collection().DeleteOne(ctx, filter)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}
	return deleteResult, nil
}

func (r *itemRepository) CountByFolder(ctx context.Context, ownerID, folderID primitive.ObjectID) (int64, error) {
	queryType := "countByFolder"
	repository := "item"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	count, err := r.collection().CountDocuments(ctx, bson.M{"user_id": ownerID, "folder_id": folderID})
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return 0, fmt.Errorf("failed to count items in folder: %w", err)
	}
	return count, nil
}

// ReassignFolder moves every owned item out of oldFolderID. A nil
// newFolderID unsets folder_id, moving the items to root.
func (r *itemRepository) ReassignFolder(ctx context.Context, ownerID primitive.ObjectID, oldFolderID primitive.ObjectID, newFolderID *primitive.ObjectID) (int64, error) {
	queryType := "reassignFolder"
	repository := "item"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": ownerID, "folder_id": oldFolderID}
	var update bson.M
	if newFolderID == nil {
		update = bson.M{"$unset": bson.M{"folder_id": 1}}
	} else {
		update = bson.M{"$set": bson.M{"folder_id": *newFolderID}}
	}

	result, err := r.collection().UpdateMany(ctx, filter, update)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return 0, fmt.Errorf("failed to reassign items: %w", err)
	}
	return result.ModifiedCount, nil
}
