package repositories

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"secondbrain/internal/database"
	"secondbrain/internal/models"
	"secondbrain/internal/utils"
)

type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) (*models.Folder, error)
	FindByID(ctx context.Context, userID, folderID primitive.ObjectID) (*models.Folder, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Folder, error)
	Update(ctx context.Context, userID, folderID primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, userID, folderID primitive.ObjectID) (*mongo.DeleteResult, error)
	CountByParent(ctx context.Context, userID, parentID primitive.ObjectID) (int64, error)
}

type folderRepository struct {
	db database.Service
}

func NewFolderRepository(db database.Service) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) collection() *mongo.Collection {
	return r.db.Client().Database(database.Name).Collection("folders")
}

func (r *folderRepository) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	queryType := "create"
	repository := "folder"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	_, err := r.collection().InsertOne(ctx, folder)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Str("folder_name", folder.Name).Str("user_id", folder.UserID.Hex()).Msg("Failed to insert folder")
		return nil, fmt.Errorf("failed to insert folder: %w", err)
	}
	return folder, nil
}

func (r *folderRepository) FindByID(ctx context.Context, userID, folderID primitive.ObjectID) (*models.Folder, error) {
	var folder models.Folder
	filter := bson.M{"_id": folderID, "user_id": userID}
	err := r.collection().FindOne(ctx, filter).Decode(&folder)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *folderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Folder, error) {
	queryType := "findByUser"
	repository := "folder"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var folders []models.Folder
	cursor, err := r.collection().Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to retrieve folders: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &folders); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error decoding folders: %w", err)
	}
	return folders, nil
}

func (r *folderRepository) Update(ctx context.Context, userID, folderID primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	filter := bson.M{"_id": folderID, "user_id": userID}
	update := bson.M{"$set": updateFields}
	result, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}
	return result, nil
}

func (r *folderRepository) Delete(ctx context.Context, userID, folderID primitive.ObjectID) (*mongo.DeleteResult, error) {
	filter := bson.M{"_id": folderID, "user_id": userID}
	result, err := r.collection().DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to delete folder: %w", err)
	}
	return result, nil
}

// CountByParent reports how many owned folders name parentID as their parent.
// The folder service uses it to refuse deleting a folder that still has
// subfolders.
func (r *folderRepository) CountByParent(ctx context.Context, userID, parentID primitive.ObjectID) (int64, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{"user_id": userID, "parent_id": parentID})
	if err != nil {
		return 0, fmt.Errorf("failed to count subfolders: %w", err)
	}
	return count, nil
}
