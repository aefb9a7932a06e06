package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"secondbrain/internal/apperrors"
	"secondbrain/internal/metrics"
	"secondbrain/internal/models"
	"secondbrain/internal/repositories"
)

type FolderService interface {
	AddFolder(ctx context.Context, userID primitive.ObjectID, reqBody models.AddFolderRequestBody) (*models.Folder, error)
	GetFolders(ctx context.Context, userID primitive.ObjectID) ([]models.Folder, error)
	GetFolderByID(ctx context.Context, userID, folderID primitive.ObjectID) (*models.Folder, error)
	UpdateFolder(ctx context.Context, userID, folderID primitive.ObjectID, updatePayload models.FolderUpdate) (*models.Folder, error)
	DeleteFolder(ctx context.Context, userID, folderID primitive.ObjectID) error
}

type folderServiceImpl struct {
	folderRepo repositories.FolderRepository
	itemRepo   repositories.ItemRepository
}

func NewFolderService(folderRepo repositories.FolderRepository, itemRepo repositories.ItemRepository) FolderService {
	return &folderServiceImpl{folderRepo: folderRepo, itemRepo: itemRepo}
}

func (s *folderServiceImpl) parseParentID(ctx context.Context, userID primitive.ObjectID, parentIDStr *string) (*primitive.ObjectID, error) {
	if parentIDStr == nil || *parentIDStr == "" {
		return nil, nil
	}
	parentID, err := primitive.ObjectIDFromHex(*parentIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid parent folder ID format", apperrors.ErrValidation)
	}
	if _, err := s.folderRepo.FindByID(ctx, userID, parentID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: parent folder does not exist", apperrors.ErrValidation)
		}
		return nil, err
	}
	return &parentID, nil
}

func (s *folderServiceImpl) AddFolder(ctx context.Context, userID primitive.ObjectID, reqBody models.AddFolderRequestBody) (*models.Folder, error) {
	log.Debug().Str("userID", userID.Hex()).Str("folderName", reqBody.Name).Msg("Attempting to add folder")
	if reqBody.Name == "" {
		log.Warn().Str("userID", userID.Hex()).Msg("Folder name is required")
		return nil, fmt.Errorf("%w: folder name is required", apperrors.ErrValidation)
	}

	parentID, err := s.parseParentID(ctx, userID, reqBody.ParentID)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID.Hex()).Msg("Invalid parent reference during AddFolder")
		return nil, err
	}

	folder := models.Folder{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ParentID:  parentID,
		Name:      reqBody.Name,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}

	createdFolder, err := s.folderRepo.Create(ctx, &folder)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.Hex()).Msg("Error inserting folder")
		return nil, err
	}

	metrics.FolderCreatedTotal.Inc()
	log.Info().Str("userID", userID.Hex()).Str("folderID", createdFolder.ID.Hex()).Msg("Folder added successfully")
	return createdFolder, nil
}

func (s *folderServiceImpl) GetFolders(ctx context.Context, userID primitive.ObjectID) ([]models.Folder, error) {
	folders, err := s.folderRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error finding folders for user")
		return nil, err
	}
	return folders, nil
}

func (s *folderServiceImpl) GetFolderByID(ctx context.Context, userID, folderID primitive.ObjectID) (*models.Folder, error) {
	folder, err := s.folderRepo.FindByID(ctx, userID, folderID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Warn().Str("userID", userID.Hex()).Str("folderID", folderID.Hex()).Msg("Folder not found")
			return nil, fmt.Errorf("%w: folder not found", apperrors.ErrNotFound)
		}
		log.Error().Err(err).Str("folder_id", folderID.Hex()).Str("userID", userID.Hex()).Msg("Error finding folder by ID")
		return nil, fmt.Errorf("failed to retrieve folder: %w", err)
	}
	return folder, nil
}

func (s *folderServiceImpl) UpdateFolder(ctx context.Context, userID, folderID primitive.ObjectID, updatePayload models.FolderUpdate) (*models.Folder, error) {
	log.Debug().Str("userID", userID.Hex()).Str("folderID", folderID.Hex()).Msg("Attempting to update folder")

	updateFields := bson.M{}
	if updatePayload.Name != nil {
		if *updatePayload.Name == "" {
			return nil, fmt.Errorf("%w: folder name cannot be empty", apperrors.ErrValidation)
		}
		updateFields["name"] = *updatePayload.Name
	}
	if updatePayload.ParentID != nil {
		if *updatePayload.ParentID == "" {
			updateFields["parent_id"] = nil
		} else {
			parentID, err := s.parseParentID(ctx, userID, updatePayload.ParentID)
			if err != nil {
				return nil, err
			}
			if parentID != nil && *parentID == folderID {
				return nil, fmt.Errorf("%w: folder cannot be its own parent", apperrors.ErrValidation)
			}
			updateFields["parent_id"] = parentID
		}
	}

	if len(updateFields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	result, err := s.folderRepo.Update(ctx, userID, folderID, updateFields)
	if err != nil {
		log.Error().Err(err).Str("folder_id", folderID.Hex()).Str("user_id", userID.Hex()).Msg("Failed to update folder")
		return nil, err
	}
	if result.MatchedCount == 0 {
		log.Warn().Str("userID", userID.Hex()).Str("folderID", folderID.Hex()).Msg("Folder not found or unauthorized to update")
		return nil, fmt.Errorf("%w: folder not found", apperrors.ErrNotFound)
	}

	updatedFolder, err := s.folderRepo.FindByID(ctx, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve the updated folder: %w", err)
	}
	log.Info().Str("userID", userID.Hex()).Str("folderID", folderID.Hex()).Msg("Folder updated successfully")
	return updatedFolder, nil
}

// DeleteFolder enforces the tree invariants: a folder with subfolders cannot
// be deleted, and contained items are moved to root before the folder record
// is removed so they are never deleted along with it.
func (s *folderServiceImpl) DeleteFolder(ctx context.Context, userID, folderID primitive.ObjectID) error {
	log.Debug().Str("userID", userID.Hex()).Str("folderID", folderID.Hex()).Msg("Attempting to delete folder")

	if _, err := s.GetFolderByID(ctx, userID, folderID); err != nil {
		return err
	}

	subfolders, err := s.folderRepo.CountByParent(ctx, userID, folderID)
	if err != nil {
		log.Error().Err(err).Str("folder_id", folderID.Hex()).Msg("Failed to count subfolders")
		return err
	}
	if subfolders > 0 {
		metrics.FolderDeleteConflictsTotal.Inc()
		log.Warn().Str("userID", userID.Hex()).Str("folderID", folderID.Hex()).Int64("subfolders", subfolders).Msg("Folder delete blocked by subfolders")
		return fmt.Errorf("%w: cannot delete folder with subfolders", apperrors.ErrConflict)
	}

	moved, err := s.itemRepo.ReassignFolder(ctx, userID, folderID, nil)
	if err != nil {
		log.Error().Err(err).Str("folder_id", folderID.Hex()).Msg("Failed to move contained items to root")
		return err
	}
	if moved > 0 {
		log.Info().Str("folderID", folderID.Hex()).Int64("moved", moved).Msg("Moved contained items to root")
	}

	deleteResult, err := s.folderRepo.Delete(ctx, userID, folderID)
	if err != nil {
		log.Error().Err(err).Str("folder_id", folderID.Hex()).Str("user_id", userID.Hex()).Msg("Failed to delete folder")
		return err
	}
	if deleteResult.DeletedCount == 0 {
		return fmt.Errorf("%w: folder not found", apperrors.ErrNotFound)
	}

	log.Info().Str("userID", userID.Hex()).Str("folderID", folderID.Hex()).Msg("Folder deleted successfully")
	return nil
}
