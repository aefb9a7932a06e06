package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"secondbrain/internal/apperrors"
	"secondbrain/internal/models"
	"secondbrain/internal/repositories"
)

// TagService exposes the denormalized tag index. Entries are created and
// counted by the item service; this surface only reads and annotates them.
type TagService interface {
	GetUserTags(ctx context.Context, userID primitive.ObjectID) ([]models.Tag, error)
	UpdateTag(ctx context.Context, userID, tagID primitive.ObjectID, updatePayload models.TagUpdate) (*models.Tag, error)
}

type tagServiceImpl struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagServiceImpl{tagRepo: tagRepo}
}

func (s *tagServiceImpl) GetUserTags(ctx context.Context, userID primitive.ObjectID) ([]models.Tag, error) {
	log.Debug().Str("userID", userID.Hex()).Msg("Attempting to retrieve user tags")
	tags, err := s.tagRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error finding tags for user")
		return nil, err
	}
	log.Debug().Str("userID", userID.Hex()).Int("count", len(tags)).Msg("Successfully retrieved user tags")
	return tags, nil
}

func (s *tagServiceImpl) UpdateTag(ctx context.Context, userID, tagID primitive.ObjectID, updatePayload models.TagUpdate) (*models.Tag, error) {
	log.Debug().Str("userID", userID.Hex()).Str("tagID", tagID.Hex()).Msg("Attempting to update tag")

	updateFields := bson.M{}
	if updatePayload.Name != nil {
		if *updatePayload.Name == "" {
			return nil, fmt.Errorf("%w: tag name cannot be empty", apperrors.ErrValidation)
		}
		updateFields["name"] = *updatePayload.Name
	}
	if updatePayload.Color != nil {
		updateFields["color"] = *updatePayload.Color
	}

	if len(updateFields) == 0 {
		log.Warn().Str("userID", userID.Hex()).Str("tagID", tagID.Hex()).Msg("No fields to update for tag")
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	result, err := s.tagRepo.Update(ctx, userID, tagID, updateFields)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn().Err(err).Str("userID", userID.Hex()).Str("tagID", tagID.Hex()).Msg("Tag name already exists for this user during update")
			return nil, fmt.Errorf("%w: tag name already exists for this user", apperrors.ErrConflict)
		}
		log.Error().Err(err).Str("tag_id", tagID.Hex()).Str("user_id", userID.Hex()).Msg("Failed to update tag")
		return nil, err
	}
	if result.MatchedCount == 0 {
		log.Warn().Str("userID", userID.Hex()).Str("tagID", tagID.Hex()).Msg("Tag not found or unauthorized to update")
		return nil, fmt.Errorf("%w: tag not found", apperrors.ErrNotFound)
	}

	updatedTag, err := s.tagRepo.FindByID(ctx, userID, tagID)
	if err != nil {
		log.Error().Err(err).Str("tag_id", tagID.Hex()).Str("user_id", userID.Hex()).Msg("Failed to find updated tag")
		return nil, fmt.Errorf("failed to retrieve the updated tag: %w", err)
	}
	log.Info().Str("userID", userID.Hex()).Str("tagID", tagID.Hex()).Msg("Tag updated successfully")
	return updatedTag, nil
}
