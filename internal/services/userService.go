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

type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, updatePayload models.UserProfileUpdate) (*models.User, error)
	DeleteProfile(ctx context.Context, userID primitive.ObjectID) error
}

type userServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
		}
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error finding user by ID")
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID primitive.ObjectID, updatePayload models.UserProfileUpdate) (*models.User, error) {
	updateFields := bson.M{}
	if updatePayload.Username != nil {
		if *updatePayload.Username == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidation)
		}
		updateFields["username"] = *updatePayload.Username
	}
	if updatePayload.AvatarURL != nil {
		updateFields["avatar_url"] = *updatePayload.AvatarURL
	}

	if len(updateFields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	result, err := s.userRepo.Update(ctx, userID, updateFields)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to update user profile")
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
	}

	return s.GetProfile(ctx, userID)
}

func (s *userServiceImpl) DeleteProfile(ctx context.Context, userID primitive.ObjectID) error {
	result, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to delete user")
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
	}
	log.Info().Str("userID", userID.Hex()).Msg("User profile deleted")
	return nil
}
