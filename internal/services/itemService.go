package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"secondbrain/internal/apperrors"
	"secondbrain/internal/links"
	"secondbrain/internal/metrics"
	"secondbrain/internal/models"
	"secondbrain/internal/repositories"
	"secondbrain/internal/views"
)

type ItemService interface {
	GetItems(ctx context.Context, userID primitive.ObjectID, query url.Values) ([]models.Item, error)
	AddItem(ctx context.Context, userID primitive.ObjectID, reqBody models.AddItemRequestBody) (*models.Item, error)
	GetItemByID(ctx context.Context, userID, itemID primitive.ObjectID) (*models.Item, error)
	UpdateItem(ctx context.Context, userID, itemID primitive.ObjectID, updatePayload models.UpdateItemRequestBody) (*models.Item, error)
	DeleteItem(ctx context.Context, userID, itemID primitive.ObjectID) error
	GetAllTags(ctx context.Context, userID primitive.ObjectID) ([]string, error)
}

type itemServiceImpl struct {
	itemRepo   repositories.ItemRepository
	folderRepo repositories.FolderRepository
	tagRepo    repositories.TagRepository
	resolver   *links.Resolver
}

func NewItemService(itemRepo repositories.ItemRepository, folderRepo repositories.FolderRepository, tagRepo repositories.TagRepository, resolver *links.Resolver) ItemService {
	return &itemServiceImpl{itemRepo: itemRepo, folderRepo: folderRepo, tagRepo: tagRepo, resolver: resolver}
}

func buildItemQuery(query url.Values) (repositories.ItemQuery, error) {
	q := repositories.ItemQuery{
		Type:   query.Get("type"),
		Search: query.Get("search"),
		Tag:    query.Get("tag"),
	}

	if q.Type != "" && q.Type != models.TypeFilterAll && !models.ContentType(q.Type).Valid() {
		return q, fmt.Errorf("%w: unknown content type %q", apperrors.ErrValidation, q.Type)
	}

	if favParam := query.Get("favorites"); favParam != "" {
		fav, err := strconv.ParseBool(favParam)
		if err != nil {
			return q, fmt.Errorf("%w: favorites must be 'true' or 'false'", apperrors.ErrValidation)
		}
		q.FavoritesOnly = fav
	}

	if folderParam := query.Get("folder"); folderParam != "" {
		folderID, err := primitive.ObjectIDFromHex(folderParam)
		if err != nil {
			return q, fmt.Errorf("%w: folder must be a hexadecimal ObjectID", apperrors.ErrValidation)
		}
		q.FolderID = &folderID
	}

	return q, nil
}

func buildViewFilters(query url.Values) (views.ViewFilters, error) {
	f := views.ViewFilters{
		SearchTerm:  query.Get("search"),
		ContentType: query.Get("type"),
		SortBy:      views.SortNewest,
	}

	if bmParam := query.Get("bookmarks"); bmParam != "" {
		bm, err := strconv.ParseBool(bmParam)
		if err != nil {
			return f, fmt.Errorf("%w: bookmarks must be 'true' or 'false'", apperrors.ErrValidation)
		}
		f.BookmarksOnly = bm
	}
	if favParam := query.Get("favorites"); favParam != "" {
		fav, err := strconv.ParseBool(favParam)
		if err != nil {
			return f, fmt.Errorf("%w: favorites must be 'true' or 'false'", apperrors.ErrValidation)
		}
		f.FavoritesOnly = fav
	}

	switch sort := query.Get("sort"); views.SortOption(sort) {
	case "":
	case views.SortNewest, views.SortOldest, views.SortTitle, views.SortType, views.SortViews:
		f.SortBy = views.SortOption(sort)
	default:
		return f, fmt.Errorf("%w: unknown sort order %q", apperrors.ErrValidation, query.Get("sort"))
	}

	return f, nil
}

// GetItems narrows the query server-side where the repository can, then runs
// the view pipeline over the result for the full predicate and ordering.
func (s *itemServiceImpl) GetItems(ctx context.Context, userID primitive.ObjectID, query url.Values) ([]models.Item, error) {
	log.Debug().Str("userID", userID.Hex()).Msg("Attempting to retrieve items")

	repoQuery, err := buildItemQuery(query)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID.Hex()).Msg("Invalid item query")
		return nil, err
	}
	filters, err := buildViewFilters(query)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID.Hex()).Msg("Invalid view filters")
		return nil, err
	}

	items, err := s.itemRepo.FindByOwner(ctx, userID, repoQuery)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.Hex()).Msg("Error finding items")
		return nil, err
	}

	derived := views.DeriveView(items, filters)
	log.Debug().Str("userID", userID.Hex()).Int("count", len(derived)).Msg("Successfully retrieved items")
	return derived, nil
}

// normalizeTags trims whitespace and drops duplicates case-insensitively;
// the first spelling wins and literal strings are preserved.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (s *itemServiceImpl) resolveFolderID(ctx context.Context, userID primitive.ObjectID, folderIDStr *string) (*primitive.ObjectID, error) {
	if folderIDStr == nil || *folderIDStr == "" {
		return nil, nil
	}
	folderID, err := primitive.ObjectIDFromHex(*folderIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid folder ID format: %s", apperrors.ErrValidation, *folderIDStr)
	}
	if _, err := s.folderRepo.FindByID(ctx, userID, folderID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: folder does not exist", apperrors.ErrValidation)
		}
		return nil, err
	}
	return &folderID, nil
}

// AddItem classifies the URL, resolves metadata best-effort, applies the
// fallback chain and persists the item. A failed metadata fetch never fails
// the save.
func (s *itemServiceImpl) AddItem(ctx context.Context, userID primitive.ObjectID, reqBody models.AddItemRequestBody) (*models.Item, error) {
	log.Debug().Str("userID", userID.Hex()).Str("url", reqBody.URL).Msg("Attempting to add item")
	if strings.TrimSpace(reqBody.URL) == "" {
		log.Warn().Str("userID", userID.Hex()).Msg("URL is required for adding item")
		return nil, fmt.Errorf("%w: URL is required", apperrors.ErrValidation)
	}

	folderID, err := s.resolveFolderID(ctx, userID, reqBody.FolderID)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID.Hex()).Msg("Invalid folder reference during AddItem")
		return nil, err
	}

	classification := links.Classify(reqBody.URL)
	meta := s.resolver.Resolve(ctx, reqBody.URL, classification)

	title := reqBody.Title
	if title == "" {
		title = meta.Title
	}
	if title == "" {
		title = models.UntitledFallback
	}
	description := reqBody.Description
	if description == "" {
		description = meta.Description
	}
	thumbnail := meta.Thumbnail
	if thumbnail == "" {
		thumbnail = models.PlaceholderThumbnail
	}

	tags := normalizeTags(reqBody.Tags)

	item := models.Item{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		URL:         reqBody.URL,
		Type:        classification.Type,
		EmbedID:     classification.EmbedID,
		Title:       title,
		Description: description,
		Thumbnail:   thumbnail,
		Tags:        tags,
		FolderID:    folderID,
		CreatedAt:   primitive.NewDateTimeFromTime(time.Now()),
	}

	createdItem, err := s.itemRepo.Create(ctx, &item)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.Hex()).Msg("Error inserting item")
		return nil, err
	}

	s.bumpTagUsage(ctx, userID, tags, 1)
	metrics.ItemCreatedTotal.WithLabelValues(string(item.Type)).Inc()

	log.Info().Str("userID", userID.Hex()).Str("itemID", createdItem.ID.Hex()).Str("type", string(item.Type)).Msg("Item added successfully")
	return createdItem, nil
}

func (s *itemServiceImpl) GetItemByID(ctx context.Context, userID, itemID primitive.ObjectID) (*models.Item, error) {
	log.Debug().Str("userID", userID.Hex()).Str("itemID", itemID.Hex()).Msg("Attempting to retrieve item by ID")

	item, err := s.itemRepo.FindOne(ctx, userID, itemID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Warn().Str("userID", userID.Hex()).Str("itemID", itemID.Hex()).Msg("Item not found")
			return nil, fmt.Errorf("%w: item not found", apperrors.ErrNotFound)
		}
		log.Error().Err(err).Str("item_id", itemID.Hex()).Str("userID", userID.Hex()).Msg("Error finding item by ID")
		return nil, fmt.Errorf("failed to retrieve item: %w", err)
	}
	return item, nil
}

func (s *itemServiceImpl) buildUpdateFields(ctx context.Context, userID primitive.ObjectID, updatePayload models.UpdateItemRequestBody, oldTags []string) (bson.M, []string, error) {
	updateFields := bson.M{}
	newTags := oldTags

	if updatePayload.Title != nil {
		updateFields["title"] = *updatePayload.Title
	}
	if updatePayload.Description != nil {
		updateFields["description"] = *updatePayload.Description
	}
	if updatePayload.IsFavorite != nil {
		updateFields["is_favorite"] = *updatePayload.IsFavorite
	}
	if updatePayload.IsBookmarked != nil {
		updateFields["is_bookmarked"] = *updatePayload.IsBookmarked
	}
	if updatePayload.Tags != nil {
		newTags = normalizeTags(*updatePayload.Tags)
		updateFields["tags"] = newTags
	}
	if updatePayload.FolderID != nil {
		if *updatePayload.FolderID == "" {
			updateFields["folder_id"] = nil
		} else {
			folderID, err := s.resolveFolderID(ctx, userID, updatePayload.FolderID)
			if err != nil {
				return nil, nil, err
			}
			updateFields["folder_id"] = folderID
		}
	}

	return updateFields, newTags, nil
}

func (s *itemServiceImpl) UpdateItem(ctx context.Context, userID, itemID primitive.ObjectID, updatePayload models.UpdateItemRequestBody) (*models.Item, error) {
	log.Debug().Str("userID", userID.Hex()).Str("itemID", itemID.Hex()).Msg("Attempting to update item")

	existing, err := s.GetItemByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	updateFields, newTags, err := s.buildUpdateFields(ctx, userID, updatePayload, existing.Tags)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID.Hex()).Str("itemID", itemID.Hex()).Msg("Failed to build update fields for item")
		return nil, err
	}

	if len(updateFields) == 0 {
		log.Warn().Str("userID", userID.Hex()).Str("itemID", itemID.Hex()).Msg("No valid fields provided for item update")
		return nil, fmt.Errorf("%w: no valid fields provided for update", apperrors.ErrValidation)
	}

	result, err := s.itemRepo.UpdatePartial(ctx, userID, itemID, bson.M{"$set": updateFields})
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID.Hex()).Str("userID", userID.Hex()).Msg("Error updating item")
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: item not found", apperrors.ErrNotFound)
	}

	if updatePayload.Tags != nil {
		s.reconcileTagUsage(ctx, userID, existing.Tags, newTags)
	}

	updatedItem, err := s.itemRepo.FindOne(ctx, userID, itemID)
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID.Hex()).Str("userID", userID.Hex()).Msg("Error fetching updated item")
		return nil, fmt.Errorf("failed to retrieve updated item: %w", err)
	}
	log.Info().Str("userID", userID.Hex()).Str("itemID", itemID.Hex()).Msg("Item updated successfully")
	return updatedItem, nil
}

func (s *itemServiceImpl) DeleteItem(ctx context.Context, userID, itemID primitive.ObjectID) error {
	log.Debug().Str("userID", userID.Hex()).Str("itemID", itemID.Hex()).Msg("Attempting to delete item")

	existing, err := s.itemRepo.FindOne(ctx, userID, itemID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("%w: item not found", apperrors.ErrNotFound)
		}
		return err
	}

	deleteResult, err := s.itemRepo.Delete(ctx, userID, itemID)
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID.Hex()).Str("userID", userID.Hex()).Msg("Error deleting item")
		return err
	}
	if deleteResult.DeletedCount == 0 {
		return fmt.Errorf("%w: item not found", apperrors.ErrNotFound)
	}

	s.bumpTagUsage(ctx, userID, existing.Tags, -1)

	log.Info().Str("userID", userID.Hex()).Str("itemID", itemID.Hex()).Msg("Item deleted successfully")
	return nil
}

// GetAllTags aggregates distinct tag strings over the owner's full,
// unfiltered collection, for use as suggestions.
func (s *itemServiceImpl) GetAllTags(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	items, err := s.itemRepo.FindByOwner(ctx, userID, repositories.ItemQuery{})
	if err != nil {
		log.Error().Err(err).Str("userID", userID.Hex()).Msg("Error finding items for tag aggregation")
		return nil, err
	}
	return views.AllTags(items), nil
}

// Tag index maintenance is advisory: Item.Tags stays authoritative, so a
// failed bump is logged and swallowed rather than failing the item write.
func (s *itemServiceImpl) bumpTagUsage(ctx context.Context, userID primitive.ObjectID, tags []string, delta int64) {
	for _, tag := range tags {
		if err := s.tagRepo.IncrementUsage(ctx, userID, tag, delta); err != nil {
			log.Warn().Err(err).Str("userID", userID.Hex()).Str("tag", tag).Msg("Failed to update tag usage index")
		}
	}
}

func (s *itemServiceImpl) reconcileTagUsage(ctx context.Context, userID primitive.ObjectID, oldTags, newTags []string) {
	oldSet := make(map[string]struct{}, len(oldTags))
	for _, tag := range oldTags {
		oldSet[tag] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(newTags))
	for _, tag := range newTags {
		newSet[tag] = struct{}{}
	}

	for _, tag := range newTags {
		if _, ok := oldSet[tag]; !ok {
			s.bumpTagUsage(ctx, userID, []string{tag}, 1)
		}
	}
	for _, tag := range oldTags {
		if _, ok := newSet[tag]; !ok {
			s.bumpTagUsage(ctx, userID, []string{tag}, -1)
		}
	}
}
