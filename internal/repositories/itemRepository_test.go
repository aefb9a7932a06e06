package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"secondbrain/internal/database"
	"secondbrain/internal/models"
)

func newTestItem(userID primitive.ObjectID, title string, folderID *primitive.ObjectID) *models.Item {
	return &models.Item{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		URL:       "https://example.com/" + title,
		Type:      models.ContentTypeWebsite,
		Title:     title,
		Thumbnail: models.PlaceholderThumbnail,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
		FolderID:  folderID,
	}
}

func TestItemRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}
	if os.Getenv("MONGO_URI") == "" && os.Getenv("DB_HOST") == "" {
		t.Skip("no MongoDB configured.")
	}

	db := database.New()
	defer db.Close()

	itemRepo := NewItemRepository(db)
	userID := primitive.NewObjectID()

	t.Run("Create and FindOne", func(t *testing.T) {
		item := newTestItem(userID, "create-find", nil)

		created, err := itemRepo.Create(context.Background(), item)
		require.NoError(t, err)
		require.NotNil(t, created)

		found, err := itemRepo.FindOne(context.Background(), userID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "create-find", found.Title)

		_, err = itemRepo.Delete(context.Background(), userID, created.ID)
		assert.NoError(t, err)
	})

	t.Run("FindOne scoped to owner", func(t *testing.T) {
		item := newTestItem(userID, "scoped", nil)
		_, err := itemRepo.Create(context.Background(), item)
		require.NoError(t, err)

		_, err = itemRepo.FindOne(context.Background(), primitive.NewObjectID(), item.ID)
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)

		_, err = itemRepo.Delete(context.Background(), userID, item.ID)
		assert.NoError(t, err)
	})

	t.Run("FindByOwner with query pushdown", func(t *testing.T) {
		owner := primitive.NewObjectID()

		fav := newTestItem(owner, "favorite-article", nil)
		fav.IsFavorite = true
		fav.Tags = []string{"golang"}
		plain := newTestItem(owner, "plain-article", nil)

		_, err := itemRepo.Create(context.Background(), fav)
		require.NoError(t, err)
		_, err = itemRepo.Create(context.Background(), plain)
		require.NoError(t, err)

		favorites, err := itemRepo.FindByOwner(context.Background(), owner, ItemQuery{FavoritesOnly: true})
		require.NoError(t, err)
		require.Len(t, favorites, 1)
		assert.Equal(t, fav.ID, favorites[0].ID)

		tagged, err := itemRepo.FindByOwner(context.Background(), owner, ItemQuery{Tag: "golang"})
		require.NoError(t, err)
		require.Len(t, tagged, 1)
		assert.Equal(t, fav.ID, tagged[0].ID)

		searched, err := itemRepo.FindByOwner(context.Background(), owner, ItemQuery{Search: "PLAIN"})
		require.NoError(t, err)
		require.Len(t, searched, 1)
		assert.Equal(t, plain.ID, searched[0].ID)

		all, err := itemRepo.FindByOwner(context.Background(), owner, ItemQuery{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		for _, it := range all {
			_, err = itemRepo.Delete(context.Background(), owner, it.ID)
			assert.NoError(t, err)
		}
	})

	t.Run("UpdatePartial leaves other fields alone", func(t *testing.T) {
		item := newTestItem(userID, "before", nil)
		item.Description = "original description"
		_, err := itemRepo.Create(context.Background(), item)
		require.NoError(t, err)

		result, err := itemRepo.UpdatePartial(context.Background(), userID, item.ID, bson.M{"$set": bson.M{"title": "after"}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.MatchedCount)

		updated, err := itemRepo.FindOne(context.Background(), userID, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Title)
		assert.Equal(t, "original description", updated.Description)
		assert.Equal(t, item.URL, updated.URL)

		_, err = itemRepo.Delete(context.Background(), userID, item.ID)
		assert.NoError(t, err)
	})

	t.Run("CountByFolder and ReassignFolder", func(t *testing.T) {
		owner := primitive.NewObjectID()
		folderID := primitive.NewObjectID()

		first := newTestItem(owner, "filed-1", &folderID)
		second := newTestItem(owner, "filed-2", &folderID)
		loose := newTestItem(owner, "loose", nil)

		for _, it := range []*models.Item{first, second, loose} {
			_, err := itemRepo.Create(context.Background(), it)
			require.NoError(t, err)
		}

		count, err := itemRepo.CountByFolder(context.Background(), owner, folderID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		moved, err := itemRepo.ReassignFolder(context.Background(), owner, folderID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), moved)

		count, err = itemRepo.CountByFolder(context.Background(), owner, folderID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		reassigned, err := itemRepo.FindOne(context.Background(), owner, first.ID)
		require.NoError(t, err)
		assert.Nil(t, reassigned.FolderID)

		for _, it := range []*models.Item{first, second, loose} {
			_, err = itemRepo.Delete(context.Background(), owner, it.ID)
			assert.NoError(t, err)
		}
	})
}
