package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"secondbrain/internal/models"
	"secondbrain/internal/repositories"
)

// In-memory repository fakes backing the service tests.

type fakeItemRepo struct {
	items map[primitive.ObjectID]*models.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[primitive.ObjectID]*models.Item)}
}

func (r *fakeItemRepo) FindByOwner(_ context.Context, ownerID primitive.ObjectID, q repositories.ItemQuery) ([]models.Item, error) {
	var out []models.Item
	for _, it := range r.items {
		if it.UserID != ownerID {
			continue
		}
		if q.Type != "" && q.Type != models.TypeFilterAll && string(it.Type) != q.Type {
			continue
		}
		if q.FavoritesOnly && !it.IsFavorite {
			continue
		}
		if q.FolderID != nil && (it.FolderID == nil || *it.FolderID != *q.FolderID) {
			continue
		}
		if q.Tag != "" && !containsTag(it.Tags, q.Tag) {
			continue
		}
		out = append(out, *it)
	}
	return out, nil
}

func containsTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

func (r *fakeItemRepo) FindOne(_ context.Context, ownerID, itemID primitive.ObjectID) (*models.Item, error) {
	it, ok := r.items[itemID]
	if !ok || it.UserID != ownerID {
		return nil, mongo.ErrNoDocuments
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) Create(_ context.Context, item *models.Item) (*models.Item, error) {
	cp := *item
	r.items[item.ID] = &cp
	return item, nil
}

func (r *fakeItemRepo) UpdatePartial(_ context.Context, ownerID, itemID primitive.ObjectID, update bson.M) (*mongo.UpdateResult, error) {
	it, ok := r.items[itemID]
	if !ok || it.UserID != ownerID {
		return &mongo.UpdateResult{}, nil
	}
	fields, _ := update["$set"].(bson.M)
	for k, v := range fields {
		switch k {
		case "title":
			it.Title = v.(string)
		case "description":
			it.Description = v.(string)
		case "tags":
			it.Tags = v.([]string)
		case "is_favorite":
			it.IsFavorite = v.(bool)
		case "is_bookmarked":
			it.IsBookmarked = v.(bool)
		case "folder_id":
			if v == nil {
				it.FolderID = nil
			} else {
				it.FolderID = v.(*primitive.ObjectID)
			}
		}
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *fakeItemRepo) Delete(_ context.Context, ownerID, itemID primitive.ObjectID) (*mongo.DeleteResult, error) {
	it, ok := r.items[itemID]
	if !ok || it.UserID != ownerID {
		return &mongo.DeleteResult{}, nil
	}
	delete(r.items, itemID)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func (r *fakeItemRepo) CountByFolder(_ context.Context, ownerID, folderID primitive.ObjectID) (int64, error) {
	var n int64
	for _, it := range r.items {
		if it.UserID == ownerID && it.FolderID != nil && *it.FolderID == folderID {
			n++
		}
	}
	return n, nil
}

func (r *fakeItemRepo) ReassignFolder(_ context.Context, ownerID primitive.ObjectID, oldFolderID primitive.ObjectID, newFolderID *primitive.ObjectID) (int64, error) {
	var n int64
	for _, it := range r.items {
		if it.UserID == ownerID && it.FolderID != nil && *it.FolderID == oldFolderID {
			it.FolderID = newFolderID
			n++
		}
	}
	return n, nil
}

type fakeFolderRepo struct {
	folders map[primitive.ObjectID]*models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[primitive.ObjectID]*models.Folder)}
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) (*models.Folder, error) {
	cp := *folder
	r.folders[folder.ID] = &cp
	return folder, nil
}

func (r *fakeFolderRepo) FindByID(_ context.Context, userID, folderID primitive.ObjectID) (*models.Folder, error) {
	f, ok := r.folders[folderID]
	if !ok || f.UserID != userID {
		return nil, mongo.ErrNoDocuments
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFolderRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) Update(_ context.Context, userID, folderID primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	f, ok := r.folders[folderID]
	if !ok || f.UserID != userID {
		return &mongo.UpdateResult{}, nil
	}
	for k, v := range updateFields {
		switch k {
		case "name":
			f.Name = v.(string)
		case "parent_id":
			if v == nil {
				f.ParentID = nil
			} else {
				f.ParentID = v.(*primitive.ObjectID)
			}
		}
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, userID, folderID primitive.ObjectID) (*mongo.DeleteResult, error) {
	f, ok := r.folders[folderID]
	if !ok || f.UserID != userID {
		return &mongo.DeleteResult{}, nil
	}
	delete(r.folders, folderID)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func (r *fakeFolderRepo) CountByParent(_ context.Context, userID, parentID primitive.ObjectID) (int64, error) {
	var n int64
	for _, f := range r.folders {
		if f.UserID == userID && f.ParentID != nil && *f.ParentID == parentID {
			n++
		}
	}
	return n, nil
}

type fakeTagRepo struct {
	usage map[string]int64
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{usage: make(map[string]int64)}
}

func (r *fakeTagRepo) FindByID(_ context.Context, _, _ primitive.ObjectID) (*models.Tag, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *fakeTagRepo) FindByUser(_ context.Context, _ primitive.ObjectID) ([]models.Tag, error) {
	return nil, nil
}

func (r *fakeTagRepo) Update(_ context.Context, _, _ primitive.ObjectID, _ bson.M) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{}, nil
}

func (r *fakeTagRepo) IncrementUsage(_ context.Context, _ primitive.ObjectID, name string, delta int64) error {
	r.usage[name] += delta
	if r.usage[name] <= 0 {
		delete(r.usage, name)
	}
	return nil
}
