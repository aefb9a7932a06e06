package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceholderThumbnail is used when metadata resolution yields no image.
const PlaceholderThumbnail = "/placeholder.svg?height=200&width=300"

// UntitledFallback is used when neither the user nor metadata resolution
// supplies a title.
const UntitledFallback = "Untitled"

type Item struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID  `json:"user_id" bson:"user_id"`
	URL          string              `json:"url" bson:"url"`
	Type         ContentType         `json:"type" bson:"type"`
	EmbedID      string              `json:"embed_id,omitempty" bson:"embed_id,omitempty"`
	Title        string              `json:"title" bson:"title"`
	Description  string              `json:"description" bson:"description"`
	Thumbnail    string              `json:"thumbnail" bson:"thumbnail"`
	Tags         []string            `json:"tags" bson:"tags"`
	IsFavorite   bool                `json:"is_favorite" bson:"is_favorite"`
	IsBookmarked bool                `json:"is_bookmarked" bson:"is_bookmarked"`
	ViewCount    int64               `json:"view_count" bson:"view_count"`
	FolderID     *primitive.ObjectID `json:"folder_id,omitempty" bson:"folder_id,omitempty"`
	CreatedAt    primitive.DateTime  `json:"created_at" bson:"created_at"`
}

type AddItemRequestBody struct {
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	FolderID    *string  `json:"folder_id,omitempty"`
}

// UpdateItemRequestBody carries a partial patch. URL, type, embed id and
// created_at are immutable after creation and deliberately absent here.
type UpdateItemRequestBody struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	IsFavorite   *bool     `json:"is_favorite,omitempty"`
	IsBookmarked *bool     `json:"is_bookmarked,omitempty"`
	FolderID     *string   `json:"folder_id,omitempty"`
}
