package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tag is a denormalized per-user index over Item.Tags. Item.Tags remains the
// source of truth for membership; UsageCount is maintained on item writes.
type Tag struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"user_id" bson:"user_id"`
	Name       string             `json:"name" bson:"name"`
	Color      string             `json:"color,omitempty" bson:"color,omitempty"`
	UsageCount int64              `json:"usage_count" bson:"usage_count"`
	CreatedAt  primitive.DateTime `json:"created_at" bson:"created_at"`
}

type TagUpdate struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}
