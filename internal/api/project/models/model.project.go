// Package models - model dự án (Project) thuộc domain project.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project là một dự án của người dùng; mỗi dự án có tối đa một kịch bản
type Project struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID `json:"ownerId" bson:"ownerId" index:"single:1;compound:owner_updated"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Tags        []string           `json:"tags" bson:"tags"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt" index:"compound:owner_updated,order:-1"`
}
