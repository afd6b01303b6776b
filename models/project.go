package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project membership lives on the project document; a member is referenced
// by user ID only, never embedded.
type Project struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description,omitempty" bson:"description,omitempty"`
	DueDate     *time.Time           `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Status      Status               `json:"status" bson:"status"`
	Owner       primitive.ObjectID   `json:"owner" bson:"owner,omitempty"`
	Members     []primitive.ObjectID `json:"members" bson:"members"`
}
