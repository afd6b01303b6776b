package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title       string              `json:"title" bson:"title"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	DueDate     *time.Time          `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Status      Status              `json:"status" bson:"status"`
	AssignedTo  *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
}
