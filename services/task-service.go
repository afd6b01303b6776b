package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"project-management-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskService struct {
	TasksCollection *mongo.Collection
	UsersCollection *mongo.Collection
}

func NewTaskService(tasksCollection, usersCollection *mongo.Collection) *TaskService {
	return &TaskService{
		TasksCollection: tasksCollection,
		UsersCollection: usersCollection,
	}
}

// GetAll lists tasks, optionally filtered by exact status match.
func (s *TaskService) GetAll(ctx context.Context, status models.Status) ([]models.Task, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := s.TasksCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	return tasks, nil
}

// GetAllByUserIDAndStatus queries tasks by assignee directly.
func (s *TaskService) GetAllByUserIDAndStatus(ctx context.Context, userID primitive.ObjectID, status models.Status) ([]models.Task, error) {
	filter := bson.M{"assignedTo": userID}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := s.TasksCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks for user: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	return tasks, nil
}

// AssignTaskToUser sets the task's assignee, overwriting any prior one.
// A miss on either entity returns nil.
func (s *TaskService) AssignTaskToUser(ctx context.Context, taskID, userID primitive.ObjectID) (*models.Task, error) {
	err := s.UsersCollection.FindOne(ctx, bson.M{"_id": userID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	update := bson.M{"$set": bson.M{"assignedTo": userID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task models.Task
	err = s.TasksCollection.FindOneAndUpdate(ctx, bson.M{"_id": taskID}, update, opts).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	return &task, nil
}

func (s *TaskService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Create(ctx context.Context, task models.Task) (primitive.ObjectID, error) {
	if task.Status == "" {
		task.Status = models.StatusNotStarted
	}

	result, err := s.TasksCollection.InsertOne(ctx, task)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create task: %w", err)
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

// TaskUpdate carries the optional task fields; nil means leave unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *models.Status
	AssignedTo  *primitive.ObjectID
}

func (s *TaskService) UpdateByID(ctx context.Context, id primitive.ObjectID, update TaskUpdate) error {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.DueDate != nil {
		set["dueDate"] = *update.DueDate
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.AssignedTo != nil {
		set["assignedTo"] = *update.AssignedTo
	}
	if len(set) == 0 {
		err := s.TasksCollection.FindOne(ctx, bson.M{"_id": id}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	}

	result, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *TaskService) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.TasksCollection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return &task, nil
}
