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

type ProjectService struct {
	ProjectsCollection *mongo.Collection
	UsersCollection    *mongo.Collection
}

func NewProjectService(projectsCollection, usersCollection *mongo.Collection) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projectsCollection,
		UsersCollection:    usersCollection,
	}
}

// GetAll lists projects, optionally filtered by exact status match.
func (s *ProjectService) GetAll(ctx context.Context, status models.Status) ([]models.Project, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := s.ProjectsCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}

	return projects, nil
}

// GetAllByUserIDAndStatus lists the projects whose members list contains the
// user. The members list is the single source of truth for membership; no
// per-user project list is kept, so the two views cannot diverge.
func (s *ProjectService) GetAllByUserIDAndStatus(ctx context.Context, userID primitive.ObjectID, status models.Status) ([]models.Project, error) {
	filter := bson.M{"members": userID}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := s.ProjectsCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects for user: %w", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}

	return projects, nil
}

// AddUserToProject appends the user to the project's members list. Re-adding
// an existing member is a no-op. A miss on either entity returns nil.
func (s *ProjectService) AddUserToProject(ctx context.Context, projectID, userID primitive.ObjectID) (*models.Project, error) {
	err := s.UsersCollection.FindOne(ctx, bson.M{"_id": userID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	update := bson.M{"$addToSet": bson.M{"members": userID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var project models.Project
	err = s.ProjectsCollection.FindOneAndUpdate(ctx, bson.M{"_id": projectID}, update, opts).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add user to project: %w", err)
	}

	return &project, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Create(ctx context.Context, project models.Project) (primitive.ObjectID, error) {
	if project.Status == "" {
		project.Status = models.StatusNotStarted
	}
	if project.Members == nil {
		project.Members = []primitive.ObjectID{}
	}

	result, err := s.ProjectsCollection.InsertOne(ctx, project)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create project: %w", err)
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

// ProjectUpdate carries the optional project fields; nil means leave unchanged.
type ProjectUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *models.Status
	Members     []primitive.ObjectID
}

func (s *ProjectService) UpdateByID(ctx context.Context, id primitive.ObjectID, update ProjectUpdate) error {
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
	if update.Members != nil {
		set["members"] = update.Members
	}
	if len(set) == 0 {
		err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": id}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		return nil
	}

	result, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *ProjectService) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.ProjectsCollection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}
	return &project, nil
}
