package services

import (
	"context"
	"errors"
	"fmt"

	"project-management-api/models"
	"project-management-api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserService struct {
	UserCollection *mongo.Collection
}

func NewUserService(userCollection *mongo.Collection) *UserService {
	return &UserService{UserCollection: userCollection}
}

// Register hashes the password and persists a new user. The unique index on
// email backs up the pre-check, so a concurrent duplicate still fails.
func (s *UserService) Register(ctx context.Context, name, email, password string) (primitive.ObjectID, error) {
	var existing models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		return primitive.NilObjectID, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
	}

	result, err := s.UserCollection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrEmailTaken
		}
		return primitive.NilObjectID, fmt.Errorf("failed to save user: %w", err)
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

// Authenticate looks up the user by email and checks the password. A miss on
// either factor yields a nil user, not an error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, nil
	}

	user.Password = ""
	return &user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	cursor, err := s.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &user, nil
}

// Create is the direct creation path. It hashes the password the same way
// Register does; an unhashed credential never reaches the store.
func (s *UserService) Create(ctx context.Context, name, email, password string) (primitive.ObjectID, error) {
	return s.Register(ctx, name, email, password)
}

// UserUpdate carries the optional profile fields; nil means leave unchanged.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

func (s *UserService) UpdateByID(ctx context.Context, id primitive.ObjectID, update UserUpdate) error {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Password != nil {
		hashed, err := utils.HashPassword(*update.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		set["password"] = hashed
	}
	if len(set) == 0 {
		err := s.UserCollection.FindOne(ctx, bson.M{"_id": id}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	}

	result, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *UserService) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.UserCollection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	user.Password = ""
	return &user, nil
}
