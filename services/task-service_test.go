package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const tasksNS = "project_management.tasks"

func TestAssignTaskToUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assignee is overwritten with the given user", func(mt *mtest.T) {
		s := NewTaskService(mt.Coll, mt.Coll)

		taskID := primitive.NewObjectID()
		userID := primitive.NewObjectID()

		// The stored task already carries a different assignee; the update
		// replaces it.
		updated := bson.D{
			{Key: "_id", Value: taskID},
			{Key: "title", Value: "T1"},
			{Key: "status", Value: "not started"},
			{Key: "assignedTo", Value: userID},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, tasksNS, mtest.FirstBatch, memberDoc(userID)),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: updated}),
		)

		task, err := s.AssignTaskToUser(context.Background(), taskID, userID)
		if err != nil {
			mt.Fatalf("AssignTaskToUser() unexpected error = %v", err)
		}
		if task == nil {
			mt.Fatal("AssignTaskToUser() returned nil for existing entities")
		}
		if task.AssignedTo == nil || *task.AssignedTo != userID {
			mt.Errorf("assignedTo = %v, want %s", task.AssignedTo, userID.Hex())
		}
	})

	mt.Run("nonexistent user returns nil", func(mt *mtest.T) {
		s := NewTaskService(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, tasksNS, mtest.FirstBatch))

		task, err := s.AssignTaskToUser(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		if err != nil {
			mt.Fatalf("AssignTaskToUser() unexpected error = %v", err)
		}
		if task != nil {
			mt.Errorf("AssignTaskToUser() = %+v, want nil", task)
		}
	})

	mt.Run("nonexistent task returns nil", func(mt *mtest.T) {
		s := NewTaskService(mt.Coll, mt.Coll)

		userID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, tasksNS, mtest.FirstBatch, memberDoc(userID)),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
		)

		task, err := s.AssignTaskToUser(context.Background(), primitive.NewObjectID(), userID)
		if err != nil {
			mt.Fatalf("AssignTaskToUser() unexpected error = %v", err)
		}
		if task != nil {
			mt.Errorf("AssignTaskToUser() = %+v, want nil", task)
		}
	})
}

func TestDeleteTaskByIDMiss(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("nonexistent id returns nil, not an error", func(mt *mtest.T) {
		s := NewTaskService(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		task, err := s.DeleteByID(context.Background(), primitive.NewObjectID())
		if err != nil {
			mt.Fatalf("DeleteByID() unexpected error = %v", err)
		}
		if task != nil {
			mt.Errorf("DeleteByID() = %+v, want nil", task)
		}
	})
}

func TestUpdateTaskByIDEmptyUpdateMiss(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty field set on nonexistent id returns not found", func(mt *mtest.T) {
		s := NewTaskService(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, tasksNS, mtest.FirstBatch))

		err := s.UpdateByID(context.Background(), primitive.NewObjectID(), TaskUpdate{})
		if !errors.Is(err, ErrNotFound) {
			mt.Errorf("UpdateByID() error = %v, want %v", err, ErrNotFound)
		}
	})
}
