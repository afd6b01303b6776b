package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"project-management-api/middleware"
	"project-management-api/models"
	"project-management-api/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskHandler struct {
	Service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

type createTaskRequest struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	DueDate     *time.Time    `json:"dueDate"`
	Status      models.Status `json:"status"`
	AssignedTo  *string       `json:"assignedTo"`
}

type updateTaskRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	DueDate     *time.Time     `json:"dueDate"`
	Status      *models.Status `json:"status"`
	AssignedTo  *string        `json:"assignedTo"`
}

type assignTaskRequest struct {
	TaskID string `json:"taskId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	status := models.Status(r.URL.Query().Get("status"))

	tasks, err := h.Service.GetAll(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTasksByUserAndStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	status := models.Status(r.URL.Query().Get("status"))

	tasks, err := h.Service.GetAllByUserIDAndStatus(r.Context(), user.ID, status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) AssignTaskToUser(w http.ResponseWriter, r *http.Request) {
	var req assignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	taskID, err := primitive.ObjectIDFromHex(req.TaskID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	task, err := h.Service.AssignTaskToUser(r.Context(), taskID, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if task == nil {
		writeNotFound(w, "Task or user not found")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Status != "" && !req.Status.IsValid() {
		writeError(w, http.StatusBadRequest, "Invalid status value")
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	}

	if req.AssignedTo != nil {
		assignee, err := primitive.ObjectIDFromHex(*req.AssignedTo)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid assignee ID")
			return
		}
		task.AssignedTo = &assignee
	}

	taskID, err := h.Service.Create(r.Context(), task)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      taskID.Hex(),
		"message": "Task created successfully",
	})
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if req.Status != nil && !req.Status.IsValid() {
		writeError(w, http.StatusBadRequest, "Invalid status value")
		return
	}

	update := services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	}

	if req.AssignedTo != nil {
		assignee, err := primitive.ObjectIDFromHex(*req.AssignedTo)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid assignee ID")
			return
		}
		update.AssignedTo = &assignee
	}

	if err := h.Service.UpdateByID(r.Context(), id, update); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeMessage(w, http.StatusOK, "Task updated successfully")
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.Service.DeleteByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	writeMessage(w, http.StatusOK, "Task deleted successfully")
}
