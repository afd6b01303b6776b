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

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

type createProjectRequest struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	DueDate     *time.Time    `json:"dueDate"`
	Status      models.Status `json:"status"`
	Members     []string      `json:"members"`
}

type updateProjectRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	DueDate     *time.Time     `json:"dueDate"`
	Status      *models.Status `json:"status"`
	Members     []string       `json:"members"`
}

type addUserToProjectRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
}

func parseMemberIDs(raw []string) ([]primitive.ObjectID, error) {
	if raw == nil {
		return nil, nil
	}
	members := make([]primitive.ObjectID, 0, len(raw))
	for _, m := range raw {
		id, err := primitive.ObjectIDFromHex(m)
		if err != nil {
			return nil, err
		}
		members = append(members, id)
	}
	return members, nil
}

func (h *ProjectHandler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	status := models.Status(r.URL.Query().Get("status"))

	projects, err := h.Service.GetAll(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectsByUserAndStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	status := models.Status(r.URL.Query().Get("status"))

	projects, err := h.Service.GetAllByUserIDAndStatus(r.Context(), user.ID, status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) AddUserToProject(w http.ResponseWriter, r *http.Request) {
	var req addUserToProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	project, err := h.Service.AddUserToProject(r.Context(), projectID, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		writeNotFound(w, "Project or user not found")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// CreateProject stamps the authenticated caller as the project owner.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	var req createProjectRequest
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

	members, err := parseMemberIDs(req.Members)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Owner:       user.ID,
		Members:     members,
	}

	projectID, err := h.Service.Create(r.Context(), project)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": projectID.Hex()})
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if req.Status != nil && !req.Status.IsValid() {
		writeError(w, http.StatusBadRequest, "Invalid status value")
		return
	}

	members, err := parseMemberIDs(req.Members)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	update := services.ProjectUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Members:     members,
	}

	if err := h.Service.UpdateByID(r.Context(), id, update); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.Service.DeleteByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
