package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func TestCreateTaskInputValidation(t *testing.T) {
	h := &TaskHandler{}

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: "{"},
		{name: "missing title", body: `{"description":"d"}`},
		{name: "out-of-set status", body: `{"title":"T","status":"blocked"}`},
		{name: "malformed assignee id", body: `{"title":"T","assignedTo":"xyz"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h.CreateTask(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestAssignTaskInputValidation(t *testing.T) {
	h := &TaskHandler{}

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: "oops"},
		{name: "missing task id", body: `{"userId":"507f191e810c19729de860ea"}`},
		{name: "missing user id", body: `{"taskId":"507f191e810c19729de860ea"}`},
		{name: "malformed task id", body: `{"taskId":"abc","userId":"507f191e810c19729de860ea"}`},
		{name: "malformed user id", body: `{"taskId":"507f191e810c19729de860ea","userId":"abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tasks/assign", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h.AssignTaskToUser(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestTaskIDRoutesRejectMalformedID(t *testing.T) {
	h := &TaskHandler{}

	r := mux.NewRouter()
	r.HandleFunc("/tasks/{id}", h.GetTaskByID).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}", h.UpdateTaskByID).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{id}", h.DeleteTaskByID).Methods(http.MethodDelete)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/tasks/not-hex", strings.NewReader("{}"))
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestUpdateTaskRejectsBadInput(t *testing.T) {
	h := &TaskHandler{}

	r := mux.NewRouter()
	r.HandleFunc("/tasks/{id}", h.UpdateTaskByID).Methods(http.MethodPut)

	tests := []struct {
		name string
		body string
	}{
		{name: "out-of-set status", body: `{"status":"paused"}`},
		{name: "malformed assignee id", body: `{"assignedTo":"nope"}`},
		{name: "invalid json", body: "{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/tasks/507f191e810c19729de860ea", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}
