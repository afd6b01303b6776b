package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

// The cases below fail input handling before any database call is made, so
// the handlers run without a backing store.

func TestRegisterInputValidation(t *testing.T) {
	h := &UserHandler{}

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: "{not json"},
		{name: "missing name", body: `{"email":"a@x.com","password":"pw"}`},
		{name: "missing email", body: `{"name":"A","password":"pw"}`},
		{name: "missing password", body: `{"name":"A","email":"a@x.com"}`},
		{name: "malformed email", body: `{"name":"A","email":"not-an-email","password":"pw"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h.Register(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestLoginInputValidation(t *testing.T) {
	h := &UserHandler{}

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: "not json at all"},
		{name: "missing email", body: `{"password":"pw"}`},
		{name: "missing password", body: `{"email":"a@x.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h.Login(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestUserIDRoutesRejectMalformedID(t *testing.T) {
	h := &UserHandler{}

	r := mux.NewRouter()
	r.HandleFunc("/users/{id}", h.GetUserByID).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.UpdateUserByID).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", h.DeleteUserByID).Methods(http.MethodDelete)

	tests := []struct {
		name   string
		method string
	}{
		{name: "get", method: http.MethodGet},
		{name: "update", method: http.MethodPut},
		{name: "delete", method: http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/users/not-a-hex-id", strings.NewReader("{}"))
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestUpdateUserRejectsMalformedEmail(t *testing.T) {
	h := &UserHandler{}

	r := mux.NewRouter()
	r.HandleFunc("/users/{id}", h.UpdateUserByID).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/users/507f191e810c19729de860ea", strings.NewReader(`{"email":"nope"}`))
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
