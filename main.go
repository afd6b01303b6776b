package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"project-management-api/db"
	"project-management-api/handlers"
	"project-management-api/logging"
	"project-management-api/middleware"
	"project-management-api/services"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Project Management API...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		logging.Logger.Fatal("Event ID: CONFIG_ERROR, Description: MONGO_URI is not set in the environment variables.")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logging.Logger.Fatal("Event ID: CONFIG_ERROR, Description: JWT_SECRET is not set in the environment variables.")
	}

	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "project_management"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := db.Connect(ctx, mongoURI)
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(context.Background())
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB.")

	database := client.Database(mongoDBName)
	usersCollection := database.Collection("users")
	projectsCollection := database.Collection("projects")
	tasksCollection := database.Collection("tasks")

	if err := db.EnsureUserIndexes(ctx, usersCollection); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: Failed to create unique email index: %v", err)
	}

	jwtService := services.NewJWTService(jwtSecret)
	userService := services.NewUserService(usersCollection)
	projectService := services.NewProjectService(projectsCollection, usersCollection)
	taskService := services.NewTaskService(tasksCollection, usersCollection)

	userHandler := handlers.NewUserHandler(userService, jwtService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	auth := middleware.JWTAuth(jwtService)

	r := mux.NewRouter()

	// Users. Literal routes go before the {id} route.
	r.Handle("/users/register", auth(http.HandlerFunc(userHandler.Register))).Methods(http.MethodPost)
	r.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/users", userHandler.GetAllUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", userHandler.CreateUser).Methods(http.MethodPost)
	r.Handle("/users/{id}", auth(http.HandlerFunc(userHandler.GetUserByID))).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", userHandler.UpdateUserByID).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", userHandler.DeleteUserByID).Methods(http.MethodDelete)

	// Projects. Every route requires a token.
	r.Handle("/projects/user", auth(http.HandlerFunc(projectHandler.GetProjectsByUserAndStatus))).Methods(http.MethodGet)
	r.Handle("/projects/addUser", auth(http.HandlerFunc(projectHandler.AddUserToProject))).Methods(http.MethodPost)
	r.Handle("/projects", auth(http.HandlerFunc(projectHandler.GetAllProjects))).Methods(http.MethodGet)
	r.Handle("/projects", auth(http.HandlerFunc(projectHandler.CreateProject))).Methods(http.MethodPost)
	r.Handle("/projects/{id}", auth(http.HandlerFunc(projectHandler.GetProjectByID))).Methods(http.MethodGet)
	r.Handle("/projects/{id}", auth(http.HandlerFunc(projectHandler.UpdateProject))).Methods(http.MethodPut)
	r.Handle("/projects/{id}", auth(http.HandlerFunc(projectHandler.DeleteProject))).Methods(http.MethodDelete)

	// Tasks. Every route requires a token.
	r.Handle("/tasks/user", auth(http.HandlerFunc(taskHandler.GetTasksByUserAndStatus))).Methods(http.MethodGet)
	r.Handle("/tasks/assign", auth(http.HandlerFunc(taskHandler.AssignTaskToUser))).Methods(http.MethodPost)
	r.Handle("/tasks", auth(http.HandlerFunc(taskHandler.GetAllTasks))).Methods(http.MethodGet)
	r.Handle("/tasks", auth(http.HandlerFunc(taskHandler.CreateTask))).Methods(http.MethodPost)
	r.Handle("/tasks/{id}", auth(http.HandlerFunc(taskHandler.GetTaskByID))).Methods(http.MethodGet)
	r.Handle("/tasks/{id}", auth(http.HandlerFunc(taskHandler.UpdateTaskByID))).Methods(http.MethodPut)
	r.Handle("/tasks/{id}", auth(http.HandlerFunc(taskHandler.DeleteTaskByID))).Methods(http.MethodDelete)

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", serverPort),
		Handler:      gorillahandlers.RecoveryHandler()(cors(r)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost:%s", serverPort)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
