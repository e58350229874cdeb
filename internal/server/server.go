// Package server serves the todos API from a local SQLite store. It speaks
// the same routes as the remote students API so the client can run offline.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"todos/internal/api"
	"todos/internal/storage"
	"todos/internal/todo"
)

// Store is the persistence the handlers need.
type Store interface {
	ListTasks(ctx context.Context, userID int) ([]todo.Task, error)
	GetTask(ctx context.Context, id int) (todo.Task, error)
	CreateTask(ctx context.Context, t todo.Task) (todo.Task, error)
	UpdateTask(ctx context.Context, t todo.Task) (todo.Task, error)
	DeleteTask(ctx context.Context, id int) error
}

// TodoController handles HTTP requests for todos.
type TodoController struct {
	store  Store
	logger *log.Logger
}

func NewTodoController(store Store, logger *log.Logger) *TodoController {
	return &TodoController{store: store, logger: logger}
}

// NewRouter builds the router with every todo route registered.
func NewRouter(c *TodoController) *mux.Router {
	router := mux.NewRouter()
	RegisterRoutes(router, c)
	router.Use(c.logRequests)
	return router
}

// RegisterRoutes sets up all todo routes on router.
func RegisterRoutes(router *mux.Router, c *TodoController) {
	router.HandleFunc("/todos", c.ListTodos).Methods(http.MethodGet)
	router.HandleFunc("/todos", c.CreateTodo).Methods(http.MethodPost)
	router.HandleFunc("/todos/{id:[0-9]+}", c.GetTodo).Methods(http.MethodGet)
	router.HandleFunc("/todos/{id:[0-9]+}", c.UpdateTodo).Methods(http.MethodPatch, http.MethodPut)
	router.HandleFunc("/todos/{id:[0-9]+}", c.DeleteTodo).Methods(http.MethodDelete)
}

func (c *TodoController) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		c.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", r.Header.Get(api.RequestIDHeader))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// ListTodos handles GET /todos?userId=N.
func (c *TodoController) ListTodos(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get("userId"))
	if err != nil {
		http.Error(w, "userId query parameter is required", http.StatusBadRequest)
		return
	}
	tasks, err := c.store.ListTasks(r.Context(), userID)
	if err != nil {
		c.internalError(w, "list todos", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CreateTodo handles POST /todos.
func (c *TodoController) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var t todo.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" || t.UserID == 0 {
		http.Error(w, "title and userId are required", http.StatusBadRequest)
		return
	}

	created, err := c.store.CreateTask(r.Context(), t)
	if err != nil {
		c.internalError(w, "create todo", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetTodo handles GET /todos/{id}.
func (c *TodoController) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	t, err := c.store.GetTask(r.Context(), id)
	if err != nil {
		c.storeError(w, "get todo", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// UpdateTodo handles PATCH and PUT /todos/{id}. Fields missing from the body
// keep their stored value.
func (c *TodoController) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var patch struct {
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	current, err := c.store.GetTask(r.Context(), id)
	if err != nil {
		c.storeError(w, "update todo", err)
		return
	}
	if patch.Title != nil {
		current.Title = strings.TrimSpace(*patch.Title)
		if current.Title == "" {
			http.Error(w, "title must not be empty", http.StatusBadRequest)
			return
		}
	}
	if patch.Completed != nil {
		current.Completed = *patch.Completed
	}

	updated, err := c.store.UpdateTask(r.Context(), current)
	if err != nil {
		c.storeError(w, "update todo", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTodo handles DELETE /todos/{id}.
func (c *TodoController) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := c.store.DeleteTask(r.Context(), id); err != nil {
		c.storeError(w, "delete todo", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *TodoController) storeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "Todo not found", http.StatusNotFound)
		return
	}
	c.internalError(w, op, err)
}

func (c *TodoController) internalError(w http.ResponseWriter, op string, err error) {
	c.logger.Error(op, "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
