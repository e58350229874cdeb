// Package api talks to the remote todos API on behalf of a single user.
package api

import (
	"context"

	"todos/internal/todo"
)

// Service is the remote collaborator the UI drives. The UI never builds
// requests itself.
type Service interface {
	// ListTodos returns every task owned by the configured user, in API order.
	ListTodos(ctx context.Context) ([]todo.Task, error)

	// CreateTodo stores a new task and returns it with its server id.
	CreateTodo(ctx context.Context, t todo.Task) (todo.Task, error)

	// UpdateTodo replaces the task with t.ID and returns the stored record.
	UpdateTodo(ctx context.Context, t todo.Task) (todo.Task, error)

	// DeleteTodo removes the task with id.
	DeleteTodo(ctx context.Context, id int) error
}
