// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"todos/internal/todo"
)

// ErrNotFound is returned when a task id is unknown.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is a convenient injected failure.
var ErrUnavailable = errors.New("service unavailable")

// Call records one request made against FakeService.
type Call struct {
	Op   string // "list", "create", "update" or "delete"
	Task todo.Task
}

// FakeService is an in-memory implementation of api.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	userID int
	nextID int
	tasks  []todo.Task
	calls  []Call

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr map[int]error // task id -> error
	DeleteErr map[int]error // task id -> error

	// EchoTitle, when set, replaces the title the server returns on create.
	EchoTitle string
}

// NewFakeService creates an empty FakeService acting for userID.
func NewFakeService(userID int) *FakeService {
	return &FakeService{
		userID:    userID,
		nextID:    100,
		UpdateErr: make(map[int]error),
		DeleteErr: make(map[int]error),
	}
}

// Seed adds stored tasks without recording calls.
func (f *FakeService) Seed(tasks ...todo.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range tasks {
		if t.UserID == 0 {
			t.UserID = f.userID
		}
		f.tasks = append(f.tasks, t)
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
	}
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []todo.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]todo.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Calls returns every recorded request in order.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsFor returns the recorded requests with the given op.
func (f *FakeService) CallsFor(op string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls forgets recorded requests.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// ListTodos implements api.Service.
func (f *FakeService) ListTodos(ctx context.Context) ([]todo.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "list"})
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]todo.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		if t.UserID == f.userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateTodo implements api.Service.
func (f *FakeService) CreateTodo(ctx context.Context, t todo.Task) (todo.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "create", Task: t})
	if f.CreateErr != nil {
		return todo.Task{}, f.CreateErr
	}
	t.ID = f.nextID
	f.nextID++
	t.UserID = f.userID
	f.tasks = append(f.tasks, t)
	if f.EchoTitle != "" {
		t.Title = f.EchoTitle
	}
	return t, nil
}

// UpdateTodo implements api.Service.
func (f *FakeService) UpdateTodo(ctx context.Context, t todo.Task) (todo.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "update", Task: t})
	if err := f.UpdateErr[t.ID]; err != nil {
		return todo.Task{}, err
	}
	i := todo.Index(f.tasks, t.ID)
	if i < 0 {
		return todo.Task{}, ErrNotFound
	}
	t.UserID = f.tasks[i].UserID
	f.tasks[i] = t
	return t, nil
}

// DeleteTodo implements api.Service.
func (f *FakeService) DeleteTodo(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "delete", Task: todo.Task{ID: id}})
	if err := f.DeleteErr[id]; err != nil {
		return err
	}
	i := todo.Index(f.tasks, id)
	if i < 0 {
		return ErrNotFound
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}
