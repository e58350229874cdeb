package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todos/internal/todo"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "todo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestCreateAndListScopedByUser(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a, err := s.CreateTask(ctx, todo.Task{UserID: 1, Title: "first"})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, todo.Task{UserID: 2, Title: "other user"})
	require.NoError(t, err)
	b, err := s.CreateTask(ctx, todo.Task{UserID: 1, Title: "second", Completed: true})
	require.NoError(t, err)

	assert.NotZero(t, a.ID)
	assert.Greater(t, b.ID, a.ID)

	tasks, err := s.ListTasks(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []todo.Task{a, b}, tasks)

	none, err := s.ListTasks(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	created, err := s.CreateTask(ctx, todo.Task{UserID: 1, Title: "draft"})
	require.NoError(t, err)

	updated, err := s.UpdateTask(ctx, todo.Task{ID: created.ID, UserID: 7, Title: "final", Completed: true})
	require.NoError(t, err)
	assert.Equal(t, todo.Task{ID: created.ID, UserID: 1, Title: "final", Completed: true}, updated)

	_, err = s.UpdateTask(ctx, todo.Task{ID: 12345, Title: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	created, err := s.CreateTask(ctx, todo.Task{UserID: 1, Title: "gone soon"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, created.ID))
	_, err = s.GetTask(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteTask(ctx, created.ID), ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todo.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, todo.Task{UserID: 3, Title: "persisted"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	tasks, err := s.ListTasks(ctx, 3)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "persisted", tasks[0].Title)
}
