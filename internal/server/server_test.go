package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todos/internal/storage"
	"todos/internal/todo"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "todo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewRouter(NewTodoController(store, log.New(io.Discard)))
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) todo.Task {
	t.Helper()
	var task todo.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

func TestCreateListUpdateDelete(t *testing.T) {
	h := newTestRouter(t)

	rec := serve(t, h, http.MethodPost, "/todos", `{"title":"  Buy milk ","userId":42,"completed":false}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeTask(t, rec)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, 42, created.UserID)

	rec = serve(t, h, http.MethodGet, "/todos?userId=42", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []todo.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	assert.Equal(t, []todo.Task{created}, tasks)

	rec = serve(t, h, http.MethodPatch, "/todos/"+itoa(created.ID), `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeTask(t, rec)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Title)

	rec = serve(t, h, http.MethodGet, "/todos/"+itoa(created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, updated, decodeTask(t, rec))

	rec = serve(t, h, http.MethodDelete, "/todos/"+itoa(created.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(t, h, http.MethodGet, "/todos/"+itoa(created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRequiresUserID(t *testing.T) {
	h := newTestRouter(t)
	rec := serve(t, h, http.MethodGet, "/todos", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEmptyIsArray(t *testing.T) {
	h := newTestRouter(t)
	rec := serve(t, h, http.MethodGet, "/todos?userId=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateValidation(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{`},
		{name: "blank title", body: `{"title":"   ","userId":1}`},
		{name: "missing user", body: `{"title":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h, http.MethodPost, "/todos", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	h := newTestRouter(t)
	created := decodeTask(t, serve(t, h, http.MethodPost, "/todos", `{"title":"keep","userId":1}`))

	rec := serve(t, h, http.MethodPatch, "/todos/"+itoa(created.ID), `{"title":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMissingTodo(t *testing.T) {
	h := newTestRouter(t)
	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodPatch, "/todos/999", `{"completed":true}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodDelete, "/todos/999", "").Code)
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
