// Package storage keeps todos in SQLite for the development API server.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"todos/internal/todo"
)

// ErrNotFound is returned when no task has the requested id.
var ErrNotFound = errors.New("task not found")

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if !strings.HasPrefix(dbPath, "file:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dbPath, err)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureColumns()
}

// ensureColumns upgrades databases created before tasks were scoped to users.
func (s *Store) ensureColumns() error {
	required := map[string]string{
		"user_id":    "ALTER TABLE todos ADD COLUMN user_id INTEGER NOT NULL DEFAULT 0;",
		"updated_at": "ALTER TABLE todos ADD COLUMN updated_at TEXT DEFAULT NULL;",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(todos);`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			rows.Close()
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS todos_user_id ON todos(user_id);`)
	return err
}

// ListTasks returns the tasks owned by userID in creation order.
func (s *Store) ListTasks(ctx context.Context, userID int) ([]todo.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, title, completed FROM todos WHERE user_id = ? ORDER BY id;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []todo.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) GetTask(ctx context.Context, id int) (todo.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, user_id, title, completed FROM todos WHERE id = ?;`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return todo.Task{}, ErrNotFound
	}
	return t, err
}

// CreateTask inserts t and returns it with the assigned id.
func (s *Store) CreateTask(ctx context.Context, t todo.Task) (todo.Task, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `INSERT INTO todos (user_id, title, completed, created_at) VALUES (?, ?, ?, ?);`,
		t.UserID, t.Title, boolToInt(t.Completed), now)
	if err != nil {
		return todo.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return todo.Task{}, err
	}
	t.ID = int(id)
	return t, nil
}

// UpdateTask overwrites title and completed of the task with t.ID. The
// owner is never changed.
func (s *Store) UpdateTask(ctx context.Context, t todo.Task) (todo.Task, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `UPDATE todos SET title = ?, completed = ?, updated_at = ? WHERE id = ?;`,
		t.Title, boolToInt(t.Completed), now, t.ID)
	if err != nil {
		return todo.Task{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return todo.Task{}, ErrNotFound
	}
	return s.GetTask(ctx, t.ID)
}

func (s *Store) DeleteTask(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (todo.Task, error) {
	var t todo.Task
	var completed int
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &completed); err != nil {
		return todo.Task{}, err
	}
	t.Completed = completed == 1
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
