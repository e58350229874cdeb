package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"todos/internal/todo"
)

const (
	// RequestIDHeader carries a per-request id the server may log.
	RequestIDHeader = "X-Request-Id"

	contentType = "application/json; charset=UTF-8"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client implements Service over HTTP.
type Client struct {
	base   *url.URL
	userID int
	http   *http.Client
	logger *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for userID against baseURL.
func New(baseURL string, userID int, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("api url is required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base:   u,
		userID: userID,
		http:   http.DefaultClient,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UserID returns the user the client acts for.
func (c *Client) UserID() int {
	return c.userID
}

// ListTodos implements Service.
func (c *Client) ListTodos(ctx context.Context) ([]todo.Task, error) {
	q := url.Values{}
	q.Set("userId", strconv.Itoa(c.userID))

	var tasks []todo.Task
	if err := c.do(ctx, http.MethodGet, "/todos", q, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}
	return tasks, nil
}

// CreateTodo implements Service. The user id is always the client's.
func (c *Client) CreateTodo(ctx context.Context, t todo.Task) (todo.Task, error) {
	body := struct {
		Title     string `json:"title"`
		UserID    int    `json:"userId"`
		Completed bool   `json:"completed"`
	}{
		Title:     t.Title,
		UserID:    c.userID,
		Completed: t.Completed,
	}

	var created todo.Task
	if err := c.do(ctx, http.MethodPost, "/todos", nil, body, &created); err != nil {
		return todo.Task{}, err
	}
	return created, nil
}

// UpdateTodo implements Service.
func (c *Client) UpdateTodo(ctx context.Context, t todo.Task) (todo.Task, error) {
	var updated todo.Task
	if err := c.do(ctx, http.MethodPatch, todoPath(t.ID), nil, t, &updated); err != nil {
		return todo.Task{}, err
	}
	return updated, nil
}

// DeleteTodo implements Service.
func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, nil, nil)
}

func todoPath(id int) string {
	return "/todos/" + strconv.Itoa(id)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
