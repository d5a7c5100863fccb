// Package taskapi is the HTTP client of the task service REST API.
package taskapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/adapter/apiclient"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

// Client talks to the task service. baseURL includes the /api prefix.
type Client struct {
	api *apiclient.Client
	log *slog.Logger
}

// New creates a Client. timeout bounds each HTTP call.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		api: apiclient.New("taskapi", baseURL, timeout, logger),
		log: logger.With("adapter", "taskapi"),
	}
}

// Ping reports whether the task service answers its liveness endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.api.Ping(ctx)
}

// Login exchanges credentials for a token pair.
// Rejected credentials wrap domain.ErrUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string) (*todoapi.Tokens, error) {
	var out todoapi.Tokens
	err := c.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/token/",
		Body:   todoapi.Credentials{Username: username, Password: password},
	}, &out)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusBadRequest) {
			return nil, fmt.Errorf("taskapi: login: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("taskapi: login: %w", err)
	}
	return &out, nil
}

// Refresh rotates a refresh token.
func (c *Client) Refresh(ctx context.Context, refresh string) (*todoapi.Tokens, error) {
	var out todoapi.Tokens
	err := c.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/token/refresh/",
		Body:   todoapi.RefreshRequest{Refresh: refresh},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("taskapi: refresh: %w", err)
	}
	return &out, nil
}

// TaskExists asks whether taskID is visible to the token's identity.
// Any 2xx means it exists; any other status, 404 included, means it does not.
// Only transport failures return an error, wrapping domain.ErrUnavailable.
func (c *Client) TaskExists(ctx context.Context, token, taskID string) (domain.Existence, error) {
	status, err := c.api.Status(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/tasks/" + url.PathEscape(taskID) + "/",
		Token:  token,
	})
	if err != nil {
		return domain.ExistenceNo, err
	}
	if status >= 200 && status <= 299 {
		return domain.ExistenceYes, nil
	}
	if status != http.StatusNotFound {
		c.log.WarnContext(ctx, "existence check got non-2xx",
			slog.String("task_id", taskID), slog.Int("status", status))
	}
	return domain.ExistenceNo, nil
}

// TaskQuery holds the list filters of GET /tasks/.
type TaskQuery struct {
	Completed *bool
	Category  string
	Search    string
	Limit     int
	Offset    int
}

func (q TaskQuery) encode() string {
	v := url.Values{}
	if q.Completed != nil {
		v.Set("completed", strconv.FormatBool(*q.Completed))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *Client) ListTasks(ctx context.Context, token string, q TaskQuery) ([]todoapi.Task, error) {
	var out []todoapi.Task
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/tasks/" + q.encode(), Token: token}, &out); err != nil {
		return nil, fmt.Errorf("taskapi: list tasks: %w", err)
	}
	return out, nil
}

func (c *Client) GetTask(ctx context.Context, token, id string) (*todoapi.Task, error) {
	var out todoapi.Task
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: taskPath(id), Token: token}, &out); err != nil {
		return nil, fmt.Errorf("taskapi: get task: %w", err)
	}
	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, token string, in todoapi.CreateTask) (*todoapi.Task, error) {
	var out todoapi.Task
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/tasks/", Token: token, Body: in}, &out); err != nil {
		return nil, fmt.Errorf("taskapi: create task: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, token, id string, in todoapi.UpdateTask) (*todoapi.Task, error) {
	var out todoapi.Task
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodPatch, Path: taskPath(id), Token: token, Body: in}, &out); err != nil {
		return nil, fmt.Errorf("taskapi: update task: %w", err)
	}
	return &out, nil
}

// DeleteTask deletes a task. A missing task wraps domain.ErrNotFound.
func (c *Client) DeleteTask(ctx context.Context, token, id string) error {
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: taskPath(id), Token: token}, nil); err != nil {
		return fmt.Errorf("taskapi: delete task: %w", err)
	}
	return nil
}

func (c *Client) ListCategories(ctx context.Context, token string) ([]todoapi.Category, error) {
	var out []todoapi.Category
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/categories/", Token: token}, &out); err != nil {
		return nil, fmt.Errorf("taskapi: list categories: %w", err)
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, token, name string) (*todoapi.Category, error) {
	var out todoapi.Category
	err := c.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/categories/",
		Token:  token,
		Body:   todoapi.CreateCategory{Name: name},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("taskapi: create category: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	err := c.api.Do(ctx, apiclient.Request{
		Method: http.MethodDelete,
		Path:   "/categories/" + url.PathEscape(id) + "/",
		Token:  token,
	}, nil)
	if err != nil {
		return fmt.Errorf("taskapi: delete category: %w", err)
	}
	return nil
}

// CreateUser provisions a user. Requires a staff token.
func (c *Client) CreateUser(ctx context.Context, staffToken string, in todoapi.CreateUser) (*todoapi.User, error) {
	var out todoapi.User
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/users/", Token: staffToken, Body: in}, &out); err != nil {
		return nil, fmt.Errorf("taskapi: create user: %w", err)
	}
	return &out, nil
}

// PublicInfo looks a user up by chat id. Returns (nil, nil) when absent.
func (c *Client) PublicInfo(ctx context.Context, staffToken string, telegramID int64) (*todoapi.PublicInfo, error) {
	var out todoapi.PublicInfo
	err := c.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: userPath(telegramID, "public_info"), Token: staffToken}, &out)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("taskapi: public info: %w", err)
	}
	return &out, nil
}

// GetLocale returns the chat's language or "" when none is stored.
func (c *Client) GetLocale(ctx context.Context, staffToken string, telegramID int64) (string, error) {
	var out todoapi.Locale
	err := c.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: userPath(telegramID, "locale"), Token: staffToken}, &out)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("taskapi: get locale: %w", err)
	}
	return out.Locale, nil
}

func (c *Client) SetLocale(ctx context.Context, staffToken string, telegramID int64, locale string) error {
	err := c.api.Do(ctx, apiclient.Request{
		Method: http.MethodPut,
		Path:   userPath(telegramID, "locale"),
		Token:  staffToken,
		Body:   todoapi.Locale{Locale: locale},
	}, nil)
	if err != nil {
		return fmt.Errorf("taskapi: set locale: %w", err)
	}
	return nil
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id) + "/"
}

func userPath(telegramID int64, leaf string) string {
	return "/users/" + strconv.FormatInt(telegramID, 10) + "/" + leaf + "/"
}
