// Package commentapi is the HTTP client of the comment service.
package commentapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/adapter/apiclient"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

type Client struct {
	api *apiclient.Client
}

// New creates a Client. timeout bounds each HTTP call.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{api: apiclient.New("commentapi", baseURL, timeout, logger)}
}

// ListByTask returns the comments of one task.
func (c *Client) ListByTask(ctx context.Context, token, taskID string) ([]todoapi.Comment, error) {
	var out []todoapi.Comment
	err := c.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/tasks/" + url.PathEscape(taskID) + "/comments",
		Token:  token,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("commentapi: list by task %s: %w", taskID, err)
	}
	return out, nil
}

// List returns one page of all comments visible to the token.
func (c *Client) List(ctx context.Context, token string, skip, limit int) ([]todoapi.Comment, error) {
	v := url.Values{}
	v.Set("skip", strconv.Itoa(skip))
	v.Set("limit", strconv.Itoa(limit))

	var out []todoapi.Comment
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/comments/?" + v.Encode(), Token: token}, &out); err != nil {
		return nil, fmt.Errorf("commentapi: list: %w", err)
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, token string, id int64) (*todoapi.Comment, error) {
	var out todoapi.Comment
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: commentPath(id), Token: token}, &out); err != nil {
		return nil, fmt.Errorf("commentapi: get %d: %w", id, err)
	}
	return &out, nil
}

// Create adds a comment. A missing task wraps domain.ErrNotFound.
func (c *Client) Create(ctx context.Context, token string, in todoapi.CreateComment) (*todoapi.Comment, error) {
	var out todoapi.Comment
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/comments/", Token: token, Body: in}, &out); err != nil {
		return nil, fmt.Errorf("commentapi: create: %w", err)
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, token string, id int64, in todoapi.CreateComment) (*todoapi.Comment, error) {
	var out todoapi.Comment
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodPut, Path: commentPath(id), Token: token, Body: in}, &out); err != nil {
		return nil, fmt.Errorf("commentapi: update %d: %w", id, err)
	}
	return &out, nil
}

// Delete removes one comment. A missing comment wraps domain.ErrNotFound;
// callers that treat repeats as success check for it.
func (c *Client) Delete(ctx context.Context, token string, id int64) error {
	if err := c.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: commentPath(id), Token: token}, nil); err != nil {
		return fmt.Errorf("commentapi: delete %d: %w", id, err)
	}
	return nil
}

func commentPath(id int64) string {
	return "/comments/" + strconv.FormatInt(id, 10)
}
