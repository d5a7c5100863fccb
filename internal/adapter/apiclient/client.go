// Package apiclient is the shared JSON-over-HTTP plumbing of the task and
// comment service clients.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/domain"
)

const maxErrorBody = 4 << 10

// Client performs JSON requests against one service base URL.
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	retryDelay time.Duration
}

// New creates a Client. timeout bounds every single HTTP call.
func New(name, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		name:       name,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", name),
		retryDelay: 500 * time.Millisecond,
	}
}

// Name returns the adapter name used in errors and logs.
func (c *Client) Name() string { return c.name }

// StatusError is a non-2xx response. It unwraps to the matching domain error.
type StatusError struct {
	Service string
	Method  string
	Path    string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s %s: status %d", e.Service, e.Method, e.Path, e.Status)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == http.StatusBadRequest, e.Status == http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case e.Status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return domain.ErrForbidden
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusConflict:
		return domain.ErrAlreadyExists
	case e.Status >= 500:
		return domain.ErrUnavailable
	}
	return nil
}

// Request describes one call.
type Request struct {
	Method string
	Path   string
	Token  string
	Body   any
	// Form sends Body as application/x-www-form-urlencoded when set.
	Form map[string]string
}

// Do executes req and decodes a 2xx JSON body into out (when out is non-nil).
// Transport failures wrap domain.ErrUnavailable. Non-2xx responses return
// *StatusError. GET and DELETE are retried once on 5xx or network errors.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	resp, err := c.send(ctx, req)
	if err != nil {
		c.log.WarnContext(ctx, "request failed",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.String("error", err.Error()))
		return fmt.Errorf("%s: %s %s: %w: %v", c.name, req.Method, req.Path, domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Service: c.name,
			Method:  req.Method,
			Path:    req.Path,
			Status:  resp.StatusCode,
			Body:    string(body),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %s %s: decode json: %w", c.name, req.Method, req.Path, err)
	}
	return nil
}

// Status performs req and returns only the response status code.
// Transport failures wrap domain.ErrUnavailable.
func (c *Client) Status(ctx context.Context, req Request) (int, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("%s: %s %s: %w: %v", c.name, req.Method, req.Path, domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return resp.StatusCode, nil
}

// Ping checks the liveness endpoint served at the root of the base URL's host.
func (c *Client) Ping(ctx context.Context) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("%s: parse base url: %w", c.name, err)
	}
	u.Path, u.RawQuery = "/live", ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", c.name, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: ping: %w: %v", c.name, domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Service: c.name, Method: http.MethodGet, Path: "/live", Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) send(ctx context.Context, req Request) (*http.Response, error) {
	build := func() (*http.Request, error) { return c.newRequest(ctx, req) }

	httpReq, err := build()
	if err != nil {
		return nil, err
	}

	c.log.DebugContext(ctx, "request", slog.String("method", req.Method), slog.String("path", req.Path))

	resp, err := c.httpClient.Do(httpReq)
	if !idempotent(req.Method) {
		return resp, err
	}

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "retry", slog.String("path", req.Path), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}

	httpReq, err = build()
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(httpReq)
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Form != nil:
		values := make(url.Values, len(req.Form))
		for k, v := range req.Form {
			values.Set(k, v)
		}
		body = strings.NewReader(values.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.Body != nil:
		buf, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", c.name, err)
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", c.name, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	return httpReq, nil
}

func idempotent(method string) bool {
	return method == http.MethodGet || method == http.MethodDelete
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == code
}
