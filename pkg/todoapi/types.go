// Package todoapi holds the JSON wire types of the task and comment services.
// Servers and clients both use them so the contract lives in one place.
package todoapi

import (
	"time"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Credentials is the body of the token endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body of the token refresh endpoint.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// Tokens is returned by the token endpoints.
type Tokens struct {
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	UserID  uuid.UUID `json:"user_id"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryRef names a category in task payloads; resolved get-or-create.
type CategoryRef struct {
	Name string `json:"name"`
}

type Task struct {
	ID          string     `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
	Stage       string     `json:"stage"`
	Categories  []Category `json:"categories"`
}

// CreateTask is the body of POST /tasks/.
type CreateTask struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	DueDate     *time.Time    `json:"due_date"`
	Completed   bool          `json:"completed"`
	Categories  []CategoryRef `json:"categories"`
}

// UpdateTask is the body of PUT/PATCH /tasks/{id}/. Absent fields are kept.
// A present null due_date clears it; see Nullable.
type UpdateTask struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	DueDate     Nullable[time.Time] `json:"due_date,omitzero"`
	Completed   *bool               `json:"completed,omitempty"`
	Categories  *[]CategoryRef      `json:"categories,omitempty"`
}

// CreateCategory is the body of POST /categories/ and PUT /categories/{id}/.
type CreateCategory struct {
	Name string `json:"name"`
}

// CreateUser is the body of POST /users/.
type CreateUser struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	TelegramID *int64 `json:"telegram_id,omitempty"`
	IsStaff    bool   `json:"is_staff,omitempty"`
}

type User struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	TelegramID *int64    `json:"telegram_id,omitempty"`
	IsStaff    bool      `json:"is_staff"`
}

// PublicInfo is the response of GET /users/{telegram_id}/public_info/.
type PublicInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type Locale struct {
	Locale string `json:"locale"`
}

type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	TaskID    string    `json:"task_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateComment is the body of POST /comments/ and PUT /comments/{id}.
// UserID is honoured only for staff callers; others always author as themselves.
type CreateComment struct {
	Content string     `json:"content"`
	TaskID  string     `json:"task_id"`
	UserID  *uuid.UUID `json:"user_id,omitempty"`
}
