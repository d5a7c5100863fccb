package comment

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/todolist-backend/internal/domain"
)

// MaxContentLength bounds comment content in runes.
const MaxContentLength = 10000

// Default and maximum page sizes of the comment list.
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// WriteInput is the payload of create and update. UserID is honoured only
// for staff callers.
type WriteInput struct {
	Content string
	TaskID  string
	UserID  *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i WriteInput) Validate() error {
	var errs []domain.FieldError

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 10000 characters"})
	}
	if strings.TrimSpace(i.TaskID) == "" {
		errs = append(errs, domain.FieldError{Field: "task_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput is the pagination of the comment list.
type ListInput struct {
	Skip  int
	Limit int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Skip < 0 {
		errs = append(errs, domain.FieldError{Field: "skip", Message: "must be non-negative"})
	}
	if i.Limit < 0 || i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 1000"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
