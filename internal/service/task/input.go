package task

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/todolist-backend/internal/domain"
)

// CreateTaskInput holds the parameters for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Completed   bool
	Categories  []string
}

// Validate checks all fields and collects all errors.
func (i CreateTaskInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(title) > domain.MaxTaskTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}
	errs = append(errs, validateCategoryNames(i.Categories)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateTaskInput holds a partial update. Nil fields are left unchanged.
// A non-nil Categories replaces the whole category set.
type UpdateTaskInput struct {
	ID           string
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Completed    *bool
	Categories   *[]string
}

// Validate checks all fields and collects all errors.
func (i UpdateTaskInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == "" {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Title != nil {
		title := strings.TrimSpace(*i.Title)
		if title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
		}
		if utf8.RuneCountInString(title) > domain.MaxTaskTitleLength {
			errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
		}
	}
	if i.ClearDueDate && i.DueDate != nil {
		errs = append(errs, domain.FieldError{Field: "due_date", Message: "cannot set and clear at once"})
	}
	if i.Categories != nil {
		errs = append(errs, validateCategoryNames(*i.Categories)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListTasksInput holds the caller-facing list filters.
type ListTasksInput struct {
	Completed *bool
	Category  *string
	DueBefore *time.Time
	Search    *string
	Limit     int
	Offset    int
}

// Validate checks all fields and collects all errors.
func (i ListTasksInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateCategoryName(field, name string) []domain.FieldError {
	n := domain.NormalizeName(name)
	if n == "" {
		return []domain.FieldError{{Field: field, Message: "required"}}
	}
	if utf8.RuneCountInString(n) > domain.MaxCategoryNameLength {
		return []domain.FieldError{{Field: field, Message: "max 100 characters"}}
	}
	return nil
}

func validateCategoryNames(names []string) []domain.FieldError {
	var errs []domain.FieldError
	for _, name := range names {
		errs = append(errs, validateCategoryName("categories.name", name)...)
	}
	return errs
}

// uniqueNames normalizes names and drops duplicates, keeping first occurrence.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		n := domain.NormalizeName(name)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
