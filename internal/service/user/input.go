package user

import (
	"strings"

	"github.com/heartmarshall/todolist-backend/internal/auth"
	"github.com/heartmarshall/todolist-backend/internal/domain"
)

// CreateUserInput holds the parameters for provisioning a user.
type CreateUserInput struct {
	Username   string
	Password   string
	TelegramID *int64
	IsStaff    bool
}

// Validate checks all fields and collects all errors.
func (i CreateUserInput) Validate() error {
	var errs []domain.FieldError

	username := strings.TrimSpace(i.Username)
	switch {
	case username == "":
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	case len(username) > 150:
		errs = append(errs, domain.FieldError{Field: "username", Message: "max 150 characters"})
	case strings.ContainsAny(username, " \t\n"):
		errs = append(errs, domain.FieldError{Field: "username", Message: "must not contain spaces"})
	}

	switch {
	case len(i.Password) < 8:
		errs = append(errs, domain.FieldError{Field: "password", Message: "min 8 characters"})
	case len(i.Password) > auth.MaxPasswordBytes:
		errs = append(errs, domain.FieldError{Field: "password", Message: "max 72 bytes"})
	}

	if i.TelegramID != nil && *i.TelegramID == 0 {
		errs = append(errs, domain.FieldError{Field: "telegram_id", Message: "must be non-zero"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
