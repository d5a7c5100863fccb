package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/todolist-backend/internal/domain"
)

// SQLSTATE codes that map onto domain errors.
var pgCodeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation
	"22001": domain.ErrValidation,    // string_data_right_truncation
	"40001": domain.ErrConflict,      // serialization_failure
}

// MapError converts pgx errors into domain errors prefixed with the entity
// and its key (a uuid, an opaque task id or a comment serial). Context
// cancellation and unknown errors keep their original chain.
func MapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	cause := err
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
	case errors.Is(err, pgx.ErrNoRows):
		cause = domain.ErrNotFound
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if mapped, ok := pgCodeErrors[pgErr.Code]; ok {
				cause = mapped
			}
		}
	}
	return fmt.Errorf("%s %v: %w", entity, id, cause)
}
