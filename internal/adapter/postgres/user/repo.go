// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/todolist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/todolist-backend/internal/domain"
)

const selectUser = `SELECT id, username, password_hash, is_staff, is_superuser, telegram_id, created_at, updated_at FROM users`

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, selectUser+` WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByUsername returns a user by username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, selectUser+` WHERE username = $1`, username))
	if err != nil {
		return nil, postgres.MapError(err, "user", username)
	}
	return u, nil
}

// GetByTelegramID returns the user linked to an external chat.
func (r *Repo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, selectUser+` WHERE telegram_id = $1`, telegramID))
	if err != nil {
		return nil, postgres.MapError(err, "user", telegramID)
	}
	return u, nil
}

// Create inserts a new user. A taken username or chat id yields
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO users (id, username, password_hash, is_staff, is_superuser, telegram_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, username, password_hash, is_staff, is_superuser, telegram_id, created_at, updated_at`,
		u.ID, u.Username, u.PasswordHash, u.IsStaff, u.IsSuperuser, u.TelegramID, u.CreatedAt, u.UpdatedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}
	return created, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsStaff, &u.IsSuperuser, &u.TelegramID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
