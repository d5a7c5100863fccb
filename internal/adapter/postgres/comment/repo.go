// Package comment implements the Comment repository using PostgreSQL.
// The comment store holds task ids by value only.
package comment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/todolist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/todolist-backend/internal/domain"
)

const returning = ` RETURNING id, content, task_id, user_id, created_at, updated_at`

const selectComment = `SELECT id, content, task_id, user_id, created_at, updated_at FROM comments`

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a comment; the id is assigned by the database.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanComment(q.QueryRow(ctx,
		`INSERT INTO comments (content, task_id, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)`+returning,
		c.Content, c.TaskID, c.UserID, c.CreatedAt))
	if err != nil {
		return nil, postgres.MapError(err, "comment", c.TaskID)
	}
	return created, nil
}

// GetByID returns a comment by id.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanComment(q.QueryRow(ctx, selectComment+` WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	return c, nil
}

// List returns comments ordered by id.
func (r *Repo) List(ctx context.Context, skip, limit int) ([]domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, selectComment+` ORDER BY id OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, postgres.MapError(err, "comment", "list")
	}
	return collect(rows, "list")
}

// ListByTask returns all comments of a task ordered by id.
func (r *Repo) ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, selectComment+` WHERE task_id = $1 ORDER BY id`, taskID)
	if err != nil {
		return nil, postgres.MapError(err, "comment", taskID)
	}
	return collect(rows, taskID)
}

// Update replaces content and task reference.
func (r *Repo) Update(ctx context.Context, id int64, content, taskID string, now time.Time) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanComment(q.QueryRow(ctx,
		`UPDATE comments SET content = $2, task_id = $3, updated_at = $4 WHERE id = $1`+returning,
		id, content, taskID, now))
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	return c, nil
}

// Delete removes a comment and returns the deleted row.
func (r *Repo) Delete(ctx context.Context, id int64) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanComment(q.QueryRow(ctx, `DELETE FROM comments WHERE id = $1`+returning, id))
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	return c, nil
}

func collect(rows pgx.Rows, key any) ([]domain.Comment, error) {
	comments, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Comment])
	if err != nil {
		return nil, postgres.MapError(err, "comment", key)
	}
	return comments, nil
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	if err := row.Scan(&c.ID, &c.Content, &c.TaskID, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
