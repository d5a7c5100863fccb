// Package category implements the Category repository using PostgreSQL.
package category

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/todolist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/todolist-backend/internal/domain"
)

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a category. A taken name yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)
		 RETURNING id, name, created_at`,
		c.ID, c.Name, c.CreatedAt)

	created, err := scanCategory(row)
	if err != nil {
		return nil, postgres.MapError(err, "category", c.Name)
	}
	return created, nil
}

// GetOrCreate returns the category named c.Name, inserting c when absent.
// Concurrent callers racing on the same name all get the single stored row.
func (r *Repo) GetOrCreate(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	// The no-op update makes RETURNING yield the existing row on conflict.
	row := q.QueryRow(ctx,
		`INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name, created_at`,
		c.ID, c.Name, c.CreatedAt)

	got, err := scanCategory(row)
	if err != nil {
		return nil, postgres.MapError(err, "category", c.Name)
	}
	return got, nil
}

// GetByID returns a category by primary key.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCategory(q.QueryRow(ctx,
		`SELECT id, name, created_at FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "category", id)
	}
	return c, nil
}

// List returns all categories ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, postgres.MapError(err, "category", "list")
	}

	cats, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Category])
	if err != nil {
		return nil, postgres.MapError(err, "category", "list")
	}
	return cats, nil
}

// Rename changes the category name.
func (r *Repo) Rename(ctx context.Context, id, name string) (*domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCategory(q.QueryRow(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1 RETURNING id, name, created_at`, id, name))
	if err != nil {
		return nil, postgres.MapError(err, "category", id)
	}
	return c, nil
}

// Delete removes a category and detaches it from all tasks.
func (r *Repo) Delete(ctx context.Context, id string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "category", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByTaskIDs returns the categories of each given task, keyed by task id.
// Tasks without categories are absent from the map.
func (r *Repo) ListByTaskIDs(ctx context.Context, taskIDs []string) (map[string][]domain.Category, error) {
	result := make(map[string][]domain.Category, len(taskIDs))
	if len(taskIDs) == 0 {
		return result, nil
	}

	query, args, err := postgres.Builder().
		Select("tc.task_id", "c.id", "c.name", "c.created_at").
		From("task_categories tc").
		Join("categories c ON c.id = tc.category_id").
		Where(squirrel.Eq{"tc.task_id": taskIDs}).
		OrderBy("c.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categories by task query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "category", "by_task")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			taskID string
			c      domain.Category
		)
		if err := rows.Scan(&taskID, &c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, postgres.MapError(err, "category", "by_task")
		}
		result[taskID] = append(result[taskID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "category", "by_task")
	}

	return result, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
