// Package task implements the Task repository using PostgreSQL.
package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/todolist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/todolist-backend/internal/domain"
)

var columns = []string{"id", "user_id", "title", "description", "created_at", "updated_at", "due_date", "completed"}

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new task. Category links are written separately with
// SetCategories.
func (r *Repo) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO tasks (id, user_id, title, description, created_at, updated_at, due_date, completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+strings.Join(columns, ", "),
		t.ID, t.UserID, t.Title, t.Description, t.CreatedAt, t.UpdatedAt, t.DueDate, t.Completed,
	)

	created, err := scanTask(row)
	if err != nil {
		return nil, postgres.MapError(err, "task", t.ID)
	}
	return created, nil
}

// GetByID returns a task by primary key without its categories.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+strings.Join(columns, ", ")+` FROM tasks WHERE id = $1`, id)

	t, err := scanTask(row)
	if err != nil {
		return nil, postgres.MapError(err, "task", id)
	}
	return t, nil
}

// List returns tasks matching the filter, newest first.
// A zero Limit returns every match.
func (r *Repo) List(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error) {
	query, args, err := buildListQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build task list query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "task", "list")
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, postgres.MapError(err, "task", "list")
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "task", "list")
	}

	return tasks, nil
}

// ListIDs returns only the ids of matching tasks. Used for sweep candidates.
func (r *Repo) ListIDs(ctx context.Context, f domain.TaskFilter) ([]string, error) {
	sb := applyFilter(postgres.Builder().Select("t.id").From("tasks t"), f)

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build task id query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "task", "ids")
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, postgres.MapError(err, "task", "ids")
	}
	return ids, nil
}

// Update applies a partial update and returns the new row.
// An empty update only returns the current row.
func (r *Repo) Update(ctx context.Context, id string, p domain.TaskUpdateParams, now time.Time) (*domain.Task, error) {
	if p.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	ub := postgres.Builder().Update("tasks").
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if p.Title != nil {
		ub = ub.Set("title", *p.Title)
	}
	if p.Description != nil {
		ub = ub.Set("description", *p.Description)
	}
	switch {
	case p.ClearDueDate:
		ub = ub.Set("due_date", nil)
	case p.DueDate != nil:
		ub = ub.Set("due_date", *p.DueDate)
	}
	if p.Completed != nil {
		ub = ub.Set("completed", *p.Completed)
	}

	query, args, err := ub.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build task update: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	t, err := scanTask(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "task", id)
	}
	return t, nil
}

// Touch bumps updated_at. Used when only the category set changed.
func (r *Repo) Touch(ctx context.Context, id string, now time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `UPDATE tasks SET updated_at = $2 WHERE id = $1`, id, now)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a task and its category links.
// Returns domain.ErrNotFound when nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SetCategories replaces the category set of a task.
func (r *Repo) SetCategories(ctx context.Context, taskID string, categoryIDs []string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `DELETE FROM task_categories WHERE task_id = $1`, taskID); err != nil {
		return postgres.MapError(err, "task_categories", taskID)
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	ib := postgres.Builder().Insert("task_categories").
		Columns("task_id", "category_id").
		Suffix("ON CONFLICT (task_id, category_id) DO NOTHING")
	for _, cid := range categoryIDs {
		ib = ib.Values(taskID, cid)
	}

	query, args, err := ib.ToSql()
	if err != nil {
		return fmt.Errorf("build task_categories insert: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "task_categories", taskID)
	}
	return nil
}

func buildListQuery(f domain.TaskFilter) (string, []any, error) {
	sb := postgres.Builder().
		Select(qualified("t", columns)...).
		From("tasks t").
		OrderBy("t.created_at DESC", "t.id")

	sb = applyFilter(sb, f)

	if f.Limit > 0 {
		sb = sb.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		sb = sb.Offset(uint64(f.Offset))
	}

	return sb.ToSql()
}

func applyFilter(sb squirrel.SelectBuilder, f domain.TaskFilter) squirrel.SelectBuilder {
	if f.UserID != nil {
		sb = sb.Where(squirrel.Eq{"t.user_id": *f.UserID})
	}
	if f.Completed != nil {
		sb = sb.Where(squirrel.Eq{"t.completed": *f.Completed})
	}
	if f.DueBefore != nil {
		sb = sb.Where(squirrel.And{
			squirrel.NotEq{"t.due_date": nil},
			squirrel.Lt{"t.due_date": *f.DueBefore},
		})
	}
	if f.Category != nil {
		sb = sb.Where(squirrel.Expr(
			`EXISTS (SELECT 1 FROM task_categories tc JOIN categories c ON c.id = tc.category_id
			 WHERE tc.task_id = t.id AND c.name = ?)`, *f.Category))
	}
	if f.Search != nil && *f.Search != "" {
		pattern := "%" + escapeLike(*f.Search) + "%"
		sb = sb.Where(squirrel.Or{
			squirrel.ILike{"t.title": pattern},
			squirrel.ILike{"t.description": pattern},
		})
	}
	return sb
}

func qualified(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.CreatedAt, &t.UpdatedAt, &t.DueDate, &t.Completed); err != nil {
		return nil, err
	}
	return &t, nil
}
