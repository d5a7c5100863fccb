package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/todolist-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a regular user with a placeholder password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Username:     "user-" + uniqueSuffix(),
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderpl",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, username, password_hash, is_staff, is_superuser, telegram_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Username, user.PasswordHash, user.IsStaff, user.IsSuperuser, user.TelegramID, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedTask creates a task owned by userID. Optional mutators adjust the row
// before insert.
func SeedTask(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, mutate ...func(*domain.Task)) domain.Task {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	task := domain.Task{
		ID:        "task-" + uniqueSuffix(),
		UserID:    userID,
		Title:     "Task " + uniqueSuffix(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, m := range mutate {
		m(&task)
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO tasks (id, user_id, title, description, created_at, updated_at, due_date, completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		task.ID, task.UserID, task.Title, task.Description, task.CreatedAt, task.UpdatedAt, task.DueDate, task.Completed,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTask: %v", err)
	}

	return task
}

// SeedCategory creates a category with a unique name derived from prefix.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, prefix string) domain.Category {
	t.Helper()

	cat := domain.Category{
		ID:        "cat-" + uniqueSuffix(),
		Name:      prefix + " " + uniqueSuffix(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`,
		cat.ID, cat.Name, cat.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}

	return cat
}

// LinkTaskCategory attaches a category to a task.
func LinkTaskCategory(t *testing.T, pool *pgxpool.Pool, taskID, categoryID string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO task_categories (task_id, category_id) VALUES ($1, $2)`,
		taskID, categoryID,
	)
	if err != nil {
		t.Fatalf("testhelper: LinkTaskCategory: %v", err)
	}
}

// SeedComment creates a comment against taskID.
func SeedComment(t *testing.T, pool *pgxpool.Pool, taskID string, userID uuid.UUID) domain.Comment {
	t.Helper()

	c := domain.Comment{
		Content: "comment " + uniqueSuffix(),
		TaskID:  taskID,
		UserID:  userID,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO comments (content, task_id, user_id) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Content, c.TaskID, c.UserID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedComment: %v", err)
	}

	return c
}
