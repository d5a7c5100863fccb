package rest

import (
	"time"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

func toTask(t *domain.Task, now time.Time) todoapi.Task {
	cats := make([]todoapi.Category, len(t.Categories))
	for i := range t.Categories {
		cats[i] = toCategory(&t.Categories[i])
	}
	return todoapi.Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		Stage:       t.Stage(now).String(),
		Categories:  cats,
	}
}

func toCategory(c *domain.Category) todoapi.Category {
	return todoapi.Category{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toUser(u *domain.User) todoapi.User {
	return todoapi.User{
		ID:         u.ID,
		Username:   u.Username,
		TelegramID: u.TelegramID,
		IsStaff:    u.IsStaff || u.IsSuperuser,
	}
}

func toComment(c *domain.Comment) todoapi.Comment {
	return todoapi.Comment{
		ID:        c.ID,
		Content:   c.Content,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func categoryNames(refs []todoapi.CategoryRef) []string {
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name
	}
	return names
}
