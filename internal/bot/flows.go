package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/adapter/taskapi"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

const skip = "-"

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

func (b *Bot) showTasks(ctx context.Context, s *Session) (string, error) {
	var tasks []todoapi.Task
	err := b.asUser(ctx, s, func(token string) error {
		var err error
		tasks, err = b.tasks.ListTasks(ctx, token, taskapi.TaskQuery{})
		return err
	})
	if err != nil {
		return "", err
	}

	s.tasks = tasks
	if len(tasks) == 0 {
		return join(b.t(s, "no_tasks"), b.toMain(s)), nil
	}

	lines := []string{b.t(s, "my_tasks")}
	for i, t := range tasks {
		lines = append(lines, b.t(s, "task_line", i+1, t.Title, b.t(s, "stage_"+t.Stage)))
	}
	s.State = StateTasks
	return join(strings.Join(lines, "\n"), b.t(s, "tasks_hint")), nil
}

func (b *Bot) onTasks(ctx context.Context, s *Session, text string) (string, error) {
	if text == "0" {
		return b.toMain(s), nil
	}
	n, ok := choice(text, len(s.tasks))
	if !ok {
		return join(b.t(s, "unknown_choice"), b.t(s, "tasks_hint")), nil
	}
	return b.showTask(ctx, s, s.tasks[n-1].ID)
}

func (b *Bot) showTask(ctx context.Context, s *Session, id string) (string, error) {
	var task *todoapi.Task
	err := b.asUser(ctx, s, func(token string) error {
		var err error
		task, err = b.tasks.GetTask(ctx, token, id)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return b.taskGone(ctx, s)
	}
	if err != nil {
		return "", err
	}

	s.taskID = task.ID
	s.State = StateTaskDetails
	return join(b.renderTask(s, task), b.t(s, "task_menu")), nil
}

func (b *Bot) renderTask(s *Session, t *todoapi.Task) string {
	none := b.t(s, "none")

	description := t.Description
	if description == "" {
		description = none
	}
	due := none
	if t.DueDate != nil {
		due = t.DueDate.Format(time.DateOnly)
	}
	categories := none
	if len(t.Categories) > 0 {
		names := make([]string, len(t.Categories))
		for i, c := range t.Categories {
			names[i] = c.Name
		}
		categories = strings.Join(names, ", ")
	}

	return b.t(s, "task_details", t.Title, description, due, b.t(s, "stage_"+t.Stage), categories)
}

// taskGone reports a task removed behind the user's back and reopens the list.
func (b *Bot) taskGone(ctx context.Context, s *Session) (string, error) {
	s.taskID = ""
	list, err := b.showTasks(ctx, s)
	if err != nil {
		return "", err
	}
	return join(b.t(s, "task_not_found"), list), nil
}

func (b *Bot) onTaskDetails(ctx context.Context, s *Session, text string) (string, error) {
	switch text {
	case "0":
		return b.showTasks(ctx, s)
	case "1":
		s.resetDraft()
		s.State = StateUpdateTitle
		return b.t(s, "update_task_title"), nil
	case "2":
		return b.completeTask(ctx, s)
	case "3":
		return b.completeAndDelete(ctx, s)
	case "4":
		return b.showComments(ctx, s)
	}
	return join(b.t(s, "unknown_choice"), b.t(s, "task_menu")), nil
}

func (b *Bot) completeTask(ctx context.Context, s *Session) (string, error) {
	done := true
	err := b.asUser(ctx, s, func(token string) error {
		_, err := b.tasks.UpdateTask(ctx, token, s.taskID, todoapi.UpdateTask{Completed: &done})
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return b.taskGone(ctx, s)
	}
	if err != nil {
		return "", err
	}

	details, err := b.showTask(ctx, s, s.taskID)
	if err != nil {
		return "", err
	}
	return join(b.t(s, "task_completed"), details), nil
}

// completeAndDelete marks the task completed, removes its comments and then
// the task itself. The task stays when any comment cannot be removed.
func (b *Bot) completeAndDelete(ctx context.Context, s *Session) (string, error) {
	id := s.taskID
	done := true

	err := b.asUser(ctx, s, func(token string) error {
		if _, err := b.tasks.UpdateTask(ctx, token, id, todoapi.UpdateTask{Completed: &done}); err != nil {
			return err
		}
		comments, err := b.comments.ListByTask(ctx, token, id)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("list comments: %w", err)
		}
		for _, c := range comments {
			if err := b.comments.Delete(ctx, token, c.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("delete comment %d: %w", c.ID, err)
			}
		}
		if err := b.tasks.DeleteTask(ctx, token, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return b.taskGone(ctx, s)
	}
	if err != nil {
		return "", err
	}

	s.taskID = ""
	list, err := b.showTasks(ctx, s)
	if err != nil {
		return "", err
	}
	return join(b.t(s, "task_deleted"), list), nil
}

// ---------------------------------------------------------------------------
// Create and update flows
// ---------------------------------------------------------------------------

func (b *Bot) onCreateTask(ctx context.Context, s *Session, text string) (string, error) {
	switch s.State {
	case StateCreateTitle:
		if text == "" || text == skip {
			return join(b.t(s, "title_required"), b.t(s, "enter_task_name")), nil
		}
		s.draft.title = &text
		s.State = StateCreateDescription
		return b.t(s, "enter_task_description"), nil

	case StateCreateDescription:
		if text != skip {
			s.draft.description = &text
		}
		s.State = StateCreateDueDate
		return b.t(s, "enter_task_due_date"), nil

	case StateCreateDueDate:
		if text != skip {
			due, err := time.Parse(time.DateOnly, text)
			if err != nil {
				return join(b.t(s, "invalid_due_date"), b.t(s, "enter_task_due_date")), nil
			}
			s.draft.dueDate = &due
		}
		s.State = StateCreateCategories
		return b.t(s, "enter_task_categories"), nil
	}

	in := todoapi.CreateTask{
		Title:      *s.draft.title,
		DueDate:    s.draft.dueDate,
		Categories: parseCategories(text),
	}
	if s.draft.description != nil {
		in.Description = *s.draft.description
	}
	s.resetDraft()

	err := b.asUser(ctx, s, func(token string) error {
		_, err := b.tasks.CreateTask(ctx, token, in)
		return err
	})
	if errors.Is(err, domain.ErrValidation) {
		return join(b.t(s, "error_creating_task"), b.toMain(s)), nil
	}
	if err != nil {
		return "", err
	}
	return join(b.t(s, "task_created"), b.toMain(s)), nil
}

func parseCategories(text string) []todoapi.CategoryRef {
	if text == skip {
		return nil
	}
	var refs []todoapi.CategoryRef
	seen := make(map[string]bool)
	for _, part := range strings.Split(text, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, todoapi.CategoryRef{Name: name})
	}
	return refs
}

func (b *Bot) onUpdateTask(ctx context.Context, s *Session, text string) (string, error) {
	if s.State == StateUpdateTitle {
		if text != skip && text != "" {
			s.draft.title = &text
		}
		s.State = StateUpdateDescription
		return b.t(s, "update_task_description"), nil
	}

	if text != skip {
		s.draft.description = &text
	}
	in := todoapi.UpdateTask{Title: s.draft.title, Description: s.draft.description}
	s.resetDraft()

	if in.Title != nil || in.Description != nil {
		err := b.asUser(ctx, s, func(token string) error {
			_, err := b.tasks.UpdateTask(ctx, token, s.taskID, in)
			return err
		})
		if errors.Is(err, domain.ErrNotFound) {
			return b.taskGone(ctx, s)
		}
		if err != nil {
			return "", err
		}
	}

	details, err := b.showTask(ctx, s, s.taskID)
	if err != nil {
		return "", err
	}
	return join(b.t(s, "task_updated"), details), nil
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

func (b *Bot) showComments(ctx context.Context, s *Session) (string, error) {
	var comments []todoapi.Comment
	err := b.asUser(ctx, s, func(token string) error {
		var err error
		comments, err = b.comments.ListByTask(ctx, token, s.taskID)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return b.taskGone(ctx, s)
	}
	if err != nil {
		return "", err
	}

	s.comments = comments
	s.State = StateComments
	if len(comments) == 0 {
		return join(b.t(s, "no_comments"), b.t(s, "comments_menu")), nil
	}

	lines := []string{b.t(s, "comments")}
	for i, c := range comments {
		lines = append(lines, b.t(s, "comment_line", i+1, c.Content))
	}
	return join(strings.Join(lines, "\n"), b.t(s, "comments_menu")), nil
}

func (b *Bot) onComments(ctx context.Context, s *Session, text string) (string, error) {
	switch text {
	case "0":
		return b.showTask(ctx, s, s.taskID)
	case "1":
		s.State = StateCreateComment
		return b.t(s, "enter_comment_text"), nil
	case "2":
		if len(s.comments) == 0 {
			return join(b.t(s, "no_comments"), b.t(s, "comments_menu")), nil
		}
		s.State = StateDeleteComment
		return b.t(s, "enter_comment_number"), nil
	}
	return join(b.t(s, "unknown_choice"), b.t(s, "comments_menu")), nil
}

func (b *Bot) onCreateComment(ctx context.Context, s *Session, text string) (string, error) {
	if text == "" {
		return b.t(s, "enter_comment_text"), nil
	}

	err := b.asUser(ctx, s, func(token string) error {
		_, err := b.comments.Create(ctx, token, todoapi.CreateComment{Content: text, TaskID: s.taskID})
		return err
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return b.taskGone(ctx, s)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnavailable):
		list, lerr := b.showComments(ctx, s)
		if lerr != nil {
			return "", lerr
		}
		return join(b.t(s, "error_creating_comment"), list), nil
	case err != nil:
		return "", err
	}

	list, err := b.showComments(ctx, s)
	if err != nil {
		return "", err
	}
	return join(b.t(s, "comment_created"), list), nil
}

func (b *Bot) onDeleteComment(ctx context.Context, s *Session, text string) (string, error) {
	if text == "0" {
		return b.showComments(ctx, s)
	}
	n, ok := choice(text, len(s.comments))
	if !ok {
		return join(b.t(s, "unknown_choice"), b.t(s, "enter_comment_number")), nil
	}

	id := s.comments[n-1].ID
	err := b.asUser(ctx, s, func(token string) error {
		return b.comments.Delete(ctx, token, id)
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		if errors.Is(err, domain.ErrForbidden) {
			list, lerr := b.showComments(ctx, s)
			if lerr != nil {
				return "", lerr
			}
			return join(b.t(s, "error_deleting_comment"), list), nil
		}
		return "", err
	}

	list, err := b.showComments(ctx, s)
	if err != nil {
		return "", err
	}
	return join(b.t(s, "comment_deleted"), list), nil
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

func (b *Bot) showCategories(ctx context.Context, s *Session) (string, error) {
	var categories []todoapi.Category
	err := b.asUser(ctx, s, func(token string) error {
		var err error
		categories, err = b.tasks.ListCategories(ctx, token)
		return err
	})
	if err != nil {
		return "", err
	}

	s.categories = categories
	s.State = StateCategories
	if len(categories) == 0 {
		return join(b.t(s, "no_categories"), b.t(s, "categories_menu")), nil
	}

	lines := []string{b.t(s, "categories")}
	for i, c := range categories {
		lines = append(lines, b.t(s, "category_line", i+1, c.Name))
	}
	return join(strings.Join(lines, "\n"), b.t(s, "categories_menu")), nil
}

func (b *Bot) onCategories(ctx context.Context, s *Session, text string) (string, error) {
	switch text {
	case "0":
		return b.toMain(s), nil
	case "1":
		s.State = StateCreateCategory
		return b.t(s, "enter_category_name"), nil
	case "2":
		if len(s.categories) == 0 {
			return join(b.t(s, "no_categories"), b.t(s, "categories_menu")), nil
		}
		s.State = StateDeleteCategory
		return b.t(s, "enter_category_number"), nil
	}
	return join(b.t(s, "unknown_choice"), b.t(s, "categories_menu")), nil
}

func (b *Bot) onCreateCategory(ctx context.Context, s *Session, text string) (string, error) {
	if text == "" {
		return b.t(s, "enter_category_name"), nil
	}

	err := b.asUser(ctx, s, func(token string) error {
		_, err := b.tasks.CreateCategory(ctx, token, text)
		return err
	})

	var note string
	switch {
	case err == nil:
		note = b.t(s, "category_created")
	case errors.Is(err, domain.ErrAlreadyExists):
		note = b.t(s, "category_exists")
	case errors.Is(err, domain.ErrValidation):
		note = b.t(s, "error_creating_category")
	default:
		return "", err
	}

	list, err := b.showCategories(ctx, s)
	if err != nil {
		return "", err
	}
	return join(note, list), nil
}

func (b *Bot) onDeleteCategory(ctx context.Context, s *Session, text string) (string, error) {
	if text == "0" {
		return b.showCategories(ctx, s)
	}
	n, ok := choice(text, len(s.categories))
	if !ok {
		return join(b.t(s, "unknown_choice"), b.t(s, "enter_category_number")), nil
	}

	id := s.categories[n-1].ID
	err := b.asUser(ctx, s, func(token string) error {
		return b.tasks.DeleteCategory(ctx, token, id)
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	list, err := b.showCategories(ctx, s)
	if err != nil {
		return "", err
	}
	return join(b.t(s, "category_deleted"), list), nil
}
