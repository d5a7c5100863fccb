package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/internal/service/task"
	"github.com/heartmarshall/todolist-backend/internal/transport/dataloader"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

type taskService interface {
	CreateTask(ctx context.Context, input task.CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, input task.ListTasksInput) ([]domain.Task, error)
	UpdateTask(ctx context.Context, input task.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	RenameCategory(ctx context.Context, id, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// TaskHandler serves task and category endpoints.
type TaskHandler struct {
	svc taskService
	log *slog.Logger
	now func() time.Time
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(svc taskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		svc: svc,
		log: logger.With("handler", "task"),
		now: time.Now,
	}
}

// ListTasks handles GET /api/tasks/.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	input, err := parseTaskQuery(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	tasks, err := h.svc.ListTasks(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := dataloader.AttachCategories(r.Context(), tasks); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	now := h.now()
	out := make([]todoapi.Task, len(tasks))
	for i := range tasks {
		if tasks[i].Categories == nil {
			tasks[i].Categories = []domain.Category{}
		}
		out[i] = toTask(&tasks[i], now)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateTask handles POST /api/tasks/.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req todoapi.CreateTask
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	t, err := h.svc.CreateTask(r.Context(), task.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
		Categories:  categoryNames(req.Categories),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTask(t, h.now()))
}

// GetTask handles GET /api/tasks/{id}/.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.GetTask(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTask(t, h.now()))
}

// UpdateTask handles PUT and PATCH /api/tasks/{id}/. Both merge the fields
// present in the body.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req todoapi.UpdateTask
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := task.UpdateTaskInput{
		ID:          r.PathValue("id"),
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.DueDate.Set {
		if req.DueDate.Null {
			input.ClearDueDate = true
		} else {
			due := req.DueDate.Value
			input.DueDate = &due
		}
	}
	if req.Categories != nil {
		names := categoryNames(*req.Categories)
		input.Categories = &names
	}

	t, err := h.svc.UpdateTask(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTask(t, h.now()))
}

// DeleteTask handles DELETE /api/tasks/{id}/.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseTaskQuery(r *http.Request) (task.ListTasksInput, error) {
	var (
		input task.ListTasksInput
		err   error
	)
	if input.Completed, err = queryBool(r, "completed"); err != nil {
		return input, err
	}
	if input.DueBefore, err = queryTime(r, "due_before"); err != nil {
		return input, err
	}
	if input.Limit, err = queryInt(r, "limit"); err != nil {
		return input, err
	}
	if input.Offset, err = queryInt(r, "offset"); err != nil {
		return input, err
	}
	q := r.URL.Query()
	if v := q.Get("category"); v != "" {
		input.Category = &v
	}
	if v := q.Get("search"); v != "" {
		input.Search = &v
	}
	return input, nil
}
