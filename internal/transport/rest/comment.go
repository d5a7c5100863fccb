package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/internal/service/comment"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

type commentService interface {
	Create(ctx context.Context, input comment.WriteInput) (*domain.Comment, error)
	Get(ctx context.Context, id int64) (*domain.Comment, error)
	List(ctx context.Context, input comment.ListInput) ([]domain.Comment, error)
	ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error)
	Update(ctx context.Context, id int64, input comment.WriteInput) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) (*domain.Comment, error)
}

// CommentHandler serves the comment service endpoints.
type CommentHandler struct {
	svc commentService
	log *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(svc commentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: logger.With("handler", "comment")}
}

// Create handles POST /comments/.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req todoapi.CreateComment
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), comment.WriteInput{
		Content: req.Content,
		TaskID:  req.TaskID,
		UserID:  req.UserID,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toComment(c))
}

// List handles GET /comments/?skip=&limit=.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	comments, err := h.svc.List(r.Context(), comment.ListInput{Skip: skip, Limit: limit})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeComments(w, comments)
}

// Get handles GET /comments/{id}.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toComment(c))
}

// Update handles PUT /comments/{id}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req todoapi.CreateComment
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, comment.WriteInput{Content: req.Content, TaskID: req.TaskID})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toComment(c))
}

// Delete handles DELETE /comments/{id} and answers with the removed comment.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toComment(c))
}

// ListByTask handles GET /tasks/{task_id}/comments.
func (h *CommentHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.ListByTask(r.Context(), r.PathValue("task_id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeComments(w, comments)
}

func writeComments(w http.ResponseWriter, comments []domain.Comment) {
	out := make([]todoapi.Comment, len(comments))
	for i := range comments {
		out[i] = toComment(&comments[i])
	}
	writeJSON(w, http.StatusOK, out)
}
