package rest

import (
	"net/http"

	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

// ListCategories handles GET /api/categories/.
func (h *TaskHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListCategories(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]todoapi.Category, len(cats))
	for i := range cats {
		out[i] = toCategory(&cats[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateCategory handles POST /api/categories/.
func (h *TaskHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req todoapi.CreateCategory
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	c, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategory(c))
}

// GetCategory handles GET /api/categories/{id}/.
func (h *TaskHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategory(c))
}

// RenameCategory handles PUT and PATCH /api/categories/{id}/.
func (h *TaskHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	var req todoapi.CreateCategory
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	c, err := h.svc.RenameCategory(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategory(c))
}

// DeleteCategory handles DELETE /api/categories/{id}/.
func (h *TaskHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
