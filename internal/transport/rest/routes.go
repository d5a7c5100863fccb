package rest

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/todolist-backend/internal/transport/middleware"
)

// TaskRoutes groups the handlers of the task service.
type TaskRoutes struct {
	Auth   *AuthHandler
	Tasks  *TaskHandler
	Users  *UserHandler
	Health *HealthHandler
	// TokenLimit guards the token endpoints; Loaders installs the
	// per-request category loaders on task listings.
	TokenLimit middleware.Middleware
	Loaders    middleware.Middleware
}

// Register mounts the task service endpoints on mux under /api.
func (rt TaskRoutes) Register(mux *http.ServeMux) {
	registerHealthRoutes(mux, rt.Health)

	limit := orPassThrough(rt.TokenLimit)
	mux.Handle("POST /api/token/{$}", limit(http.HandlerFunc(rt.Auth.Token)))
	mux.Handle("POST /api/token/refresh/{$}", limit(http.HandlerFunc(rt.Auth.Refresh)))
	mux.Handle("POST /api/token/logout/{$}", middleware.RequireAuth(http.HandlerFunc(rt.Auth.Logout)))

	authed := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }
	staff := func(h http.HandlerFunc) http.Handler { return middleware.RequireStaff(h) }
	loaders := orPassThrough(rt.Loaders)

	mux.Handle("GET /api/tasks/{$}", middleware.RequireAuth(loaders(http.HandlerFunc(rt.Tasks.ListTasks))))
	mux.Handle("POST /api/tasks/{$}", authed(rt.Tasks.CreateTask))
	mux.Handle("GET /api/tasks/{id}/{$}", authed(rt.Tasks.GetTask))
	mux.Handle("PUT /api/tasks/{id}/{$}", authed(rt.Tasks.UpdateTask))
	mux.Handle("PATCH /api/tasks/{id}/{$}", authed(rt.Tasks.UpdateTask))
	mux.Handle("DELETE /api/tasks/{id}/{$}", authed(rt.Tasks.DeleteTask))

	mux.Handle("GET /api/categories/{$}", authed(rt.Tasks.ListCategories))
	mux.Handle("POST /api/categories/{$}", authed(rt.Tasks.CreateCategory))
	mux.Handle("GET /api/categories/{id}/{$}", authed(rt.Tasks.GetCategory))
	mux.Handle("PUT /api/categories/{id}/{$}", authed(rt.Tasks.RenameCategory))
	mux.Handle("PATCH /api/categories/{id}/{$}", authed(rt.Tasks.RenameCategory))
	mux.Handle("DELETE /api/categories/{id}/{$}", authed(rt.Tasks.DeleteCategory))

	mux.Handle("POST /api/users/{$}", staff(rt.Users.CreateUser))
	mux.Handle("GET /api/users/{telegram_id}/public_info/{$}", staff(rt.Users.PublicInfo))
	mux.Handle("GET /api/users/{telegram_id}/locale/{$}", staff(rt.Users.GetLocale))
	mux.Handle("PUT /api/users/{telegram_id}/locale/{$}", staff(rt.Users.SetLocale))
}

// CommentRoutes groups the handlers of the comment service.
type CommentRoutes struct {
	Comments *CommentHandler
	Health   *HealthHandler
}

// Register mounts the comment service endpoints on mux. Every path is
// served with and without a trailing slash.
func (rt CommentRoutes) Register(mux *http.ServeMux) {
	registerHealthRoutes(mux, rt.Health)

	both := func(method, path string, h http.HandlerFunc) {
		handler := middleware.RequireAuth(h)
		mux.Handle(method+" "+path+"{$}", handler)
		mux.Handle(method+" "+strings.TrimSuffix(path, "/"), handler)
	}

	both(http.MethodPost, "/comments/", rt.Comments.Create)
	both(http.MethodGet, "/comments/", rt.Comments.List)
	both(http.MethodGet, "/comments/{id}/", rt.Comments.Get)
	both(http.MethodPut, "/comments/{id}/", rt.Comments.Update)
	both(http.MethodDelete, "/comments/{id}/", rt.Comments.Delete)
	both(http.MethodGet, "/tasks/{task_id}/comments/", rt.Comments.ListByTask)
}

func registerHealthRoutes(mux *http.ServeMux, h *HealthHandler) {
	mux.HandleFunc("GET /live", h.Live)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /health", h.Health)
}

func orPassThrough(mw middleware.Middleware) middleware.Middleware {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
