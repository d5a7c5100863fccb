package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/internal/service/user"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

type userService interface {
	CreateUser(ctx context.Context, input user.CreateUserInput) (*domain.User, error)
	PublicInfo(ctx context.Context, telegramID int64) (*domain.User, error)
	GetLocale(ctx context.Context, chatID int64) (*domain.UserLocale, error)
	SetLocale(ctx context.Context, chatID int64, locale string) (*domain.UserLocale, error)
}

// UserHandler serves the staff-only user endpoints the chat client relies on.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

// CreateUser handles POST /api/users/.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req todoapi.CreateUser
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	u, err := h.svc.CreateUser(r.Context(), user.CreateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		TelegramID: req.TelegramID,
		IsStaff:    req.IsStaff,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUser(u))
}

// PublicInfo handles GET /api/users/{telegram_id}/public_info/.
func (h *UserHandler) PublicInfo(w http.ResponseWriter, r *http.Request) {
	telegramID, err := pathInt64(r, "telegram_id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	u, err := h.svc.PublicInfo(r.Context(), telegramID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todoapi.PublicInfo{ID: u.ID, Username: u.Username})
}

// GetLocale handles GET /api/users/{telegram_id}/locale/.
func (h *UserHandler) GetLocale(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathInt64(r, "telegram_id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	l, err := h.svc.GetLocale(r.Context(), chatID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todoapi.Locale{Locale: l.Locale})
}

// SetLocale handles PUT /api/users/{telegram_id}/locale/.
func (h *UserHandler) SetLocale(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathInt64(r, "telegram_id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req todoapi.Locale
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	l, err := h.svc.SetLocale(r.Context(), chatID, req.Locale)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todoapi.Locale{Locale: l.Locale})
}
