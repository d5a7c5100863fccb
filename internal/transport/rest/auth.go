package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/internal/service/auth"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	Logout(ctx context.Context) error
}

// AuthHandler serves the token endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

// Token handles POST /api/token/. Credentials arrive as JSON or as a form.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req todoapi.Credentials
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			handleError(h.log, w, r, domain.NewValidationError("body", "invalid form"))
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	} else if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTokens(result))
}

// Refresh handles POST /api/token/refresh/.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req todoapi.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.Refresh(r.Context(), auth.RefreshInput{RefreshToken: req.Refresh})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTokens(result))
}

// Logout handles POST /api/token/logout/ by revoking every refresh token of
// the caller.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toTokens(result *auth.AuthResult) todoapi.Tokens {
	return todoapi.Tokens{
		Access:  result.AccessToken,
		Refresh: result.RefreshToken,
		UserID:  result.User.ID,
	}
}
