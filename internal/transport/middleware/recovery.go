package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/todolist-backend/pkg/ctxutil"
)

// Recovery turns a handler panic into a JSON 500 and logs it with the
// stack. http.ErrAbortHandler is re-raised for net/http to handle.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				ctx := r.Context()
				attrs := []slog.Attr{
					slog.Any("error", v),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
				}
				if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
					attrs = append(attrs, slog.String("user_id", userID.String()))
				}
				logger.LogAttrs(ctx, slog.LevelError, "panic recovered", attrs...)

				writeError(w, http.StatusInternalServerError, "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
