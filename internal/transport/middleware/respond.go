package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(todoapi.Error{Error: message}) //nolint:errcheck
}
