// Package handlers provides shared HTTP response helpers for domain handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes v as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RespondError logs the error and writes an ErrorResponse with the given status code.
// Server-side errors (5xx) are logged at Error level and masked in the body so
// provider endpoints and raw model output never reach the client; the full
// detail stays in the logs. Client errors are logged at Warn and surfaced verbatim.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
		RespondJSON(w, status, ErrorResponse{Error: http.StatusText(status)})
		return
	}

	logger.Warn("request rejected", "status", status, "error", err)
	RespondJSON(w, status, ErrorResponse{Error: err.Error()})
}
