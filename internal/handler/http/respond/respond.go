// Package respond provides helpers for writing JSON and plain-text HTTP
// responses, including error responses that never leak internal details.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent, so only log.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Text writes a text/plain response.
func Text(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Default().Error("failed to write text response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Error: err.Error()})
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// AppError is an error that carries a user-facing message, a machine
// readable kind and the HTTP status to answer with.
type AppError struct {
	UserMsg string // Message to display to users
	Kind    string // Stable error kind, e.g. "entry_not_found"
	Err     error  // Internal error (logged for debugging)
	Code    int    // HTTP status code
}

// Error returns the error message, implementing the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(code int, kind, userMsg string, err error) *AppError {
	return &AppError{Code: code, Kind: kind, UserMsg: userMsg, Err: err}
}

// SafeError writes err for the client.
//
// An *AppError anywhere in the chain answers with its own status, kind and
// user message; 5xx AppErrors are logged with the sanitized internal error.
// Any other error is logged and answered with code and a generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= 500 && appErr.Err != nil {
			slog.Default().Error("application error",
				slog.String("status", http.StatusText(appErr.Code)),
				slog.Int("code", appErr.Code),
				slog.String("kind", appErr.Kind),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		JSON(w, appErr.Code, ErrorBody{Error: appErr.UserMsg, Kind: appErr.Kind})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: "internal server error"})
}
