package handler

// Response helpers shared by every handler: one JSON writer, one error
// translator. Every error body has the same shape regardless of status —
//
//	{"error": "validation_error", "messages": ["Title is required", ...]}
//
// so the frontend always knows what fields to expect. messages is a list
// because validation reports every violated rule at once.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/showcase/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error    string   `json:"error"`    // machine-readable kind, e.g. "not_found"
	Messages []string `json:"messages"` // human-readable, full list for validation
}

// writeJSON sends a JSON response with the given status code. Headers and
// status must go out before the body — anything set after Encode starts
// writing is silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error onto the HTTP taxonomy:
//
//	ErrValidation   → 400  (all violated rules in messages)
//	ErrUnauthorized → 401
//	ErrForbidden    → 403
//	ErrNotFound     → 404  (also covers visibility-hidden entities)
//	ErrConflict     → 409  (already hearted/liked)
//	anything else   → 500  with a generic body — internals never leak
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		kind := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			kind = "validation_error"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			kind = "unauthorized"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			kind = "forbidden"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			kind = "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			kind = "conflict"
		}

		writeJSON(w, status, ErrorResponse{Error: kind, Messages: appErr.Messages})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:    "internal_error",
		Messages: []string{"An internal error occurred"},
	})
}
