// Package apperror defines the domain error taxonomy shared by every layer.
//
// Services return these errors; the HTTP layer translates them to status codes
// in handler/response.go. Keeping the taxonomy here means the service layer
// never imports net/http and the handlers never inspect SQL errors.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors — check with errors.Is() anywhere in the chain.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError carries a sentinel plus the human-readable message(s) for the client.
//
// Messages holds the full list of violated rules for validation errors — the
// API contract is "report everything wrong in one call", never just the first
// violation. For all other kinds, Messages has a single entry.
type AppError struct {
	Err      error    // sentinel, for errors.Is
	Messages []string // human-readable, safe to show to the client
}

func (e *AppError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing entity. Also used when an entity exists but a
// visibility rule hides it — callers must not be able to tell the difference.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:      ErrNotFound,
		Messages: []string{fmt.Sprintf("%s not found with id %s", resource, id)},
	}
}

// Validation reports one or more violated input rules.
// The messages slice is reported to the client verbatim, all at once.
func Validation(messages ...string) *AppError {
	return &AppError{Err: ErrValidation, Messages: messages}
}

// Conflict reports a uniqueness violation (e.g. hearting a project twice).
func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Messages: []string{message}}
}

// Forbidden reports that a valid identity lacks the privilege for a mutation.
func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Messages: []string{message}}
}

// Unauthorized reports a missing/invalid session or a failed credential check.
// The message is deliberately generic — it must not reveal which part failed.
func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Messages: []string{message}}
}
