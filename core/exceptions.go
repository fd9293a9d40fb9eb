package core

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrStore        = errors.New("store error")
	ErrInvalidInput = errors.New("invalid input")
)

// AppError carries the HTTP status a failure maps to
type AppError struct {
	Message string
	Code    int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewUnauthorizedError builds a 401 error
func NewUnauthorizedError(msg string) *AppError {
	return &AppError{Message: msg, Code: http.StatusUnauthorized, Err: ErrUnauthorized}
}

// NewForbiddenError builds a 403 error
func NewForbiddenError(msg string) *AppError {
	return &AppError{Message: msg, Code: http.StatusForbidden, Err: ErrForbidden}
}

// NewNotFoundError builds a 404 error
func NewNotFoundError(msg string) *AppError {
	return &AppError{Message: msg, Code: http.StatusNotFound, Err: ErrNotFound}
}

// NewStoreError wraps a persistence failure as a 500 error
func NewStoreError(op string, err error) *AppError {
	return &AppError{Message: op, Code: http.StatusInternalServerError, Err: fmt.Errorf("%w: %v", ErrStore, err)}
}

// ValidationError lists a human-readable reason per offending field
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// StatusCode maps an error from the service layer to an HTTP status
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
