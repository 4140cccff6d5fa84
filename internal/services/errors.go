package services

import (
	"errors"
	"fmt"
)

// ErrorType classifies an [AppError].
type ErrorType string

const (
	TypeConflict ErrorType = "conflict"
	TypeNotFound ErrorType = "not_found"
)

// AppError is a domain failure the HTTP layer maps to a status code.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// ConflictError reports a uniqueness violation.
func ConflictError(message string, cause error) *AppError {
	return &AppError{Type: TypeConflict, Message: message, Err: cause}
}

// NotFoundError reports a missing resource.
func NotFoundError(message string, cause error) *AppError {
	return &AppError{Type: TypeNotFound, Message: message, Err: cause}
}

// IsConflict reports whether err is or wraps a conflict [AppError].
func IsConflict(err error) bool {
	return hasType(err, TypeConflict)
}

// IsNotFound reports whether err is or wraps a not_found [AppError].
func IsNotFound(err error) bool {
	return hasType(err, TypeNotFound)
}

func hasType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}
