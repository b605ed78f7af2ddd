package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind identifies the business-rule category of an AppError so callers can
// branch on it without string-matching messages.
type Kind string

const (
	KindInvalidInput   Kind = "invalid_input"
	KindNotFound       Kind = "not_found"
	KindNotActive      Kind = "not_active"
	KindNotCompleted   Kind = "not_completed"
	KindAlreadyClaimed Kind = "already_claimed"
	KindConflict       Kind = "conflict"
	KindUnauthorized   Kind = "unauthorized"
	KindForbidden      Kind = "forbidden"
	KindInternal       Kind = "internal"
)

// AppError is a custom error type that includes an HTTP status code and a
// machine-readable kind.
type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates a new AppError
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// KindOf returns the kind of err if it is an AppError, KindInternal otherwise.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Helper functions to create specific errors
func InvalidInput(msg string) *AppError {
	return NewAppError(http.StatusBadRequest, KindInvalidInput, msg)
}

func NotFound(msg string) *AppError {
	return NewAppError(http.StatusNotFound, KindNotFound, msg)
}

func NotActive(msg string) *AppError {
	return NewAppError(http.StatusConflict, KindNotActive, msg)
}

func NotCompleted(msg string) *AppError {
	return NewAppError(http.StatusConflict, KindNotCompleted, msg)
}

func AlreadyClaimed(msg string) *AppError {
	return NewAppError(http.StatusConflict, KindAlreadyClaimed, msg)
}

// Conflict signals an atomic update lost a race and the caller should retry.
func Conflict(msg string) *AppError {
	return NewAppError(http.StatusConflict, KindConflict, msg)
}

func Unauthorized(msg string) *AppError {
	return NewAppError(http.StatusUnauthorized, KindUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return NewAppError(http.StatusForbidden, KindForbidden, msg)
}

func Internal(msg string) *AppError {
	return NewAppError(http.StatusInternalServerError, KindInternal, msg)
}
