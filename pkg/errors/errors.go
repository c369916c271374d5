package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Reason  string    `json:"reason,omitempty"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status. The error-handling
// middleware uses this to shape the response.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest:
		return http.StatusBadRequest
	case ErrInvalidInput:
		return http.StatusUnprocessableEntity
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	case ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the caller may safely resubmit the same request.
func (e *AppError) Retryable() bool {
	return e.Code == ErrUnavailable
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrConflict
	ErrInvalidInput
	ErrUnavailable
)

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func InvalidInput(message string, err error) *AppError {
	return &AppError{
		Code:    ErrInvalidInput,
		Reason:  "invalid_input",
		Message: message,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

// SlotUnavailable signals a commit-time exclusion violation: the requested
// interval was claimed by a concurrent booking. Not retryable with the same
// slot; the caller must recompute availability first.
func SlotUnavailable(err error) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Reason:  "slot_unavailable",
		Message: "slot no longer available",
		Err:     err,
	}
}

// ScheduleConflict signals a write-time overlap between work windows.
func ScheduleConflict(message string) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Reason:  "schedule_conflict",
		Message: message,
	}
}

// PersistenceUnavailable signals a transient storage failure. The commit path
// is guarded by the exclusion constraint, so resubmitting the identical
// request is safe.
func PersistenceUnavailable(err error) *AppError {
	return &AppError{
		Code:    ErrUnavailable,
		Reason:  "persistence_unavailable",
		Message: "storage temporarily unavailable",
		Err:     err,
	}
}

// ScheduleData signals malformed stored work-window data for one staff
// member. Availability computations log it and skip the member.
func ScheduleData(staffID string, err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Reason:  "schedule_data",
		Message: fmt.Sprintf("malformed schedule data for staff %s", staffID),
		Err:     err,
	}
}

// As unwraps err into an *AppError if possible.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
