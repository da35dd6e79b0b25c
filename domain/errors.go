package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeInvalid       ErrorCode = "INVALID"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeTimeout       ErrorCode = "TIMEOUT"
	ErrCodeUnavailable   ErrorCode = "UNAVAILABLE"
	ErrCodeInternal      ErrorCode = "INTERNAL"
)

// Error represents a domain-level error. Details optionally carries
// structured context (e.g. the pair of entries behind a CONFLICT).
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
	Details interface{}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// EntryConflict identifies the two manual entries whose intervals
// overlap, so the caller can resolve the collision explicitly.
type EntryConflict struct {
	First  ScheduleEntry `json:"first"`
	Second ScheduleEntry `json:"second"`
}

// NewConflict builds a CONFLICT error carrying both entries.
func NewConflict(first, second ScheduleEntry) *Error {
	return &Error{
		Code:    ErrCodeConflict,
		Message: fmt.Sprintf("manual entries %s and %s overlap", first.TaskID, second.TaskID),
		Details: EntryConflict{First: first, Second: second},
	}
}

// Common domain errors.
var (
	ErrUserNotFound        = NewError(ErrCodeNotFound, "user not found")
	ErrTaskNotFound        = NewError(ErrCodeNotFound, "task not found")
	ErrScheduleNotFound    = NewError(ErrCodeNotFound, "schedule not found")
	ErrNoteNotFound        = NewError(ErrCodeNotFound, "note not found")
	ErrPreferencesNotFound = NewError(ErrCodeNotFound, "preferences not found")
	ErrSessionNotFound     = NewError(ErrCodeNotFound, "session not found")
	ErrUnauthorized        = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload      = NewError(ErrCodeInvalid, "invalid payload")
	ErrInvalidWorkHours    = NewError(ErrCodeConfiguration, "work_hours_start must precede work_hours_end")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
