package service

import "fmt"

// ErrorCode classifies engine failures for the API boundary. Everything not
// covered here degrades inside a run instead of escaping it.
type ErrorCode string

const (
	CodeValidation      ErrorCode = "VALIDATION_ERROR"
	CodeAccess          ErrorCode = "ACCESS_DENIED"
	CodeQuotaExceeded   ErrorCode = "QUOTA_EXCEEDED"
	CodeTransientFetch  ErrorCode = "TRANSIENT_FETCH_ERROR"
	CodeInternalScoring ErrorCode = "INTERNAL_SCORING_ERROR"
)

// Error is a typed engine error carrying its taxonomy code.
type Error struct {
	Code    ErrorCode
	Message string
	// RetryAfterSeconds is set on quota errors: seconds until the next
	// quota-reset boundary.
	RetryAfterSeconds int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

func NewAccessError(msg string) *Error {
	return &Error{Code: CodeAccess, Message: msg}
}

func NewQuotaError(msg string, retryAfterSeconds int) *Error {
	return &Error{Code: CodeQuotaExceeded, Message: msg, RetryAfterSeconds: retryAfterSeconds}
}
