package services

import (
	"errors"
	"fmt"
)

// Error codes surfaced to clients. Stable machine-readable strings; the
// human message may change, the code must not.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeForbidden  = "FORBIDDEN"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeDatabase   = "DATABASE_ERROR"
)

// ServiceError is the error type returned by the core services. Controllers
// map Code to an HTTP status; the services themselves never touch HTTP.
type ServiceError struct {
	Code    string
	Message string
	Err     error // underlying cause, if any
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed input: bad URL, missing required
// field, unknown stage, empty decline reason.
func NewValidationError(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewForbiddenError reports an authenticated principal lacking the
// role, ownership or assignment needed for the target record.
func NewForbiddenError(message string) *ServiceError {
	return &ServiceError{Code: CodeForbidden, Message: message}
}

// NewNotFoundError reports a missing order, user or message.
func NewNotFoundError(what string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: what + " not found"}
}

// NewConflictError reports a precondition on current state that no longer
// holds, e.g. approving an order that is not pending. The caller should
// refetch before retrying.
func NewConflictError(message string) *ServiceError {
	return &ServiceError{Code: CodeConflict, Message: message}
}

// NewStorageError wraps a datastore failure. The surrounding transaction
// has been rolled back; nothing was partially applied.
func NewStorageError(err error) *ServiceError {
	return &ServiceError{Code: CodeDatabase, Message: "database operation failed", Err: err}
}

// AsServiceError extracts a *ServiceError from err, or wraps err as a
// storage error when it is of any other type.
func AsServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return NewStorageError(err)
}
