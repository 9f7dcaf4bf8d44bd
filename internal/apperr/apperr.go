// Package apperr defines the typed failures the services return. Each
// value carries a stable error code plus the HTTP-equivalent status the
// boundary maps it to; handlers never invent statuses of their own.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound           = "RESOURCE_NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED_OPERATION"
	CodeInvalidOperation   = "INVALID_OPERATION"
	CodeDuplicate          = "DUPLICATE_RESOURCE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeValidation         = "VALIDATION_ERROR"
	CodeMalformed          = "MALFORMED_REQUEST"
	CodeInternal           = "INTERNAL_ERROR"
)

type Error struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func NotFound(resource string, id uint) *Error {
	return &Error{
		Code:    CodeNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s with ID %d not found", resource, id),
	}
}

func NotFoundIdent(resource, identifier string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s with identifier '%s' not found", resource, identifier),
	}
}

func Unauthorized(operation, resource string) *Error {
	return &Error{
		Code:    CodeUnauthorized,
		Status:  http.StatusForbidden,
		Message: fmt.Sprintf("not authorized to %s %s", operation, resource),
	}
}

func InvalidOperation(message string) *Error {
	return &Error{
		Code:    CodeInvalidOperation,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

func Duplicate(field, value string) *Error {
	return &Error{
		Code:    CodeDuplicate,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("%s already exists: %s", field, value),
	}
}

// InvalidCredentials deliberately does not say which of email or
// password was wrong.
func InvalidCredentials() *Error {
	return &Error{
		Code:    CodeInvalidCredentials,
		Status:  http.StatusUnauthorized,
		Message: "invalid email or password",
	}
}

func Internal(err error) *Error {
	return &Error{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: "an unexpected error occurred",
		Err:     err,
	}
}
