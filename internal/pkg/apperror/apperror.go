// FILE: internal/pkg/apperror/apperror.go
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation and HTTP mapping. Validation,
// conflict and forbidden errors are always rejected before any state
// mutation; external errors mean the surrounding transaction was rolled back
// and the call is safe to retry.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindForbidden
	KindNotFound
	KindExternal
	KindInternal
)

// Error carries a stable machine-readable code alongside the human message.
// Codes are part of the API contract; raw causes stay server-side.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func External(code, message string, cause error) *Error {
	return &Error{Kind: KindExternal, Code: code, Message: message, Err: cause}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: "internal server error", Err: cause}
}

// From extracts the typed error, or nil if err is not one.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	appErr := From(err)
	return appErr != nil && appErr.Code == code
}
