// Package apperror carries the error taxonomy shared by services and the
// GraphQL boundary. Every failure that leaves a service is an *Error tagged
// with one Kind; the transport turns the Kind into extensions.code.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for callers.
type Kind string

const (
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindStoreFailure    Kind = "STORE_FAILURE"
)

// Error is a tagged failure. Message is what the caller sees, Err keeps the
// underlying cause for logs and errors.Is/As.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Extensions is picked up by the GraphQL engine and rendered under
// errors[].extensions.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": string(e.Kind),
	}
}

// ========================================
// CONSTRUCTORS
// ========================================

func InvalidArgument(op, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Op: op, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput wraps a validation error (ozzo validation.Errors etc).
func InvalidInput(op string, err error) *Error {
	return &Error{Kind: KindInvalidArgument, Op: op, Err: err}
}

func NotFound(op string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

func Conflict(op string, err error) *Error {
	return &Error{Kind: KindConflict, Op: op, Err: err}
}

func StoreFailure(op string, err error) *Error {
	return &Error{Kind: KindStoreFailure, Op: op, Err: err}
}

// Wrap returns err unchanged when it already is an *Error, otherwise tags it
// as a store failure. The cause message is kept as-is.
func Wrap(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return StoreFailure(op, err)
}

// KindOf reports the Kind carried by err, or KindStoreFailure for untagged
// errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreFailure
}

// Is reports whether err is tagged with kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}
