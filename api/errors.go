// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the prethread library.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrInvalidPool   = fmt.Errorf("invalid pool reference")
	ErrPoolClosed    = fmt.Errorf("pool is freed")
	ErrZeroThreads   = fmt.Errorf("thread count must be at least one")
	ErrNegativeCount = fmt.Errorf("primitive count must not be negative")
	ErrMutexIndex    = fmt.Errorf("mutex index out of range")
	ErrCondIndex     = fmt.Errorf("condition variable index out of range")
	ErrNotStarted    = fmt.Errorf("thread slot was never started")
	ErrAlreadyJoined = fmt.Errorf("pool already joined")
	ErrLocked        = fmt.Errorf("mutex already locked")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeOutOfRange
	ErrCodeClosed
	ErrCodeNotStarted
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel this error was built from, keeping errors.Is
// and errors.As working across the structured layer.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WrapError builds a structured error on top of a sentinel.
func WrapError(code ErrorCode, cause error) *Error {
	e := NewError(code, cause.Error())
	e.cause = cause
	return e
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
