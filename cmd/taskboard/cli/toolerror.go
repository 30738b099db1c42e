// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/Galih066/lara-task/lib/backend"
)

// ErrorCategory classifies command errors so main can pick an exit
// code without parsing error text.
type ErrorCategory string

const (
	// CategoryValidation: bad flags, arguments, or configuration. The
	// caller should fix the input.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: a referenced task, file, or socket does not
	// exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryConflict: the operation conflicts with existing state,
	// such as a socket path already in use.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient: a temporary failure (timeout, refused
	// connection). Retrying may help.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal: anything else.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by commands. It wraps the
// underlying error so errors.Is and errors.As see the full chain.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is an optional next step printed after the error.
	Hint string
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint attaches a hint and returns the same error.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// ExitCode maps the category to a process exit code.
func (e *ToolError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 3
	case CategoryConflict:
		return 4
	case CategoryTransient:
		return 5
	}
	return 1
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Classify wraps a backend error in the matching category. Errors that
// are already ToolErrors pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return err
	}
	if _, ok := backend.AsFieldErrors(err); ok {
		return &ToolError{Category: CategoryValidation, Err: err}
	}
	if errors.Is(err, backend.ErrNotFound) {
		return &ToolError{Category: CategoryNotFound, Err: err}
	}
	if transient(err) {
		return &ToolError{Category: CategoryTransient, Err: err}
	}
	return &ToolError{Category: CategoryInternal, Err: err}
}

func transient(err error) bool {
	var netError net.Error
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		(errors.As(err, &netError) && netError.Timeout())
}
