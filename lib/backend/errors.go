// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrNotFound is returned (wrapped) when a request names a task that
// the backend does not hold.
var ErrNotFound = errors.New("not found")

// FieldErrors is a form-level validation failure: field name to
// message. The form keeps its input and shows each message under the
// matching field. Local state is never changed by a FieldErrors
// response.
type FieldErrors map[string]string

func (fields FieldErrors) Error() string {
	keys := slices.Sorted(maps.Keys(fields))
	parts := make([]string, len(keys))
	for index, key := range keys {
		parts[index] = key + ": " + fields[key]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for one field, or empty.
func (fields FieldErrors) Field(name string) string {
	return fields[name]
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fields FieldErrors
	if errors.As(err, &fields) {
		return fields, true
	}
	return nil, false
}

// ServiceError is a server-side failure that is neither validation
// nor a missing task.
type ServiceError struct {
	Action  string
	Message string
}

func (err *ServiceError) Error() string {
	return fmt.Sprintf("backend error on %q: %s", err.Action, err.Message)
}

// Wire error codes carried in the response envelope.
const (
	codeNotFound   = "not_found"
	codeValidation = "validation"
)

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return codeNotFound
	case errors.As(err, new(FieldErrors)):
		return codeValidation
	}
	return ""
}
