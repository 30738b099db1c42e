// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package board

import (
	"errors"
	"fmt"

	"github.com/Galih066/lara-task/lib/schema/task"
)

// Validation codes carried by ValidationError.
const (
	CodeDatesRequired = "dates_required"
	CodeUnknownStatus = "unknown_status"
)

// ErrDatesRequired matches any ValidationError with code
// dates_required under errors.Is.
var ErrDatesRequired = errors.New(CodeDatesRequired)

// ValidationError reports a move refused by a board guard. The task
// is left unchanged.
type ValidationError struct {
	Code   string
	TaskID string
	Target task.Status
}

func (err *ValidationError) Error() string {
	switch err.Code {
	case CodeDatesRequired:
		return fmt.Sprintf("task %s: moving to %s requires a start date and a due date (%s)",
			err.TaskID, err.Target.Label(), err.Code)
	case CodeUnknownStatus:
		return fmt.Sprintf("task %s: unknown target status %q", err.TaskID, err.Target)
	}
	return fmt.Sprintf("task %s: move rejected (%s)", err.TaskID, err.Code)
}

// Is lets errors.Is(err, ErrDatesRequired) match by code.
func (err *ValidationError) Is(target error) bool {
	return target == ErrDatesRequired && err.Code == CodeDatesRequired
}
