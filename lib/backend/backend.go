// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"

	"github.com/Galih066/lara-task/lib/schema/task"
)

// Backend is the request/response contract with the system of record.
// Every method may return FieldErrors for rejected input, an error
// wrapping ErrNotFound for unknown IDs, or a transport error.
type Backend interface {
	Tasks(ctx context.Context) ([]task.Task, error)
	Members(ctx context.Context) ([]task.Member, error)

	// PersistMove stores a status change made on the board.
	PersistMove(ctx context.Context, taskID string, status task.Status) error

	CreateTask(ctx context.Context, form TaskForm) (task.Task, error)
	UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (task.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

// Attachment is an uploaded file in a create request.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data []byte `json:"data"`
}

// TaskForm is the create-task form payload. Dates are the raw form
// strings (YYYY-MM-DD or empty) so the backend reports parse failures
// per field.
type TaskForm struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Priority    string       `json:"priority,omitempty"`
	StartDate   string       `json:"start_date,omitempty"`
	DueDate     string       `json:"due_date,omitempty"`
	Assignees   []string     `json:"assignees,omitempty"`
	Initiator   string       `json:"initiator,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// TaskPatch is a partial update. Nil fields are left alone; a date set
// to the empty string clears it. Status changes go through PersistMove.
type TaskPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Priority    *string  `json:"priority,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	Assignees   []string `json:"assignees,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (patch TaskPatch) Empty() bool {
	return patch.Title == nil && patch.Description == nil && patch.Priority == nil &&
		patch.StartDate == nil && patch.DueDate == nil && patch.Assignees == nil
}
