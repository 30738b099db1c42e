// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle bucket of a task. Every task has exactly one
// status, and the status alone decides which board column it lives in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Statuses lists every status in board order, left to right. The first
// entry is the default status for newly created tasks.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

// DefaultStatus is the status a task may always be moved into without
// a schedule.
const DefaultStatus = StatusTodo

// Valid reports whether the status is one of the four known values.
func (status Status) Valid() bool {
	switch status {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Index returns the column position of the status in Statuses, or -1
// for unknown values.
func (status Status) Index() int {
	for index, candidate := range Statuses {
		if candidate == status {
			return index
		}
	}
	return -1
}

// Label returns the human-readable column title.
func (status Status) Label() string {
	switch status {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusDone:
		return "Done"
	}
	return string(status)
}

// Priority is the urgency tag of a task. It only affects sorting and
// display.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority in sort order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the sort position of the priority: high sorts first.
// Unknown or empty priorities rank after low so they collect at the
// bottom of a column instead of interleaving with tagged tasks.
func (priority Priority) Rank() int {
	switch Priority(strings.ToLower(string(priority))) {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Valid reports whether the priority is one of the three known values.
func (priority Priority) Valid() bool {
	return priority.Rank() < 3
}

// UserRef identifies a user attached to a task as initiator or
// assignee. Name is display-only and may be empty when the backend
// only supplied the ID.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Display returns the name when known and the ID otherwise.
func (user UserRef) Display() string {
	if user.Name != "" {
		return user.Name
	}
	return user.ID
}

// Image is an attachment stored by the backend. The path is opaque to
// the client.
type Image struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// Task is a work item. Tasks are immutable by replacement: code that
// changes a field copies the value, modifies the copy, and swaps it
// into the working set under the same ID.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Assignees   []UserRef  `json:"assignees,omitempty"`
	Initiator   UserRef    `json:"initiator,omitzero"`
	Images      []Image    `json:"images,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitzero"`
}

// HasSchedule reports whether both the start date and the due date are
// set. Tasks without a full schedule can only live in the default
// column.
func (content Task) HasSchedule() bool {
	return content.StartDate != nil && content.DueDate != nil
}

// Validate checks that the task has an identity, a title, known enum
// values, and a coherent schedule.
func (content *Task) Validate() error {
	if content.ID == "" {
		return errors.New("task: id is required")
	}
	if strings.TrimSpace(content.Title) == "" {
		return fmt.Errorf("task %s: title is required", content.ID)
	}
	if !content.Status.Valid() {
		return fmt.Errorf("task %s: unknown status %q", content.ID, content.Status)
	}
	if content.Priority != "" && !content.Priority.Valid() {
		return fmt.Errorf("task %s: unknown priority %q", content.ID, content.Priority)
	}
	if content.StartDate != nil && content.DueDate != nil && content.DueDate.Before(*content.StartDate) {
		return fmt.Errorf("task %s: due date %s precedes start date %s",
			content.ID, FormatDate(content.DueDate), FormatDate(content.StartDate))
	}
	return nil
}

// AssigneeNames returns the display names of all assignees.
func (content Task) AssigneeNames() []string {
	names := make([]string, 0, len(content.Assignees))
	for _, assignee := range content.Assignees {
		names = append(names, assignee.Display())
	}
	return names
}
