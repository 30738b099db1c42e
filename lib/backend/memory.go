// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Galih066/lara-task/lib/clock"
	"github.com/Galih066/lara-task/lib/schema/task"
)

// Attachment limits enforced by CreateTask.
const (
	MaxAttachmentSize = 2 << 20
	MaxAttachments    = 5
	maxTitleLength    = 255
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Memory is an in-process Backend over a task and member snapshot. It
// applies the same validation a real server would, so the TUI can be
// exercised without one. Safe for concurrent use.
type Memory struct {
	clock  clock.Clock
	logger *slog.Logger

	mu      sync.Mutex
	tasks   []task.Task
	members []task.Member
	files   map[string][]byte
}

// NewMemory creates a memory backend holding copies of tasks and
// members.
func NewMemory(tasks []task.Task, members []task.Member, source clock.Clock, logger *slog.Logger) *Memory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Memory{
		clock:   source,
		logger:  logger,
		tasks:   slices.Clone(tasks),
		members: slices.Clone(members),
		files:   make(map[string][]byte),
	}
}

// Tasks returns a copy of every stored task.
func (memory *Memory) Tasks(ctx context.Context) ([]task.Task, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	return slices.Clone(memory.tasks), nil
}

// Members returns a copy of every stored member.
func (memory *Memory) Members(ctx context.Context) ([]task.Member, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	return slices.Clone(memory.members), nil
}

// PersistMove stores a status change. The backend enforces the same
// schedule rule as the board.
func (memory *Memory) PersistMove(ctx context.Context, taskID string, status task.Status) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	position := memory.indexLocked(taskID)
	if position < 0 {
		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	if !status.Valid() {
		return FieldErrors{"status": fmt.Sprintf("unknown status %q", status)}
	}
	item := memory.tasks[position]
	if status != task.DefaultStatus && !item.HasSchedule() {
		return FieldErrors{"status": "start date and due date are required before leaving " + task.DefaultStatus.Label()}
	}
	memory.tasks[position].Status = status
	memory.logger.Debug("task moved", "task", taskID, "status", status)
	return nil
}

// CreateTask validates the form and stores a new todo task.
func (memory *Memory) CreateTask(ctx context.Context, form TaskForm) (task.Task, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	fields := FieldErrors{}
	created := task.Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(form.Title),
		Description: form.Description,
		Status:      task.DefaultStatus,
		Priority:    task.PriorityMedium,
		CreatedAt:   memory.clock.Now().UTC(),
	}

	switch {
	case created.Title == "":
		fields["title"] = "title is required"
	case len(created.Title) > maxTitleLength:
		fields["title"] = fmt.Sprintf("title must be at most %d characters", maxTitleLength)
	}
	if form.Priority != "" {
		priority := task.Priority(strings.ToLower(form.Priority))
		if !priority.Valid() {
			fields["priority"] = "priority must be high, medium, or low"
		}
		created.Priority = priority
	}
	created.StartDate, created.DueDate = parseSchedule(form.StartDate, form.DueDate, fields)
	created.Assignees = memory.resolveAssigneesLocked(form.Assignees, fields)
	if form.Initiator != "" {
		if refs := memory.resolveAssigneesLocked([]string{form.Initiator}, nil); len(refs) == 1 {
			created.Initiator = refs[0]
		} else {
			created.Initiator = task.UserRef{ID: form.Initiator}
		}
	}
	images, stored := memory.checkAttachments(created.ID, form.Attachments, fields)

	if len(fields) > 0 {
		return task.Task{}, fields
	}
	created.Images = images
	for key, data := range stored {
		memory.files[key] = data
	}
	memory.tasks = append(memory.tasks, created)
	memory.logger.Debug("task created", "task", created.ID, "attachments", len(images))
	return created, nil
}

// UpdateTask applies a partial patch.
func (memory *Memory) UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (task.Task, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	position := memory.indexLocked(taskID)
	if position < 0 {
		return task.Task{}, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	updated := memory.tasks[position]
	fields := FieldErrors{}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			fields["title"] = "title is required"
		}
		updated.Title = title
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Priority != nil {
		priority := task.Priority(strings.ToLower(*patch.Priority))
		if !priority.Valid() {
			fields["priority"] = "priority must be high, medium, or low"
		}
		updated.Priority = priority
	}
	if patch.StartDate != nil || patch.DueDate != nil {
		start, due := task.FormatDate(updated.StartDate), task.FormatDate(updated.DueDate)
		if patch.StartDate != nil {
			start = *patch.StartDate
		}
		if patch.DueDate != nil {
			due = *patch.DueDate
		}
		updated.StartDate, updated.DueDate = parseSchedule(start, due, fields)
		if updated.Status != task.DefaultStatus && !updated.HasSchedule() && fields["due_date"] == "" {
			fields["due_date"] = "dates cannot be cleared while the task is in " + updated.Status.Label()
		}
	}
	if patch.Assignees != nil {
		updated.Assignees = memory.resolveAssigneesLocked(patch.Assignees, fields)
	}

	if len(fields) > 0 {
		return task.Task{}, fields
	}
	memory.tasks[position] = updated
	return updated, nil
}

// DeleteTask removes a task and its stored attachments.
func (memory *Memory) DeleteTask(ctx context.Context, taskID string) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	position := memory.indexLocked(taskID)
	if position < 0 {
		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	for _, image := range memory.tasks[position].Images {
		delete(memory.files, image.Path)
	}
	memory.tasks = slices.Delete(memory.tasks, position, position+1)
	memory.logger.Debug("task deleted", "task", taskID)
	return nil
}

// Attachment returns the bytes of a stored attachment by its path.
func (memory *Memory) Attachment(filePath string) ([]byte, bool) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	data, exists := memory.files[filePath]
	return data, exists
}

func (memory *Memory) indexLocked(taskID string) int {
	return slices.IndexFunc(memory.tasks, func(item task.Task) bool { return item.ID == taskID })
}

// resolveAssigneesLocked maps member IDs to refs. Unknown IDs are
// reported under "assignees" when fields is non-nil and dropped.
func (memory *Memory) resolveAssigneesLocked(ids []string, fields FieldErrors) []task.UserRef {
	refs := make([]task.UserRef, 0, len(ids))
	var unknown []string
	for _, id := range ids {
		position := slices.IndexFunc(memory.members, func(member task.Member) bool { return member.ID == id })
		if position < 0 {
			unknown = append(unknown, id)
			continue
		}
		refs = append(refs, memory.members[position].Ref())
	}
	if len(unknown) > 0 && fields != nil {
		fields["assignees"] = "unknown member: " + strings.Join(unknown, ", ")
	}
	if len(refs) == 0 {
		return nil
	}
	return refs
}

func (memory *Memory) checkAttachments(taskID string, attachments []Attachment, fields FieldErrors) ([]task.Image, map[string][]byte) {
	if len(attachments) > MaxAttachments {
		fields["attachments"] = fmt.Sprintf("at most %d attachments", MaxAttachments)
		return nil, nil
	}
	images := make([]task.Image, 0, len(attachments))
	stored := make(map[string][]byte, len(attachments))
	for _, attachment := range attachments {
		name := path.Base(attachment.Name)
		switch {
		case !slices.Contains(allowedImageTypes, strings.ToLower(attachment.Type)):
			fields["attachments"] = fmt.Sprintf("%s: type %q is not an allowed image type", name, attachment.Type)
			return nil, nil
		case len(attachment.Data) > MaxAttachmentSize:
			fields["attachments"] = fmt.Sprintf("%s: larger than %d KiB", name, MaxAttachmentSize>>10)
			return nil, nil
		}
		filePath := path.Join("attachments", taskID, uuid.NewString()+path.Ext(name))
		stored[filePath] = attachment.Data
		images = append(images, task.Image{
			Path: filePath,
			Name: name,
			Size: int64(len(attachment.Data)),
			Type: strings.ToLower(attachment.Type),
		})
	}
	if len(images) == 0 {
		return nil, stored
	}
	return images, stored
}

// parseSchedule parses the form dates, recording per-field errors.
func parseSchedule(start, due string, fields FieldErrors) (*time.Time, *time.Time) {
	startDate, err := task.ParseDate(start)
	if err != nil {
		fields["start_date"] = "start date must be YYYY-MM-DD"
	}
	dueDate, err := task.ParseDate(due)
	if err != nil {
		fields["due_date"] = "due date must be YYYY-MM-DD"
	}
	if startDate != nil && dueDate != nil && dueDate.Before(*startDate) {
		fields["due_date"] = "due date must not be before the start date"
	}
	return startDate, dueDate
}
