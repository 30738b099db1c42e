// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Galih066/lara-task/lib/schema/task"
)

// fields is one record keyed by its raw JSON field names.
type fields map[string]json.RawMessage

// pick returns the first present, non-null field among names.
func (record fields) pick(names ...string) (json.RawMessage, bool) {
	for _, name := range names {
		value, exists := record[name]
		if exists && !bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return value, true
		}
	}
	return nil, false
}

func (record fields) text(names ...string) (string, error) {
	raw, ok := record.pick(names...)
	if !ok {
		return "", nil
	}
	return decodeText(raw, names[0])
}

// decodeText accepts a JSON string or number.
func decodeText(raw json.RawMessage, name string) (string, error) {
	var value any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&value); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	switch typed := value.(type) {
	case string:
		return typed, nil
	case json.Number:
		return typed.String(), nil
	}
	return "", fmt.Errorf("%s: want string or number, got %s", name, raw)
}

func (record fields) date(names ...string) (*time.Time, error) {
	value, err := record.text(names...)
	if err != nil {
		return nil, err
	}
	parsed, err := task.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", names[0], err)
	}
	return parsed, nil
}

// user accepts an ID (string or number) or an object with id and
// name.
func decodeUser(raw json.RawMessage, name string) (task.UserRef, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var object fields
		if err := json.Unmarshal(trimmed, &object); err != nil {
			return task.UserRef{}, fmt.Errorf("%s: %w", name, err)
		}
		id, err := object.text("id")
		if err != nil {
			return task.UserRef{}, fmt.Errorf("%s: %w", name, err)
		}
		display, err := object.text("name")
		if err != nil {
			return task.UserRef{}, fmt.Errorf("%s: %w", name, err)
		}
		return task.UserRef{ID: id, Name: display}, nil
	}
	id, err := decodeText(trimmed, name)
	return task.UserRef{ID: id}, err
}

// normalizeStatus maps "In Progress", "in-progress", and "IN_PROGRESS"
// to in_progress. Empty is the default status.
func normalizeStatus(value string) task.Status {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return task.DefaultStatus
	}
	value = strings.NewReplacer(" ", "_", "-", "_").Replace(value)
	if value == "to_do" {
		return task.StatusTodo
	}
	return task.Status(value)
}

func decodeTask(raw json.RawMessage) (task.Task, error) {
	var record fields
	if err := json.Unmarshal(raw, &record); err != nil {
		return task.Task{}, err
	}

	var result task.Task
	var err error
	if result.ID, err = record.text("id"); err != nil {
		return result, err
	}
	if result.Title, err = record.text("title", "name"); err != nil {
		return result, err
	}
	if result.Description, err = record.text("description"); err != nil {
		return result, err
	}
	status, err := record.text("status")
	if err != nil {
		return result, err
	}
	result.Status = normalizeStatus(status)
	priority, err := record.text("priority")
	if err != nil {
		return result, err
	}
	result.Priority = task.Priority(strings.ToLower(strings.TrimSpace(priority)))

	if result.StartDate, err = record.date("start_date", "startDate"); err != nil {
		return result, err
	}
	if result.DueDate, err = record.date("due_date", "dueDate"); err != nil {
		return result, err
	}
	// Timestamps are informational; an unparseable one is dropped.
	if created, err := record.date("created_at", "createdAt"); err == nil && created != nil {
		result.CreatedAt = *created
	}

	if raw, ok := record.pick("assignees"); ok {
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			return result, fmt.Errorf("assignees: %w", err)
		}
		for _, entry := range entries {
			user, err := decodeUser(entry, "assignees")
			if err != nil {
				return result, err
			}
			result.Assignees = append(result.Assignees, user)
		}
	}
	if raw, ok := record.pick("initiator", "initiator_id"); ok {
		if result.Initiator, err = decodeUser(raw, "initiator"); err != nil {
			return result, err
		}
	}
	if raw, ok := record.pick("images"); ok {
		if err := json.Unmarshal(raw, &result.Images); err != nil {
			return result, fmt.Errorf("images: %w", err)
		}
	}

	if err := result.Validate(); err != nil {
		return result, err
	}
	return result, nil
}

func decodeMember(raw json.RawMessage) (task.Member, error) {
	var record fields
	if err := json.Unmarshal(raw, &record); err != nil {
		return task.Member{}, err
	}

	var result task.Member
	var err error
	if result.ID, err = record.text("id"); err != nil {
		return result, err
	}
	if result.Name, err = record.text("name"); err != nil {
		return result, err
	}
	if result.Email, err = record.text("email"); err != nil {
		return result, err
	}
	if result.Role, err = record.text("role"); err != nil {
		return result, err
	}
	status, err := record.text("status")
	if err != nil {
		return result, err
	}
	result.Status = task.MemberStatus(strings.ToLower(strings.TrimSpace(status)))
	if result.Status == "" {
		result.Status = task.MemberActive
	}
	if result.JoinDate, err = record.date("join_date", "joinDate", "joined_at"); err != nil {
		return result, err
	}

	if err := result.Validate(); err != nil {
		return result, err
	}
	return result, nil
}
