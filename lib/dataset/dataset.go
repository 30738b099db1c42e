// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"

	"github.com/Galih066/lara-task/lib/schema/task"
)

// LoadTasks reads a task snapshot. Every record is validated; the
// first invalid record fails the load with its position.
func LoadTasks(path string) ([]task.Task, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	tasks := make([]task.Task, 0, len(records))
	for index, raw := range records {
		item, err := decodeTask(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, index+1, err)
		}
		tasks = append(tasks, item)
	}
	return tasks, nil
}

// LoadMembers reads a member snapshot.
func LoadMembers(path string) ([]task.Member, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	members := make([]task.Member, 0, len(records))
	for index, raw := range records {
		member, err := decodeMember(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, index+1, err)
		}
		members = append(members, member)
	}
	return members, nil
}

// ResolveAssignees fills in missing assignee and initiator names from
// the member list. Tasks are modified in place.
func ResolveAssignees(tasks []task.Task, members []task.Member) {
	names := make(map[string]string, len(members))
	for _, member := range members {
		names[member.ID] = member.Name
	}
	for index := range tasks {
		for position, assignee := range tasks[index].Assignees {
			if assignee.Name == "" {
				tasks[index].Assignees[position].Name = names[assignee.ID]
			}
		}
		if initiator := tasks[index].Initiator; initiator.ID != "" && initiator.Name == "" {
			tasks[index].Initiator.Name = names[initiator.ID]
		}
	}
}
