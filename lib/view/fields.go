// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"strings"
	"time"

	"github.com/Galih066/lara-task/lib/collection"
	"github.com/Galih066/lara-task/lib/schema/task"
)

// Task sort keys.
const (
	SortTitle     = "title"
	SortStatus    = "status"
	SortPriority  = "priority"
	SortStartDate = "start_date"
	SortDueDate   = "due_date"
	SortCreated   = "created_at"
)

// Member sort keys.
const (
	SortName         = "name"
	SortEmail        = "email"
	SortRole         = "role"
	SortMemberStatus = "status"
	SortJoinDate     = "join_date"
)

// TaskSortKeys lists the task sort keys in the order the UI cycles
// through them.
var TaskSortKeys = []string{SortDueDate, SortStartDate, SortPriority, SortStatus, SortTitle, SortCreated}

// MemberSortKeys lists the member sort keys in cycle order.
var MemberSortKeys = []string{SortName, SortEmail, SortRole, SortMemberStatus, SortJoinDate}

// TaskFields is the collection strategy for tasks. The search term
// matches the title, the description, and assignee names.
func TaskFields() collection.Fields[task.Task] {
	return collection.Fields[task.Task]{
		Search: []func(task.Task) string{
			func(item task.Task) string { return item.Title },
			func(item task.Task) string { return item.Description },
			func(item task.Task) string { return strings.Join(item.AssigneeNames(), "\n") },
		},
		Status:   func(item task.Task) string { return string(item.Status) },
		Priority: func(item task.Task) string { return string(item.Priority) },
		Sorters: map[string]collection.Sorter[task.Task]{
			SortTitle:     collection.ByString(func(item task.Task) string { return item.Title }),
			SortStatus:    collection.ByRank(func(item task.Task) int { return item.Status.Index() }),
			SortPriority:  collection.ByRank(priorityRank),
			SortStartDate: collection.ByTime(func(item task.Task) *time.Time { return item.StartDate }),
			SortDueDate:   collection.ByTime(func(item task.Task) *time.Time { return item.DueDate }),
			SortCreated:   collection.ByTime(func(item task.Task) *time.Time { return &item.CreatedAt }),
		},
	}
}

// priorityRank maps unknown priorities to a missing rank so they sort
// last in both directions.
func priorityRank(item task.Task) int {
	if !item.Priority.Valid() {
		return -1
	}
	return item.Priority.Rank()
}

// MemberFields is the collection strategy for members. The search
// term matches name, email, and role. The status filter applies to the
// member status; members have no priority.
func MemberFields() collection.Fields[task.Member] {
	return collection.Fields[task.Member]{
		Search: []func(task.Member) string{
			func(member task.Member) string { return member.Name },
			func(member task.Member) string { return member.Email },
			func(member task.Member) string { return member.Role },
		},
		Status: func(member task.Member) string { return string(member.Status) },
		Sorters: map[string]collection.Sorter[task.Member]{
			SortName:         collection.ByString(func(member task.Member) string { return member.Name }),
			SortEmail:        collection.ByString(func(member task.Member) string { return member.Email }),
			SortRole:         collection.ByString(func(member task.Member) string { return member.Role }),
			SortMemberStatus: collection.ByString(func(member task.Member) string { return string(member.Status) }),
			SortJoinDate:     collection.ByTime(func(member task.Member) *time.Time { return member.JoinDate }),
		},
	}
}

// TaskEngine returns a collection engine over tasks using matcher for
// search. A nil matcher is case-insensitive substring search.
func TaskEngine(matcher collection.Matcher) *collection.Engine[task.Task] {
	return collection.New(TaskFields()).WithMatcher(matcher)
}

// MemberEngine returns a collection engine over members.
func MemberEngine(matcher collection.Matcher) *collection.Engine[task.Member] {
	return collection.New(MemberFields()).WithMatcher(matcher)
}

// NextSortKey returns the key after current in keys, wrapping around.
// An unknown current key yields the first key.
func NextSortKey(keys []string, current string) string {
	if len(keys) == 0 {
		return ""
	}
	for index, key := range keys {
		if key == current {
			return keys[(index+1)%len(keys)]
		}
	}
	return keys[0]
}

// NextFilter cycles a status or priority filter through All and then
// each value in order.
func NextFilter[V ~string](values []V, current string) string {
	if current == "" || strings.EqualFold(current, collection.All) {
		if len(values) == 0 {
			return collection.All
		}
		return string(values[0])
	}
	for index, value := range values {
		if strings.EqualFold(string(value), current) {
			if index+1 < len(values) {
				return string(values[index+1])
			}
			return collection.All
		}
	}
	return collection.All
}

// SortLabel returns the header label for a sort key.
func SortLabel(key string) string {
	switch key {
	case SortDueDate:
		return "Due"
	case SortStartDate:
		return "Start"
	case SortCreated:
		return "Created"
	case SortJoinDate:
		return "Joined"
	}
	if key == "" {
		return "none"
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
