// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MemberStatus is the account state of an organization member.
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
)

// Member is a person in the organization. Members share the generic
// list machinery with tasks: they are searched by name and email,
// filtered by status, and sorted by name or join date.
type Member struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email,omitempty"`
	Role     string       `json:"role,omitempty"`
	Status   MemberStatus `json:"status"`
	JoinDate *time.Time   `json:"join_date,omitempty"`
}

// Validate checks that the member has an identity, a name, and a known
// status.
func (member *Member) Validate() error {
	if member.ID == "" {
		return errors.New("member: id is required")
	}
	if strings.TrimSpace(member.Name) == "" {
		return fmt.Errorf("member %s: name is required", member.ID)
	}
	switch member.Status {
	case MemberActive, MemberInactive:
	default:
		return fmt.Errorf("member %s: unknown status %q", member.ID, member.Status)
	}
	if member.Email != "" && !strings.Contains(member.Email, "@") {
		return fmt.Errorf("member %s: malformed email %q", member.ID, member.Email)
	}
	return nil
}

// Ref returns the UserRef form of the member for task assignment.
func (member Member) Ref() UserRef {
	return UserRef{ID: member.ID, Name: member.Name}
}
