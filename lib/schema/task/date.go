// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for start, due, and join
// dates in snapshots and form input.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date ("2024-05-01") or an RFC 3339
// timestamp. An empty string, "null", or whitespace returns nil with no
// error: absent dates are a normal state, not a parse failure.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "null" {
		return nil, nil
	}
	if parsed, err := time.Parse(DateLayout, value); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: expected YYYY-MM-DD or RFC 3339", value)
	}
	return &parsed, nil
}

// FormatDate renders a date pointer as YYYY-MM-DD, or "" when nil.
func FormatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(DateLayout)
}

// SameDay reports whether two times fall on the same calendar day in
// the location of a.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
