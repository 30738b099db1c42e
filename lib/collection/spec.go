// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"fmt"
	"strings"
)

// All is the filter sentinel that disables a status or priority
// filter. An empty filter value means the same thing.
const All = "all"

// Direction is the sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending" in
// any case. An empty string is Ascending.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q (want asc or desc)", value)
}

// Toggle returns the opposite direction.
func (direction Direction) Toggle() Direction {
	if direction == Descending {
		return Ascending
	}
	return Descending
}

// Indicator returns the arrow shown next to the active sort column.
func (direction Direction) Indicator() string {
	if direction == Descending {
		return "▼"
	}
	return "▲"
}

// Spec is the transient filter and sort state of one view. The zero
// value matches everything and leaves input order alone.
type Spec struct {
	// SearchTerm is matched case-insensitively against every
	// searchable text field. Empty disables the search predicate.
	SearchTerm string

	// StatusFilter must equal the record's status exactly, unless it
	// is empty or All.
	StatusFilter string

	// PriorityFilter must equal the record's priority ignoring case,
	// unless it is empty or All.
	PriorityFilter string

	// SortKey names one of the engine's sorters. Empty or unknown
	// keys keep the filtered order.
	SortKey string

	SortDirection Direction
}

// FilterChanged reports whether the predicates differ between two
// specs. A view resets to its first page when this is true; a sort
// change alone keeps the current page.
func (spec Spec) FilterChanged(other Spec) bool {
	return spec.SearchTerm != other.SearchTerm ||
		normalizeFilter(spec.StatusFilter) != normalizeFilter(other.StatusFilter) ||
		normalizeFilter(spec.PriorityFilter) != normalizeFilter(other.PriorityFilter)
}

// ClearFilters drops the search term and both filters, keeping the
// sort order.
func (spec *Spec) ClearFilters() {
	spec.SearchTerm = ""
	spec.StatusFilter = All
	spec.PriorityFilter = All
}

// Filtering reports whether any predicate is active.
func (spec Spec) Filtering() bool {
	return spec.SearchTerm != "" || !isAll(spec.StatusFilter) || !isAll(spec.PriorityFilter)
}

func isAll(value string) bool {
	return value == "" || strings.EqualFold(value, All)
}

func normalizeFilter(value string) string {
	if isAll(value) {
		return All
	}
	return value
}
