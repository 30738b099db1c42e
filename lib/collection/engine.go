// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"slices"
	"strings"
	"time"
)

// Matcher decides whether a search term matches one text field. The
// engine calls it once per searchable field until one matches.
type Matcher func(text, term string) bool

// Substring is the default Matcher: case-insensitive substring
// containment.
func Substring(text, term string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(term))
}

// Fields is the per-record-type strategy the engine reads records
// through.
type Fields[T any] struct {
	// Search extracts the text fields the search term is matched
	// against (title, description, name, email, ...).
	Search []func(T) string

	// Status returns the record's status. Nil means the record type
	// has no status and StatusFilter is ignored.
	Status func(T) string

	// Priority returns the record's priority. Nil means the record
	// type has no priority and PriorityFilter is ignored.
	Priority func(T) string

	// Sorters maps sort key names to comparators.
	Sorters map[string]Sorter[T]
}

// Engine runs the filter, sort, and paginate pipeline for one record
// type.
type Engine[T any] struct {
	fields  Fields[T]
	matcher Matcher
}

// New creates an engine using case-insensitive substring search.
func New[T any](fields Fields[T]) *Engine[T] {
	return &Engine[T]{fields: fields, matcher: Substring}
}

// WithMatcher returns a copy of the engine that uses matcher for the
// search predicate. A nil matcher restores Substring.
func (engine *Engine[T]) WithMatcher(matcher Matcher) *Engine[T] {
	if matcher == nil {
		matcher = Substring
	}
	return &Engine[T]{fields: engine.fields, matcher: matcher}
}

// SortKeys returns the registered sort key names in lexical order.
func (engine *Engine[T]) SortKeys() []string {
	keys := make([]string, 0, len(engine.fields.Sorters))
	for name := range engine.fields.Sorters {
		keys = append(keys, name)
	}
	slices.Sort(keys)
	return keys
}

// HasSortKey reports whether key names a registered sorter.
func (engine *Engine[T]) HasSortKey(key string) bool {
	_, exists := engine.fields.Sorters[key]
	return exists
}

// Filter returns the records satisfying every active predicate of
// spec, in input order. The result never aliases items.
func (engine *Engine[T]) Filter(items []T, spec Spec) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if engine.Matches(item, spec) {
			result = append(result, item)
		}
	}
	return result
}

// Matches reports whether a single record satisfies spec. The three
// predicates are a plain conjunction.
func (engine *Engine[T]) Matches(item T, spec Spec) bool {
	if !isAll(spec.StatusFilter) && engine.fields.Status != nil {
		if engine.fields.Status(item) != spec.StatusFilter {
			return false
		}
	}
	if !isAll(spec.PriorityFilter) && engine.fields.Priority != nil {
		if !strings.EqualFold(engine.fields.Priority(item), spec.PriorityFilter) {
			return false
		}
	}
	if spec.SearchTerm != "" {
		for _, field := range engine.fields.Search {
			if engine.matcher(field(item), spec.SearchTerm) {
				return true
			}
		}
		return false
	}
	return true
}

// Sort returns a stably sorted copy of items. Records that compare
// equal under the key keep their input order. An unknown key returns
// an unsorted copy.
func (engine *Engine[T]) Sort(items []T, key string, direction Direction) []T {
	result := slices.Clone(items)
	if result == nil {
		result = []T{}
	}
	sorter, exists := engine.fields.Sorters[key]
	if !exists {
		return result
	}
	slices.SortStableFunc(result, func(a, b T) int {
		return sorter.Compare(a, b, direction)
	})
	return result
}

// Result is one pass through the whole pipeline.
type Result[T any] struct {
	// Filtered holds every record that passed the predicates, sorted.
	Filtered []T

	// Page is the slice of Filtered visible in the clamped window.
	Page Page[T]

	// Window is the input window clamped to the filtered count.
	Window Window
}

// Run filters, sorts, clamps the window to the filtered count, and
// paginates.
func (engine *Engine[T]) Run(items []T, spec Spec, window Window) Result[T] {
	filtered := engine.Sort(engine.Filter(items, spec), spec.SortKey, spec.SortDirection)
	window = window.Clamp(len(filtered))
	return Result[T]{
		Filtered: filtered,
		Page:     Paginate(filtered, window.Page, window.PageSize),
		Window:   window,
	}
}

// Sorter orders two records by one field. Records whose field is
// missing (empty string, nil date) sort after every present value in
// both directions, and compare equal to each other so their input
// order survives.
type Sorter[T any] struct {
	compare func(a, b T) int
	missing func(item T) bool
}

// Compare applies the sorter in the given direction.
func (sorter Sorter[T]) Compare(a, b T, direction Direction) int {
	aMissing := sorter.missing != nil && sorter.missing(a)
	bMissing := sorter.missing != nil && sorter.missing(b)
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return 1
	case bMissing:
		return -1
	}
	result := sorter.compare(a, b)
	if direction == Descending {
		return -result
	}
	return result
}

// ByString orders records lexicographically by a text field, ignoring
// case. Empty values are missing.
func ByString[T any](extract func(T) string) Sorter[T] {
	return Sorter[T]{
		compare: func(a, b T) int {
			return strings.Compare(strings.ToLower(extract(a)), strings.ToLower(extract(b)))
		},
		missing: func(item T) bool { return extract(item) == "" },
	}
}

// ByTime orders records chronologically. Nil and zero times are
// missing.
func ByTime[T any](extract func(T) *time.Time) Sorter[T] {
	return Sorter[T]{
		compare: func(a, b T) int {
			return extract(a).Compare(*extract(b))
		},
		missing: func(item T) bool {
			value := extract(item)
			return value == nil || value.IsZero()
		},
	}
}

// ByRank orders records by an integer rank, lowest first. Negative
// ranks are missing.
func ByRank[T any](extract func(T) int) Sorter[T] {
	return Sorter[T]{
		compare: func(a, b T) int {
			return extract(a) - extract(b)
		},
		missing: func(item T) bool { return extract(item) < 0 },
	}
}
