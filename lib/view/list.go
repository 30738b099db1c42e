// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"fmt"

	"github.com/Galih066/lara-task/lib/collection"
	"github.com/Galih066/lara-task/lib/selection"
)

// Pager is the state of the pagination controls under a list.
type Pager struct {
	Page       int
	TotalPages int

	// HasPrevious and HasNext enable the previous/next controls.
	HasPrevious bool
	HasNext     bool

	// From and To are the 1-based positions of the first and last
	// visible record. Both are zero when the page is empty.
	From  int
	To    int
	Total int
}

// NewPager derives the control state from a page of total records.
func NewPager[T any](page collection.Page[T], total int) Pager {
	pager := Pager{
		Page:        page.Number,
		TotalPages:  page.TotalPages,
		HasPrevious: page.Number > 1,
		HasNext:     page.Number < page.TotalPages,
		Total:       total,
	}
	if len(page.Items) > 0 {
		pager.From = page.Offset + 1
		pager.To = page.Offset + len(page.Items)
	}
	return pager
}

// Summary is the one-line pager text, e.g. "11-20 of 42 · page 2/5".
func (pager Pager) Summary() string {
	if pager.Total == 0 {
		return "no results"
	}
	return fmt.Sprintf("%d-%d of %d · page %d/%d", pager.From, pager.To, pager.Total, pager.Page, pager.TotalPages)
}

// Row is one visible record.
type Row[T any] struct {
	Item T

	// Index is the position in the filtered sequence.
	Index   int
	Focused bool
}

// List is everything a table surface needs to render one frame.
type List[T any] struct {
	Rows  []Row[T]
	Pager Pager
	Spec  collection.Spec

	// Filtering is true when any predicate is active; surfaces use it
	// to tell "no records" from "no matches".
	Filtering bool
}

// Empty reports whether the page has no rows.
func (list List[T]) Empty() bool { return len(list.Rows) == 0 }

// Focused returns the focused row.
func (list List[T]) Focused() (Row[T], bool) {
	for _, row := range list.Rows {
		if row.Focused {
			return row, true
		}
	}
	return Row[T]{}, false
}

// BuildList runs the engine over items, reports the filtered count to
// the controller so its page and focus stay in range, and returns the
// visible rows. The full filtered sequence is returned alongside so the
// caller can resolve activated indices.
func BuildList[T any](engine *collection.Engine[T], items []T, spec collection.Spec, controller *selection.Controller) (List[T], []T) {
	result := engine.Run(items, spec, controller.Window())
	controller.SetTotal(len(result.Filtered))

	page := result.Page
	if page.Number != controller.Page() {
		page = collection.Paginate(result.Filtered, controller.Page(), controller.PageSize())
	}

	list := List[T]{
		Rows:      make([]Row[T], len(page.Items)),
		Pager:     NewPager(page, len(result.Filtered)),
		Spec:      spec,
		Filtering: spec.Filtering(),
	}
	for slot, item := range page.Items {
		list.Rows[slot] = Row[T]{
			Item:    item,
			Index:   page.Offset + slot,
			Focused: slot == controller.Focused(),
		}
	}
	return list, result.Filtered
}
