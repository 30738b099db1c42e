// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package selection tracks the focused row and current page of a
// paginated view. It never touches the records themselves: the owner
// reports the filtered count through [Controller.SetTotal] and reads
// back the page window and focus.
package selection

import "github.com/Galih066/lara-task/lib/collection"

// None is the focus value when no row is focused.
const None = -1

// Controller is the focus and page state of one list view. Not safe
// for concurrent use.
type Controller struct {
	page     int
	pageSize int
	total    int
	focused  int

	onActivate func(index int)
}

// New creates a controller on page 1 with nothing focused. A
// non-positive page size puts every record on one page.
func New(pageSize int) *Controller {
	return &Controller{page: 1, pageSize: pageSize, focused: None}
}

// OnActivate sets the callback Activate invokes with the absolute index
// of the focused record.
func (controller *Controller) OnActivate(callback func(index int)) {
	controller.onActivate = callback
}

// Page returns the current 1-based page.
func (controller *Controller) Page() int { return controller.page }

// PageSize returns the configured page size.
func (controller *Controller) PageSize() int { return controller.pageSize }

// Total returns the record count last reported by SetTotal.
func (controller *Controller) Total() int { return controller.total }

// TotalPages returns max(1, ceil(total/pageSize)).
func (controller *Controller) TotalPages() int {
	return collection.TotalPages(controller.total, controller.pageSize)
}

// Window returns the page window for the collection engine.
func (controller *Controller) Window() collection.Window {
	return collection.Window{Page: controller.page, PageSize: controller.pageSize}
}

// Focused returns the focused slot within the current page, or None.
func (controller *Controller) Focused() int { return controller.focused }

// FocusedIndex returns the absolute index of the focused record in the
// filtered sequence.
func (controller *Controller) FocusedIndex() (int, bool) {
	if controller.focused == None {
		return 0, false
	}
	return controller.offset() + controller.focused, true
}

// PageLen returns the number of records on the current page.
func (controller *Controller) PageLen() int {
	return controller.pageLen(controller.page)
}

func (controller *Controller) pageLen(page int) int {
	if controller.total == 0 || page < 1 || page > controller.TotalPages() {
		return 0
	}
	if controller.pageSize <= 0 {
		return controller.total
	}
	start := (page - 1) * controller.pageSize
	return min(controller.pageSize, controller.total-start)
}

func (controller *Controller) offset() int {
	if controller.pageSize <= 0 {
		return 0
	}
	return (controller.page - 1) * controller.pageSize
}

// SetTotal records the current filtered count and clamps the page and
// the focus to it. Called after every recomputation, including
// deletions. Focus clears when the clamp changes the page.
func (controller *Controller) SetTotal(count int) {
	if count < 0 {
		count = 0
	}
	controller.total = count
	previous := controller.page
	controller.page = controller.Window().Clamp(count).Page
	if controller.page != previous {
		controller.focused = None
		return
	}
	controller.clampFocus()
}

// SetPageSize changes the page size and returns to page 1.
func (controller *Controller) SetPageSize(pageSize int) {
	controller.pageSize = pageSize
	controller.Reset()
}

// Reset returns to page 1 with nothing focused. Views call it when the
// filter predicates change.
func (controller *Controller) Reset() {
	controller.page = 1
	controller.focused = None
}

// Focus sets the focused slot on the current page. Out-of-range slots
// clear the focus.
func (controller *Controller) Focus(slot int) {
	if slot < 0 || slot >= controller.PageLen() {
		controller.focused = None
		return
	}
	controller.focused = slot
}

// Next moves focus down one row. Past the last slot it enters the
// first slot of the following page when there is one, and otherwise
// stays put. Returns whether the focus moved.
func (controller *Controller) Next() bool {
	length := controller.PageLen()
	if length == 0 {
		return false
	}
	switch {
	case controller.focused == None:
		controller.focused = 0
	case controller.focused < length-1:
		controller.focused++
	case controller.page < controller.TotalPages():
		controller.page++
		controller.focused = 0
	default:
		return false
	}
	return true
}

// Previous moves focus up one row. Before the first slot it enters the
// last slot of the preceding page when there is one. With nothing
// focused it selects the last row of the page.
func (controller *Controller) Previous() bool {
	length := controller.PageLen()
	if length == 0 {
		return false
	}
	switch {
	case controller.focused == None:
		controller.focused = length - 1
	case controller.focused > 0:
		controller.focused--
	case controller.page > 1:
		controller.page--
		controller.focused = controller.PageLen() - 1
	default:
		return false
	}
	return true
}

// SetPage jumps to page and clears the focus. Pages outside
// [1, TotalPages] are clamped.
func (controller *Controller) SetPage(page int) {
	controller.page = collection.Window{Page: page, PageSize: controller.pageSize}.
		Clamp(controller.total).Page
	controller.focused = None
}

// NextPage advances one page. Returns false on the last page.
func (controller *Controller) NextPage() bool {
	if controller.page >= controller.TotalPages() {
		return false
	}
	controller.SetPage(controller.page + 1)
	return true
}

// PreviousPage goes back one page. Returns false on page 1.
func (controller *Controller) PreviousPage() bool {
	if controller.page <= 1 {
		return false
	}
	controller.SetPage(controller.page - 1)
	return true
}

// First jumps to page 1. The focused slot is kept, clamped to the
// page length.
func (controller *Controller) First() {
	controller.page = 1
	controller.clampFocus()
}

// Last jumps to the last page, keeping the focused slot clamped to
// its length.
func (controller *Controller) Last() {
	controller.page = controller.TotalPages()
	controller.clampFocus()
}

// Activate invokes the activation callback for the focused record.
// Returns false when nothing is focused.
func (controller *Controller) Activate() bool {
	index, ok := controller.FocusedIndex()
	if !ok {
		return false
	}
	if controller.onActivate != nil {
		controller.onActivate(index)
	}
	return true
}

func (controller *Controller) clampFocus() {
	if controller.focused == None {
		return
	}
	length := controller.PageLen()
	switch {
	case length == 0:
		controller.focused = None
	case controller.focused >= length:
		controller.focused = length - 1
	}
}
