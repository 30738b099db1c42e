// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package collection

// Page is one window of a record sequence.
type Page[T any] struct {
	// Items is the visible slice. Empty when the page number is out
	// of range.
	Items []T

	// Number is the 1-based page number that was requested.
	Number int

	// TotalPages is max(1, ceil(count/pageSize)).
	TotalPages int

	// Offset is the position of Items[0] in the full sequence.
	Offset int
}

// TotalPages returns max(1, ceil(count/pageSize)). A non-positive page
// size means "everything on one page".
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate returns items[(page-1)*pageSize : page*pageSize]. A page
// outside [1, TotalPages] yields an empty Items slice rather than an
// error. A non-positive page size returns every item on page 1.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := TotalPages(len(items), pageSize)
	result := Page[T]{Number: page, TotalPages: total, Items: []T{}}

	if page < 1 || page > total {
		return result
	}
	if pageSize <= 0 {
		result.Items = items[:len(items):len(items)]
		return result
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	if start >= len(items) {
		return result
	}
	// Full slice expression so appends by the caller cannot write
	// into the next page.
	result.Items = items[start:end:end]
	result.Offset = start
	return result
}

// Window is the current page and page size of a view. It is derived
// state: views store the page number and clamp it against the current
// filtered count before every render.
type Window struct {
	Page     int
	PageSize int
}

// Clamp returns the window with Page forced into [1, TotalPages].
func (window Window) Clamp(count int) Window {
	total := TotalPages(count, window.PageSize)
	if window.Page < 1 {
		window.Page = 1
	}
	if window.Page > total {
		window.Page = total
	}
	return window
}

// Reset returns the window moved back to page 1.
func (window Window) Reset() Window {
	window.Page = 1
	return window
}

// TotalPages returns the page count for count records.
func (window Window) TotalPages(count int) int {
	return TotalPages(count, window.PageSize)
}
