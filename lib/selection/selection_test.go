// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package selection

import "testing"

func controllerAt(t *testing.T, total, pageSize, page, focused int) *Controller {
	t.Helper()
	controller := New(pageSize)
	controller.SetTotal(total)
	controller.SetPage(page)
	controller.Focus(focused)
	if controller.Page() != page || controller.Focused() != focused {
		t.Fatalf("setup: page %d focus %d, want page %d focus %d",
			controller.Page(), controller.Focused(), page, focused)
	}
	return controller
}

func TestNextWrapsToFollowingPage(t *testing.T) {
	controller := controllerAt(t, 12, 5, 1, 4)
	if !controller.Next() {
		t.Fatal("Next() = false")
	}
	if controller.Page() != 2 || controller.Focused() != 0 {
		t.Errorf("after Next: page %d focus %d, want page 2 focus 0", controller.Page(), controller.Focused())
	}
	if index, _ := controller.FocusedIndex(); index != 5 {
		t.Errorf("FocusedIndex() = %d, want 5", index)
	}
}

func TestNextStopsOnLastPage(t *testing.T) {
	controller := controllerAt(t, 10, 5, 2, 4)
	if controller.Next() {
		t.Error("Next() on the final row = true")
	}
	if controller.Page() != 2 || controller.Focused() != 4 {
		t.Errorf("page %d focus %d, want page 2 focus 4", controller.Page(), controller.Focused())
	}
}

func TestPreviousWrapsToLastSlot(t *testing.T) {
	controller := controllerAt(t, 12, 5, 3, 0)
	if !controller.Previous() {
		t.Fatal("Previous() = false")
	}
	if controller.Page() != 2 || controller.Focused() != 4 {
		t.Errorf("page %d focus %d, want page 2 focus 4", controller.Page(), controller.Focused())
	}

	controller = controllerAt(t, 12, 5, 1, 0)
	if controller.Previous() {
		t.Error("Previous() on the first row = true")
	}
	if controller.Focused() != 0 {
		t.Errorf("focus = %d, want 0", controller.Focused())
	}
}

func TestNavigationVisitsEveryRowOnce(t *testing.T) {
	controller := New(4)
	controller.SetTotal(11)

	var visited []int
	for controller.Next() {
		index, _ := controller.FocusedIndex()
		visited = append(visited, index)
	}
	if len(visited) != 11 {
		t.Fatalf("visited %v, want 11 rows", visited)
	}
	for position, index := range visited {
		if index != position {
			t.Fatalf("visited %v, want 0..10 in order", visited)
		}
	}

	var back []int
	for controller.Previous() {
		index, _ := controller.FocusedIndex()
		back = append(back, index)
	}
	if len(back) != 10 || back[0] != 9 || back[9] != 0 {
		t.Errorf("backwards visited %v, want 9..0", back)
	}
}

func TestFromNoFocus(t *testing.T) {
	controller := New(5)
	controller.SetTotal(3)
	if controller.Focused() != None {
		t.Fatalf("initial focus = %d, want None", controller.Focused())
	}
	controller.Previous()
	if controller.Focused() != 2 {
		t.Errorf("Previous from None = %d, want 2", controller.Focused())
	}
	controller.Focus(None)
	controller.Next()
	if controller.Focused() != 0 {
		t.Errorf("Next from None = %d, want 0", controller.Focused())
	}
}

func TestEmptyCollection(t *testing.T) {
	controller := New(5)
	controller.SetTotal(0)
	if controller.Next() || controller.Previous() || controller.Activate() {
		t.Error("navigation on empty collection reported movement")
	}
	if controller.Page() != 1 || controller.TotalPages() != 1 {
		t.Errorf("page %d of %d, want 1 of 1", controller.Page(), controller.TotalPages())
	}
}

func TestPageChangeClearsFocus(t *testing.T) {
	controller := controllerAt(t, 12, 5, 1, 2)
	if !controller.NextPage() {
		t.Fatal("NextPage() = false")
	}
	if controller.Page() != 2 || controller.Focused() != None {
		t.Errorf("page %d focus %d, want page 2 focus None", controller.Page(), controller.Focused())
	}
	controller.SetPage(99)
	if controller.Page() != 3 {
		t.Errorf("SetPage(99) page = %d, want 3", controller.Page())
	}
	if controller.NextPage() {
		t.Error("NextPage() past the end = true")
	}
	controller.SetPage(1)
	if controller.PreviousPage() {
		t.Error("PreviousPage() on page 1 = true")
	}
}

func TestFirstAndLastClampFocus(t *testing.T) {
	controller := controllerAt(t, 12, 5, 1, 4)
	controller.Last()
	if controller.Page() != 3 || controller.Focused() != 1 {
		t.Errorf("Last(): page %d focus %d, want page 3 focus 1", controller.Page(), controller.Focused())
	}
	controller.First()
	if controller.Page() != 1 || controller.Focused() != 1 {
		t.Errorf("First(): page %d focus %d, want page 1 focus 1", controller.Page(), controller.Focused())
	}
}

func TestSetTotalClampsAfterDeletion(t *testing.T) {
	// Page 3 holds a single record; deleting it moves back to page 2
	// and the focus does not carry over to the new page.
	controller := controllerAt(t, 11, 5, 3, 0)
	controller.SetTotal(10)
	if controller.Page() != 2 {
		t.Errorf("page = %d, want 2", controller.Page())
	}
	if controller.Focused() != None {
		t.Errorf("focus = %d, want None after the page changed", controller.Focused())
	}

	// Deleting the last row of a page pulls the focus up.
	controller = controllerAt(t, 10, 5, 2, 4)
	controller.SetTotal(9)
	if controller.Page() != 2 || controller.Focused() != 3 {
		t.Errorf("page %d focus %d, want page 2 focus 3", controller.Page(), controller.Focused())
	}

	controller.SetTotal(0)
	if controller.Page() != 1 || controller.Focused() != None {
		t.Errorf("page %d focus %d after emptying, want 1 and None", controller.Page(), controller.Focused())
	}
}

func TestActivateReportsAbsoluteIndex(t *testing.T) {
	controller := controllerAt(t, 12, 5, 2, 3)
	activated := -1
	controller.OnActivate(func(index int) { activated = index })
	if !controller.Activate() {
		t.Fatal("Activate() = false")
	}
	if activated != 8 {
		t.Errorf("activated index %d, want 8", activated)
	}
	controller.Focus(None)
	if controller.Activate() {
		t.Error("Activate() with no focus = true")
	}
}

func TestUnboundedPageSize(t *testing.T) {
	controller := New(0)
	controller.SetTotal(7)
	if controller.TotalPages() != 1 || controller.PageLen() != 7 {
		t.Errorf("TotalPages %d PageLen %d, want 1 and 7", controller.TotalPages(), controller.PageLen())
	}
	controller.Focus(6)
	if controller.Next() {
		t.Error("Next() past the only page = true")
	}
}

func TestResetAndPageSize(t *testing.T) {
	controller := controllerAt(t, 30, 5, 4, 2)
	controller.Reset()
	if controller.Page() != 1 || controller.Focused() != None {
		t.Errorf("Reset: page %d focus %d", controller.Page(), controller.Focused())
	}
	controller.SetPageSize(10)
	if controller.TotalPages() != 3 || controller.Window().PageSize != 10 {
		t.Errorf("SetPageSize(10): %d pages, window %+v", controller.TotalPages(), controller.Window())
	}
}
