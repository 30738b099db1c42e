// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"fmt"
	"slices"
	"testing"
	"time"
)

// record is a minimal item with the fields the engine cares about.
type record struct {
	id       string
	title    string
	body     string
	status   string
	priority string
	rank     int
	due      *time.Time
}

func day(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func testEngine() *Engine[record] {
	return New(Fields[record]{
		Search: []func(record) string{
			func(item record) string { return item.title },
			func(item record) string { return item.body },
		},
		Status:   func(item record) string { return item.status },
		Priority: func(item record) string { return item.priority },
		Sorters: map[string]Sorter[record]{
			"title":    ByString(func(item record) string { return item.title }),
			"due":      ByTime(func(item record) *time.Time { return item.due }),
			"priority": ByRank(func(item record) int { return item.rank }),
		},
	})
}

func testRecords() []record {
	return []record{
		{id: "1", title: "Draft budget", body: "Quarterly numbers", status: "todo", priority: "high", rank: 0, due: day("2024-05-03")},
		{id: "2", title: "Review contract", body: "Legal pass", status: "review", priority: "low", rank: 2},
		{id: "3", title: "Ship invoice", body: "Budget overrun", status: "todo", priority: "medium", rank: 1, due: day("2024-05-01")},
		{id: "4", title: "archive files", status: "done", priority: "high", rank: 0, due: day("2024-04-20")},
		{id: "5", title: "Book venue", status: "in_progress", priority: "Low", rank: 2},
	}
}

func ids(items []record) []string {
	result := make([]string, len(items))
	for index, item := range items {
		result[index] = item.id
	}
	return result
}

func TestFilterSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	engine := testEngine()
	got := ids(engine.Filter(testRecords(), Spec{SearchTerm: "BUDGET"}))
	want := []string{"1", "3"}
	if !slices.Equal(got, want) {
		t.Errorf("search BUDGET = %v, want %v", got, want)
	}
}

func TestFilterStatusAndPriority(t *testing.T) {
	engine := testEngine()
	tests := []struct {
		name string
		spec Spec
		want []string
	}{
		{"zero spec matches all", Spec{}, []string{"1", "2", "3", "4", "5"}},
		{"all sentinel", Spec{StatusFilter: All, PriorityFilter: All}, []string{"1", "2", "3", "4", "5"}},
		{"status exact", Spec{StatusFilter: "todo"}, []string{"1", "3"}},
		{"status is case-sensitive", Spec{StatusFilter: "TODO"}, []string{}},
		{"priority ignores case", Spec{PriorityFilter: "LOW"}, []string{"2", "5"}},
		{"conjunction", Spec{StatusFilter: "todo", PriorityFilter: "high"}, []string{"1"}},
		{"conjunction with search", Spec{SearchTerm: "i", StatusFilter: "todo", PriorityFilter: "medium"}, []string{"3"}},
		{"no match", Spec{SearchTerm: "nothing like this"}, []string{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ids(engine.Filter(testRecords(), test.spec))
			if !slices.Equal(got, test.want) {
				t.Errorf("Filter(%+v) = %v, want %v", test.spec, got, test.want)
			}
		})
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	engine := testEngine()
	specs := []Spec{
		{},
		{SearchTerm: "b"},
		{StatusFilter: "todo"},
		{SearchTerm: "e", PriorityFilter: "low"},
	}
	for _, spec := range specs {
		once := engine.Filter(testRecords(), spec)
		twice := engine.Filter(once, spec)
		if !slices.Equal(ids(once), ids(twice)) {
			t.Errorf("Filter not idempotent for %+v: %v then %v", spec, ids(once), ids(twice))
		}
	}
}

func TestFilterIgnoresPredicatesTheRecordTypeLacks(t *testing.T) {
	engine := New(Fields[record]{
		Search: []func(record) string{func(item record) string { return item.title }},
	})
	got := engine.Filter(testRecords(), Spec{StatusFilter: "todo", PriorityFilter: "high"})
	if len(got) != 5 {
		t.Errorf("Filter with no status/priority accessors kept %d records, want 5", len(got))
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	engine := testEngine()
	input := testRecords()
	before := ids(input)
	engine.Filter(input, Spec{StatusFilter: "todo"})
	engine.Sort(input, "title", Descending)
	if !slices.Equal(ids(input), before) {
		t.Errorf("input reordered to %v", ids(input))
	}
}

func TestSortStringAndDirection(t *testing.T) {
	engine := testEngine()
	ascending := ids(engine.Sort(testRecords(), "title", Ascending))
	wantAscending := []string{"4", "5", "1", "2", "3"}
	if !slices.Equal(ascending, wantAscending) {
		t.Errorf("title asc = %v, want %v", ascending, wantAscending)
	}
	descending := ids(engine.Sort(testRecords(), "title", Descending))
	wantDescending := []string{"3", "2", "1", "5", "4"}
	if !slices.Equal(descending, wantDescending) {
		t.Errorf("title desc = %v, want %v", descending, wantDescending)
	}
}

func TestSortMissingDatesLastInBothDirections(t *testing.T) {
	engine := testEngine()
	ascending := ids(engine.Sort(testRecords(), "due", Ascending))
	wantAscending := []string{"4", "3", "1", "2", "5"}
	if !slices.Equal(ascending, wantAscending) {
		t.Errorf("due asc = %v, want %v", ascending, wantAscending)
	}
	descending := ids(engine.Sort(testRecords(), "due", Descending))
	wantDescending := []string{"1", "3", "4", "2", "5"}
	if !slices.Equal(descending, wantDescending) {
		t.Errorf("due desc = %v, want %v", descending, wantDescending)
	}
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	engine := testEngine()
	got := ids(engine.Sort(testRecords(), "color", Ascending))
	want := ids(testRecords())
	if !slices.Equal(got, want) {
		t.Errorf("unknown key reordered to %v", got)
	}
}

// permutations returns every ordering of items.
func permutations(items []record) [][]record {
	if len(items) <= 1 {
		return [][]record{slices.Clone(items)}
	}
	var result [][]record
	for index := range items {
		rest := slices.Concat(items[:index], items[index+1:])
		for _, tail := range permutations(rest) {
			result = append(result, append([]record{items[index]}, tail...))
		}
	}
	return result
}

func TestSortIsStableForEveryTiePermutation(t *testing.T) {
	engine := testEngine()
	ties := []record{
		{id: "a", rank: 1},
		{id: "b", rank: 1},
		{id: "c", rank: 1},
		{id: "d", rank: 1},
	}
	for _, direction := range []Direction{Ascending, Descending} {
		for _, input := range permutations(ties) {
			mixed := append([]record{{id: "first", rank: 0}}, input...)
			mixed = append(mixed, record{id: "last", rank: 2})
			sorted := engine.Sort(mixed, "priority", direction)

			var tieOrder []string
			for _, item := range sorted {
				if item.rank == 1 {
					tieOrder = append(tieOrder, item.id)
				}
			}
			if !slices.Equal(tieOrder, ids(input)) {
				t.Fatalf("%s: ties reordered from %v to %v", direction, ids(input), tieOrder)
			}
		}
	}
}

func TestPaginateBounds(t *testing.T) {
	items := testRecords()
	tests := []struct {
		page, pageSize int
		wantIDs        []string
		wantTotal      int
	}{
		{1, 2, []string{"1", "2"}, 3},
		{3, 2, []string{"5"}, 3},
		{4, 2, []string{}, 3},
		{0, 2, []string{}, 3},
		{1, 10, []string{"1", "2", "3", "4", "5"}, 1},
		{1, 0, []string{"1", "2", "3", "4", "5"}, 1},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("page%d_size%d", test.page, test.pageSize), func(t *testing.T) {
			page := Paginate(items, test.page, test.pageSize)
			if !slices.Equal(ids(page.Items), test.wantIDs) {
				t.Errorf("Items = %v, want %v", ids(page.Items), test.wantIDs)
			}
			if page.TotalPages != test.wantTotal {
				t.Errorf("TotalPages = %d, want %d", page.TotalPages, test.wantTotal)
			}
		})
	}
}

func TestPaginateEmptyHasOnePage(t *testing.T) {
	page := Paginate([]record{}, 1, 5)
	if page.TotalPages != 1 {
		t.Errorf("TotalPages for empty input = %d, want 1", page.TotalPages)
	}
	if len(page.Items) != 0 {
		t.Errorf("Items for empty input = %v", page.Items)
	}
}

func TestPaginateCoversEveryItemOnce(t *testing.T) {
	for count := 0; count <= 12; count++ {
		items := make([]record, count)
		for index := range items {
			items[index] = record{id: fmt.Sprint(index)}
		}
		for pageSize := 1; pageSize <= 6; pageSize++ {
			total := TotalPages(count, pageSize)
			var rebuilt []string
			for page := 1; page <= total; page++ {
				rebuilt = append(rebuilt, ids(Paginate(items, page, pageSize).Items)...)
			}
			if !slices.Equal(rebuilt, ids(items)) {
				t.Errorf("count=%d size=%d: pages rebuild %v, want %v", count, pageSize, rebuilt, ids(items))
			}
		}
	}
}

func TestPageItemsCannotOverwriteNextPage(t *testing.T) {
	items := testRecords()
	page := Paginate(items, 1, 2)
	_ = append(page.Items, record{id: "intruder"})
	if items[2].id != "3" {
		t.Errorf("appending to page 1 overwrote items[2] with %q", items[2].id)
	}
}

func TestWindowClampAfterRemovingLastPageItem(t *testing.T) {
	window := Window{Page: 3, PageSize: 2}
	// Five records: page 3 holds only the fifth. Remove it.
	clamped := window.Clamp(4)
	if clamped.Page != 2 {
		t.Errorf("Clamp(4).Page = %d, want 2", clamped.Page)
	}
	if clamped := window.Clamp(0); clamped.Page != 1 {
		t.Errorf("Clamp(0).Page = %d, want 1", clamped.Page)
	}
	if clamped := (Window{Page: -4, PageSize: 2}).Clamp(5); clamped.Page != 1 {
		t.Errorf("negative page clamped to %d, want 1", clamped.Page)
	}
}

func TestRunComposesPipeline(t *testing.T) {
	engine := testEngine()
	spec := Spec{StatusFilter: All, SortKey: "title", SortDirection: Ascending}
	result := engine.Run(testRecords(), spec, Window{Page: 9, PageSize: 2})
	if result.Window.Page != 3 {
		t.Errorf("Window.Page = %d, want clamp to 3", result.Window.Page)
	}
	if got := ids(result.Page.Items); !slices.Equal(got, []string{"3"}) {
		t.Errorf("last page = %v, want [3]", got)
	}
	if len(result.Filtered) != 5 {
		t.Errorf("Filtered has %d records, want 5", len(result.Filtered))
	}
}

func TestWithMatcher(t *testing.T) {
	prefix := func(text, term string) bool {
		return len(text) >= len(term) && text[:len(term)] == term
	}
	engine := testEngine().WithMatcher(prefix)
	got := ids(engine.Filter(testRecords(), Spec{SearchTerm: "Re"}))
	if !slices.Equal(got, []string{"2"}) {
		t.Errorf("prefix matcher = %v, want [2]", got)
	}
	restored := engine.WithMatcher(nil)
	if got := ids(restored.Filter(testRecords(), Spec{SearchTerm: "budget"})); len(got) != 2 {
		t.Errorf("nil matcher should restore substring search, got %v", got)
	}
}

func TestSpecFilterChanged(t *testing.T) {
	base := Spec{SortKey: "title"}
	if base.FilterChanged(Spec{StatusFilter: All, SortKey: "due"}) {
		t.Error("empty and All status filters should be equivalent, and sort changes are not filter changes")
	}
	if !base.FilterChanged(Spec{SearchTerm: "x"}) {
		t.Error("search change not detected")
	}
	spec := Spec{SearchTerm: "x", StatusFilter: "todo", SortKey: "due"}
	spec.ClearFilters()
	if spec.Filtering() || spec.SortKey != "due" {
		t.Errorf("ClearFilters left %+v", spec)
	}
}

func TestParseDirection(t *testing.T) {
	for input, want := range map[string]Direction{"": Ascending, "ASC": Ascending, "descending": Descending} {
		got, err := ParseDirection(input)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection accepted sideways")
	}
}
