package tree

import (
	"reflect"
	"testing"
	"time"

	"driftboard/internal/model"
)

var projNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func TestProject_IdentityWhenUnfiltered(t *testing.T) {
	in := sampleTree()
	out := Project(in, Filters{Status: StatusAll, Priority: PriorityAll, Due: DueAll, Search: ""}, Sort{})
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("unfiltered projection is not the identity")
	}
	// Zero-value filters behave the same as the explicit "all" constants.
	out = Project(in, Filters{}, Sort{})
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("zero-value projection is not the identity")
	}
}

func TestProject_DoesNotMutateSource(t *testing.T) {
	in := sampleTree()
	snapshot := model.CloneTasks(in)
	_ = Project(in, Filters{Status: StatusCompleted}, Sort{Key: SortAlpha})
	if !reflect.DeepEqual(in, snapshot) {
		t.Fatalf("projection mutated the backing tree")
	}
}

// Scenario: a completed child keeps its non-matching parent visible, with
// the parent's subtasks pruned to the survivors.
func TestProject_AncestorPreserving(t *testing.T) {
	in := Normalize([]model.Task{
		{ID: "root", Text: "Root", Done: false, Subtasks: []model.Task{
			{ID: "child", Text: "Child", Done: true},
			{ID: "other", Text: "Other", Done: false},
		}},
	})

	out := Project(in, Filters{Status: StatusCompleted}, Sort{})
	if len(out) != 1 || out[0].ID != "root" {
		t.Fatalf("expected root retained as ancestor-of-match, got %v", out)
	}
	if len(out[0].Subtasks) != 1 || out[0].Subtasks[0].ID != "child" {
		t.Fatalf("expected subtasks pruned to the match, got %+v", out[0].Subtasks)
	}
}

func TestProject_StatusActive(t *testing.T) {
	in := Normalize([]model.Task{
		{ID: "a", Text: "open"},
		{ID: "b", Text: "closed", Done: true},
	})
	out := Project(in, Filters{Status: StatusActive}, Sort{})
	if len(out) != 1 || out[0].ID != "a" {
		t.Fatalf("expected only the active task, got %v", rootIDs(out))
	}
}

func TestProject_PredicatesAreANDed(t *testing.T) {
	in := Normalize([]model.Task{
		{ID: "a", Text: "urgent open", Priority: model.PriorityHigh},
		{ID: "b", Text: "urgent done", Priority: model.PriorityHigh, Done: true},
		{ID: "c", Text: "casual open", Priority: model.PriorityLow},
	})
	out := Project(in, Filters{Status: StatusActive, Priority: "high"}, Sort{})
	if len(out) != 1 || out[0].ID != "a" {
		t.Fatalf("expected only the active high task, got %v", rootIDs(out))
	}
}

func TestProject_SearchCoversDescription(t *testing.T) {
	in := Normalize([]model.Task{
		{ID: "a", Text: "Pack bags", Description: "passport, charger"},
		{ID: "b", Text: "Call bank"},
	})
	cases := []struct {
		search string
		want   []string
	}{
		{"pack", []string{"a"}},
		{"PASSPORT", []string{"a"}},
		{"bank", []string{"b"}},
		{"nothing-matches", []string{}},
	}
	for _, tc := range cases {
		out := Project(in, Filters{Search: tc.search}, Sort{})
		got := rootIDs(out)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("search %q: expected %v, got %v", tc.search, tc.want, got)
		}
	}
}

func TestProject_DueBuckets(t *testing.T) {
	in := Normalize([]model.Task{
		{ID: "past", Text: "past", DueDate: "2024-06-01"},
		{ID: "today", Text: "today", DueDate: "2024-06-15"},
		{ID: "soon", Text: "soon", DueDate: "2024-06-20"},
		{ID: "edge", Text: "edge of week", DueDate: "2024-06-22"},
		{ID: "far", Text: "far", DueDate: "2024-08-01"},
		{ID: "undated", Text: "undated"},
	})
	cases := []struct {
		due  DueFilter
		want []string
	}{
		{DueOverdue, []string{"past"}},
		{DueToday, []string{"today"}},
		{DueWeek, []string{"soon", "edge"}},
		{DueFuture, []string{"far"}},
	}
	for _, tc := range cases {
		out := Project(in, Filters{Due: tc.due, Now: projNow}, Sort{})
		if got := rootIDs(out); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("due %q: expected %v, got %v", tc.due, tc.want, got)
		}
	}
}

// Scenario: due-date ascending puts dated tasks first in date order and
// undated tasks last.
func TestProject_SortDueUndatedLast(t *testing.T) {
	in := Normalize([]model.Task{
		{ID: "a", Text: "a", DueDate: "2024-01-05"},
		{ID: "b", Text: "b"},
		{ID: "c", Text: "c", DueDate: "2024-01-01"},
	})
	out := Project(in, Filters{}, Sort{Key: SortDue})
	if got := rootIDs(out); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("expected [c a b], got %v", got)
	}
}

func TestProject_SortPriorityStableTies(t *testing.T) {
	in := Normalize([]model.Task{
		{ID: "m1", Text: "m1", Priority: model.PriorityMedium},
		{ID: "h1", Text: "h1", Priority: model.PriorityHigh},
		{ID: "m2", Text: "m2", Priority: model.PriorityMedium},
		{ID: "u1", Text: "u1"},
		{ID: "l1", Text: "l1", Priority: model.PriorityLow},
		{ID: "m3", Text: "m3", Priority: model.PriorityMedium},
	})
	out := Project(in, Filters{}, Sort{Key: SortPriority})
	want := []string{"h1", "m1", "m2", "m3", "l1", "u1"}
	if got := rootIDs(out); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestProject_SortAppliesInEverySiblingGroup(t *testing.T) {
	in := Normalize([]model.Task{
		{ID: "p", Text: "zeta", Subtasks: []model.Task{
			{ID: "c2", Text: "banana"},
			{ID: "c1", Text: "apple"},
		}},
		{ID: "q", Text: "alpha"},
	})
	out := Project(in, Filters{}, Sort{Key: SortAlpha})
	if got := rootIDs(out); !reflect.DeepEqual(got, []string{"q", "p"}) {
		t.Fatalf("expected roots [q p], got %v", got)
	}
	p, _ := Find(out, "p")
	if got := rootIDs(p.Subtasks); !reflect.DeepEqual(got, []string{"c1", "c2"}) {
		t.Fatalf("expected nested siblings sorted [c1 c2], got %v", got)
	}
}

func TestProject_SortDescending(t *testing.T) {
	in := Normalize([]model.Task{
		{ID: "a", Text: "apple"},
		{ID: "b", Text: "banana"},
		{ID: "c", Text: "cherry"},
	})
	out := Project(in, Filters{}, Sort{Key: SortAlpha, Desc: true})
	if got := rootIDs(out); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Fatalf("expected [c b a], got %v", got)
	}
}

func TestProject_FilterThenSort(t *testing.T) {
	in := Normalize([]model.Task{
		{ID: "b", Text: "banana", Done: true},
		{ID: "d", Text: "date"},
		{ID: "a", Text: "apple"},
	})
	out := Project(in, Filters{Status: StatusActive}, Sort{Key: SortAlpha})
	if got := rootIDs(out); !reflect.DeepEqual(got, []string{"a", "d"}) {
		t.Fatalf("expected [a d], got %v", got)
	}
}
