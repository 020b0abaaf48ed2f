package tree

import (
	"reflect"
	"testing"

	"driftboard/internal/model"
)

func TestGroupByCategory(t *testing.T) {
	in := Normalize([]model.Task{
		{ID: "a", Text: "a", Category: "work"},
		{ID: "b", Text: "b"},
		{ID: "c", Text: "c", Category: "home"},
		{ID: "d", Text: "d", Category: "work"},
		{ID: "e", Text: "e", Category: "  "}, // whitespace counts as no category
	})

	groups := GroupByCategory(in)

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	if !reflect.DeepEqual(names, []string{"home", "work", UncategorizedBucket}) {
		t.Fatalf("expected buckets [home work %s], got %v", UncategorizedBucket, names)
	}

	byName := map[string][]string{}
	for _, g := range groups {
		byName[g.Name] = rootIDs(g.Tasks)
	}
	if !reflect.DeepEqual(byName["work"], []string{"a", "d"}) {
		t.Fatalf("work bucket: expected [a d], got %v", byName["work"])
	}
	if !reflect.DeepEqual(byName["home"], []string{"c"}) {
		t.Fatalf("home bucket: expected [c], got %v", byName["home"])
	}
	if !reflect.DeepEqual(byName[UncategorizedBucket], []string{"b", "e"}) {
		t.Fatalf("uncategorized bucket: expected [b e], got %v", byName[UncategorizedBucket])
	}
}

func TestGroupByCategory_UncategorizedAlwaysExists(t *testing.T) {
	in := Normalize([]model.Task{{ID: "a", Text: "a", Category: "work"}})
	groups := GroupByCategory(in)
	last := groups[len(groups)-1]
	if last.Name != UncategorizedBucket {
		t.Fatalf("expected trailing %s bucket, got %q", UncategorizedBucket, last.Name)
	}
	if len(last.Tasks) != 0 {
		t.Fatalf("expected empty reserved bucket, got %v", rootIDs(last.Tasks))
	}
}

func TestGroupByCategory_DoesNotMutate(t *testing.T) {
	in := sampleTree()
	snapshot := model.CloneTasks(in)
	_ = GroupByCategory(in)
	if !reflect.DeepEqual(in, snapshot) {
		t.Fatalf("grouping mutated the input slice")
	}
}

func TestGroupByCategory_EmptyInput(t *testing.T) {
	groups := GroupByCategory(nil)
	if len(groups) != 1 || groups[0].Name != UncategorizedBucket {
		t.Fatalf("expected only the reserved bucket, got %v", groups)
	}
}
