package model

import (
	"reflect"
	"testing"
)

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{"high", PriorityHigh, true},
		{"  HIGH ", PriorityHigh, true},
		{"medium", PriorityMedium, true},
		{"med", PriorityMedium, true},
		{"low", PriorityLow, true},
		{"", "", true},
		{"urgent", "", false},
	}
	for _, tc := range cases {
		got, ok := ParsePriority(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParsePriority(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPriorityRankOrder(t *testing.T) {
	seq := []Priority{PriorityHigh, PriorityMedium, PriorityLow, ""}
	for i := 1; i < len(seq); i++ {
		if seq[i-1].Rank() >= seq[i].Rank() {
			t.Fatalf("rank of %q (%d) should sort before %q (%d)",
				seq[i-1], seq[i-1].Rank(), seq[i], seq[i].Rank())
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Task{
		ID: "a", Text: "a",
		Subtasks: []Task{{ID: "b", Text: "b", Subtasks: []Task{{ID: "c", Text: "c"}}}},
	}
	cp := orig.Clone()
	if !reflect.DeepEqual(cp, orig) {
		t.Fatalf("clone differs from original")
	}
	cp.Subtasks[0].Subtasks[0].Text = "changed"
	if orig.Subtasks[0].Subtasks[0].Text != "c" {
		t.Fatalf("mutating clone leaked into original")
	}
}

func TestCloneTasksNil(t *testing.T) {
	if CloneTasks(nil) != nil {
		t.Fatalf("CloneTasks(nil) should stay nil")
	}
	if got := CloneTasks([]Task{}); got == nil || len(got) != 0 {
		t.Fatalf("CloneTasks(empty) = %v, want empty non-nil", got)
	}
}

func TestCountTasks(t *testing.T) {
	tasks := []Task{
		{ID: "a", Subtasks: []Task{{ID: "b"}, {ID: "c", Subtasks: []Task{{ID: "d"}}}}},
		{ID: "e"},
	}
	if got := CountTasks(tasks); got != 5 {
		t.Fatalf("CountTasks = %d, want 5", got)
	}
	if got := CountTasks(nil); got != 0 {
		t.Fatalf("CountTasks(nil) = %d, want 0", got)
	}
}
