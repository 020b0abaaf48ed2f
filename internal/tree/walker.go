package tree

import "driftboard/internal/model"

// Normalize returns a copy of the tree with depth and parentId recomputed
// from the tree shape: roots get depth 0 and no parent, every child gets its
// parent's depth + 1. It is idempotent, and it runs after every structural
// mutation so no caller has to reason about depth bookkeeping. It also
// repairs trees loaded from disk where optional fields were absent.
func Normalize(tasks []model.Task) []model.Task {
	out := model.CloneTasks(tasks)
	walk(out, 0, "")
	return out
}

func walk(tasks []model.Task, depth int, parentID string) {
	for i := range tasks {
		tasks[i].Depth = depth
		tasks[i].ParentID = parentID
		if tasks[i].Subtasks == nil {
			tasks[i].Subtasks = []model.Task{}
		}
		walk(tasks[i].Subtasks, depth+1, tasks[i].ID)
	}
}

// InvariantError reports a depth/parent inconsistency or a duplicate id.
// Operations that run Normalize never produce one; it exists as a test-time
// assertion signal.
type InvariantError struct {
	TaskID string
	Reason string
}

func (e InvariantError) Error() string {
	return "invariant violated at " + e.TaskID + ": " + e.Reason
}

// CheckInvariants verifies the depth/parent invariant and tree-wide id
// uniqueness. It returns nil on a well-formed tree.
func CheckInvariants(tasks []model.Task) error {
	seen := map[string]bool{}
	return checkLevel(tasks, 0, "", seen)
}

func checkLevel(tasks []model.Task, depth int, parentID string, seen map[string]bool) error {
	for i := range tasks {
		t := &tasks[i]
		if t.ID == "" {
			return InvariantError{TaskID: t.ID, Reason: "empty id"}
		}
		if seen[t.ID] {
			return InvariantError{TaskID: t.ID, Reason: "duplicate id"}
		}
		seen[t.ID] = true
		if t.Depth != depth {
			return InvariantError{TaskID: t.ID, Reason: "wrong depth"}
		}
		if t.ParentID != parentID {
			return InvariantError{TaskID: t.ID, Reason: "wrong parentId"}
		}
		if err := checkLevel(t.Subtasks, depth+1, t.ID, seen); err != nil {
			return err
		}
	}
	return nil
}
