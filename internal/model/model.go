package model

import "strings"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority normalizes user input into a Priority. Empty input means
// "no priority"; unrecognized input reports ok=false.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "high":
		return PriorityHigh, true
	case "medium", "med":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	default:
		return "", false
	}
}

// Rank returns the sort rank of a priority: high sorts before medium before
// low, and unset sorts after all of them.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Task is one node in the board's task tree.
//
// Subtasks is the sole owner of the node's children; ParentID and Depth are
// denormalized from the tree shape and recomputed (tree.Normalize) after
// every structural change, so neither is an independent source of truth.
type Task struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Description string   `json:"description,omitempty"`
	Done        bool     `json:"done"`
	Category    string   `json:"category,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"` // YYYY-MM-DD
	Subtasks    []Task   `json:"subtasks"`
	IsExpanded  bool     `json:"isExpanded"`
	ParentID    string   `json:"parentId,omitempty"`
	Depth       int      `json:"depth"`
}

// Clone returns a deep copy of the task and its entire subtree.
func (t Task) Clone() Task {
	out := t
	out.Subtasks = CloneTasks(t.Subtasks)
	return out
}

// CloneTasks deep-copies a sibling slice. A nil input yields nil so that
// clones stay comparable to their source with reflect.DeepEqual.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}

// CountTasks returns the total number of nodes in the tree, descendants
// included.
func CountTasks(tasks []Task) int {
	n := 0
	for i := range tasks {
		n += 1 + CountTasks(tasks[i].Subtasks)
	}
	return n
}
