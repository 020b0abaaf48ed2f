// Package tree implements the board's task-tree engine: pure structural
// mutations, depth/parent normalization, filtered/sorted projections, and
// category grouping.
//
// Every mutator takes the current tree and returns a newly constructed one;
// the input is never modified in place. Callers push the result into
// whatever state container they use (store, TUI model, HTTP handler).
package tree

import (
	"strings"

	"github.com/google/uuid"

	"driftboard/internal/model"
)

// NewTaskID returns a fresh globally-unique task id.
func NewTaskID() string {
	return "task-" + uuid.NewString()
}

// AddTask appends a new top-level task. Empty or whitespace-only text is
// rejected before any mutation: the input tree is returned unchanged.
func AddTask(tasks []model.Task, text string) []model.Task {
	text = strings.TrimSpace(text)
	if text == "" {
		return tasks
	}
	out := model.CloneTasks(tasks)
	out = append(out, model.Task{
		ID:         NewTaskID(),
		Text:       text,
		Subtasks:   []model.Task{},
		IsExpanded: true,
	})
	return Normalize(out)
}

// AddSubtask appends a new child under the task whose id equals parentID,
// searching the whole tree. The child inherits the parent's category, and
// the parent is expanded so the new child is visible. A missing parent id is
// a no-op: the input tree is returned unchanged, not an error, because stale
// ids from concurrent UI state are expected.
func AddSubtask(tasks []model.Task, parentID, text string) []model.Task {
	parentID = strings.TrimSpace(parentID)
	text = strings.TrimSpace(text)
	if parentID == "" || text == "" {
		return tasks
	}
	out := model.CloneTasks(tasks)
	if !appendChild(out, parentID, text) {
		return tasks
	}
	return Normalize(out)
}

func appendChild(tasks []model.Task, parentID, text string) bool {
	for i := range tasks {
		if tasks[i].ID == parentID {
			tasks[i].Subtasks = append(tasks[i].Subtasks, model.Task{
				ID:         NewTaskID(),
				Text:       text,
				Category:   tasks[i].Category,
				Subtasks:   []model.Task{},
				IsExpanded: true,
			})
			tasks[i].IsExpanded = true
			return true
		}
		if appendChild(tasks[i].Subtasks, parentID, text) {
			return true
		}
	}
	return false
}

// Patch holds the fields UpdateTask may change. Nil fields are left alone;
// Subtasks is only replaced when the patch explicitly carries one.
type Patch struct {
	Text        *string
	Description *string
	Done        *bool
	Category    *string
	Priority    *model.Priority
	DueDate     *string
	IsExpanded  *bool
	Subtasks    *[]model.Task
}

// UpdateTask shallow-merges patch into the task whose id equals taskID,
// searching the whole tree. Missing id is a silent no-op.
func UpdateTask(tasks []model.Task, taskID string, patch Patch) []model.Task {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return tasks
	}
	out := model.CloneTasks(tasks)
	if !applyPatch(out, taskID, patch) {
		return tasks
	}
	return Normalize(out)
}

func applyPatch(tasks []model.Task, taskID string, patch Patch) bool {
	for i := range tasks {
		if tasks[i].ID == taskID {
			t := &tasks[i]
			if patch.Text != nil {
				t.Text = *patch.Text
			}
			if patch.Description != nil {
				t.Description = *patch.Description
			}
			if patch.Done != nil {
				t.Done = *patch.Done
			}
			if patch.Category != nil {
				t.Category = *patch.Category
			}
			if patch.Priority != nil {
				t.Priority = *patch.Priority
			}
			if patch.DueDate != nil {
				t.DueDate = *patch.DueDate
			}
			if patch.IsExpanded != nil {
				t.IsExpanded = *patch.IsExpanded
			}
			if patch.Subtasks != nil {
				t.Subtasks = model.CloneTasks(*patch.Subtasks)
			}
			return true
		}
		if applyPatch(tasks[i].Subtasks, taskID, patch) {
			return true
		}
	}
	return false
}

// DeleteTask removes the task whose id equals taskID, together with its
// entire subtree. Ids are unique, so at most one node matches. Missing id is
// a silent no-op.
func DeleteTask(tasks []model.Task, taskID string) []model.Task {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return tasks
	}
	out, removed := pruneTask(model.CloneTasks(tasks), taskID)
	if !removed {
		return tasks
	}
	return Normalize(out)
}

func pruneTask(tasks []model.Task, taskID string) ([]model.Task, bool) {
	removed := false
	out := tasks[:0]
	for i := range tasks {
		if tasks[i].ID == taskID {
			removed = true
			continue
		}
		if !removed {
			var sub bool
			tasks[i].Subtasks, sub = pruneTask(tasks[i].Subtasks, taskID)
			removed = removed || sub
		}
		out = append(out, tasks[i])
	}
	return out, removed
}

// Find returns a copy of the task whose id equals taskID, searching the
// whole tree.
func Find(tasks []model.Task, taskID string) (model.Task, bool) {
	for i := range tasks {
		if tasks[i].ID == taskID {
			return tasks[i].Clone(), true
		}
		if t, ok := Find(tasks[i].Subtasks, taskID); ok {
			return t, true
		}
	}
	return model.Task{}, false
}
