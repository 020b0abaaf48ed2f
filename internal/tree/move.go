package tree

import (
	"strings"

	"driftboard/internal/model"
)

// MoveTask removes the task whose id equals dragID (searching any depth,
// subtree and all) and reinserts it as the immediate next sibling of the
// task whose id equals hoverID, inside the hover target's parent list.
// Reparenting resets the moved node's depth lineage; Normalize shifts every
// descendant by the same delta. Missing dragID is a silent no-op.
//
// If the hover target cannot be located at reinsertion time (for example it
// was deleted mid-drag, or it sits inside the dragged subtree), the dragged
// node is appended to the end of the root list instead of being discarded.
func MoveTask(tasks []model.Task, dragID, hoverID string) []model.Task {
	dragID = strings.TrimSpace(dragID)
	hoverID = strings.TrimSpace(hoverID)
	if dragID == "" || dragID == hoverID {
		return tasks
	}
	out, dragged, found := spliceTask(model.CloneTasks(tasks), dragID)
	if !found {
		return tasks
	}
	out, inserted := insertAfter(out, hoverID, dragged)
	if !inserted {
		// Never drop the node silently.
		out = append(out, dragged)
	}
	return Normalize(out)
}

func spliceTask(tasks []model.Task, taskID string) ([]model.Task, model.Task, bool) {
	for i := range tasks {
		if tasks[i].ID == taskID {
			dragged := tasks[i]
			out := append(tasks[:i], tasks[i+1:]...)
			return out, dragged, true
		}
		sub, dragged, found := spliceTask(tasks[i].Subtasks, taskID)
		if found {
			tasks[i].Subtasks = sub
			return tasks, dragged, true
		}
	}
	return tasks, model.Task{}, false
}

func insertAfter(tasks []model.Task, hoverID string, node model.Task) ([]model.Task, bool) {
	for i := range tasks {
		if tasks[i].ID == hoverID {
			out := make([]model.Task, 0, len(tasks)+1)
			out = append(out, tasks[:i+1]...)
			out = append(out, node)
			out = append(out, tasks[i+1:]...)
			return out, true
		}
		sub, inserted := insertAfter(tasks[i].Subtasks, hoverID, node)
		if inserted {
			tasks[i].Subtasks = sub
			return tasks, true
		}
	}
	return tasks, false
}
