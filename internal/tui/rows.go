package tui

import (
	"driftboard/internal/model"
	"driftboard/internal/tree"
)

// boardRow is one rendered line of the board: either a category header or a
// task at some depth.
type boardRow struct {
	header string // non-empty for category header rows
	task   model.Task
	depth  int

	hasChildren bool
	collapsed   bool
}

func (r boardRow) isHeader() bool { return r.header != "" }

// flattenTasks turns a (projected) tree into display rows, honoring each
// node's IsExpanded flag.
func flattenTasks(tasks []model.Task) []boardRow {
	var out []boardRow
	var walkRows func(tasks []model.Task)
	walkRows = func(tasks []model.Task) {
		for i := range tasks {
			t := tasks[i]
			row := boardRow{
				task:        t,
				depth:       t.Depth,
				hasChildren: len(t.Subtasks) > 0,
				collapsed:   len(t.Subtasks) > 0 && !t.IsExpanded,
			}
			out = append(out, row)
			if t.IsExpanded {
				walkRows(t.Subtasks)
			}
		}
	}
	walkRows(tasks)
	return out
}

// flattenGrouped renders category buckets of the top-level slice, each
// bucket's tasks flattened beneath its header. Empty buckets other than the
// reserved one are impossible by construction; the reserved bucket is shown
// only when it has tasks, to avoid a dangling header.
func flattenGrouped(tasks []model.Task) []boardRow {
	var out []boardRow
	for _, g := range tree.GroupByCategory(tasks) {
		if g.Name == tree.UncategorizedBucket && len(g.Tasks) == 0 {
			continue
		}
		out = append(out, boardRow{header: g.Name})
		out = append(out, flattenTasks(g.Tasks)...)
	}
	return out
}
