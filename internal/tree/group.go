package tree

import (
	"sort"
	"strings"

	"driftboard/internal/model"
)

// UncategorizedBucket is the reserved bucket for tasks with no category.
const UncategorizedBucket = "Uncategorized"

// CategoryGroup is one presentation bucket of top-level tasks.
type CategoryGroup struct {
	Name  string
	Tasks []model.Task
}

// GroupByCategory partitions a flat slice of top-level tasks into buckets
// keyed by category. It operates only on the slice it is given (typically a
// projection) and has no awareness of nesting below the slice's own top
// level. Buckets are ordered alphabetically with Uncategorized last; the
// Uncategorized bucket always exists, even when empty.
func GroupByCategory(tasks []model.Task) []CategoryGroup {
	byName := map[string][]model.Task{}
	for i := range tasks {
		name := strings.TrimSpace(tasks[i].Category)
		if name == "" {
			name = UncategorizedBucket
		}
		byName[name] = append(byName[name], tasks[i])
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		if name == UncategorizedBucket {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]CategoryGroup, 0, len(names)+1)
	for _, name := range names {
		out = append(out, CategoryGroup{Name: name, Tasks: byName[name]})
	}
	out = append(out, CategoryGroup{Name: UncategorizedBucket, Tasks: byName[UncategorizedBucket]})
	return out
}
