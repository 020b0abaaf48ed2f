package tree

import (
	"sort"
	"strings"
	"time"

	"driftboard/internal/model"
)

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

type PriorityFilter string

const (
	PriorityAll PriorityFilter = "all"
)

type DueFilter string

const (
	DueAll     DueFilter = "all"
	DueOverdue DueFilter = "overdue"
	DueToday   DueFilter = "today"
	DueWeek    DueFilter = "week" // due within the next 7 days
	DueFuture  DueFilter = "future"
)

// Filters are the projection predicates. All active predicates are ANDed.
// Zero values ("" or the *All constants) mean "no restriction".
type Filters struct {
	Status   StatusFilter
	Priority PriorityFilter
	Due      DueFilter
	Search   string

	// Now anchors the due-date buckets. Zero means time.Now().
	Now time.Time
}

func (f Filters) active() bool {
	return (f.Status != "" && f.Status != StatusAll) ||
		(f.Priority != "" && f.Priority != PriorityAll) ||
		(f.Due != "" && f.Due != DueAll) ||
		strings.TrimSpace(f.Search) != ""
}

type SortKey string

const (
	SortNone     SortKey = ""
	SortPriority SortKey = "priority"
	SortDue      SortKey = "due"
	SortAlpha    SortKey = "alpha"
)

type Sort struct {
	Key  SortKey
	Desc bool
}

// Project returns a derived, non-owning view of the tree: filtered with
// ancestor preservation, then stably sorted within every sibling group. The
// backing tree is never touched. With no active predicates and no sort key,
// the projection deep-equals the source.
func Project(tasks []model.Task, f Filters, s Sort) []model.Task {
	out := model.CloneTasks(tasks)
	if f.active() {
		now := f.Now
		if now.IsZero() {
			now = time.Now()
		}
		out = filterTasks(out, f, now)
	}
	if s.Key != SortNone {
		sortTasks(out, s)
	}
	return out
}

// filterTasks keeps a node if it matches every active predicate itself, or,
// with its subtasks pruned to the survivors, if at least one descendant
// survives. A matching deep task therefore stays reachable through ancestors
// that do not match.
func filterTasks(tasks []model.Task, f Filters, now time.Time) []model.Task {
	out := tasks[:0]
	for i := range tasks {
		kept := filterTasks(tasks[i].Subtasks, f, now)
		if matches(&tasks[i], f, now) || len(kept) > 0 {
			tasks[i].Subtasks = kept
			out = append(out, tasks[i])
		}
	}
	return out
}

func matches(t *model.Task, f Filters, now time.Time) bool {
	switch f.Status {
	case StatusActive:
		if t.Done {
			return false
		}
	case StatusCompleted:
		if !t.Done {
			return false
		}
	}
	if f.Priority != "" && f.Priority != PriorityAll {
		if string(t.Priority) != string(f.Priority) {
			return false
		}
	}
	if f.Due != "" && f.Due != DueAll {
		if !matchesDue(t.DueDate, f.Due, now) {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(t.Text), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	return true
}

func matchesDue(dueDate string, f DueFilter, now time.Time) bool {
	due, ok := parseDueDate(dueDate)
	if !ok {
		// Undated tasks only pass the unrestricted bucket.
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch f {
	case DueOverdue:
		return due.Before(today)
	case DueToday:
		return due.Equal(today)
	case DueWeek:
		return due.After(today) && !due.After(today.AddDate(0, 0, 7))
	case DueFuture:
		return due.After(today.AddDate(0, 0, 7))
	default:
		return true
	}
}

func parseDueDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// sortTasks stably sorts every sibling group at every depth. Ties preserve
// the original relative order.
func sortTasks(tasks []model.Task, s Sort) {
	sort.SliceStable(tasks, func(i, j int) bool {
		c := compareTasks(&tasks[i], &tasks[j], s.Key)
		if s.Desc {
			return c > 0
		}
		return c < 0
	})
	for i := range tasks {
		sortTasks(tasks[i].Subtasks, s)
	}
}

func compareTasks(a, b *model.Task, key SortKey) int {
	switch key {
	case SortPriority:
		ra, rb := a.Priority.Rank(), b.Priority.Rank()
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
		return 0
	case SortDue:
		da, aok := parseDueDate(a.DueDate)
		db, bok := parseDueDate(b.DueDate)
		switch {
		case aok && !bok:
			return -1 // dated before undated
		case !aok && bok:
			return 1
		case !aok && !bok:
			return 0
		case da.Before(db):
			return -1
		case da.After(db):
			return 1
		}
		return 0
	case SortAlpha:
		return strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text))
	default:
		return 0
	}
}
