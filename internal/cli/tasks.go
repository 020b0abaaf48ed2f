package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"driftboard/internal/format"
	"driftboard/internal/model"
	"driftboard/internal/store"
	"driftboard/internal/tree"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksDoneCmd(app, true))
	cmd.AddCommand(newTasksDoneCmd(app, false))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	return cmd
}

func loadBoard(app *App) (store.Store, *store.Board, error) {
	s, err := app.openStore()
	if err != nil {
		return store.Store{}, nil, err
	}
	b, err := s.Load()
	if err != nil {
		return store.Store{}, nil, err
	}
	return s, b, nil
}

func saveBoard(s store.Store, b *store.Board, tasks []model.Task) error {
	b.Tasks = tasks
	return s.Save(b)
}

func newTasksAddCmd(app *App) *cobra.Command {
	var parentID, category, priority, due string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task (top-level, or under --parent)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("task text is required")
			}
			prio, ok := model.ParsePriority(priority)
			if !ok {
				return fmt.Errorf("invalid priority: %s (want high|medium|low)", priority)
			}

			s, b, err := loadBoard(app)
			if err != nil {
				return err
			}

			var tasks []model.Task
			if strings.TrimSpace(parentID) != "" {
				if _, ok := tree.Find(b.Tasks, parentID); !ok {
					return fmt.Errorf("parent not found: %s", parentID)
				}
				tasks = tree.AddSubtask(b.Tasks, parentID, text)
			} else {
				tasks = tree.AddTask(b.Tasks, text)
			}

			// The new node is the last sibling in its target list.
			added := lastAdded(tasks, parentID)
			if added != "" && (category != "" || prio != "" || due != "") {
				patch := tree.Patch{}
				if category != "" {
					patch.Category = &category
				}
				if prio != "" {
					patch.Priority = &prio
				}
				if due != "" {
					patch.DueDate = &due
				}
				tasks = tree.UpdateTask(tasks, added, patch)
			}

			if err := saveBoard(s, b, tasks); err != nil {
				return err
			}
			t, _ := tree.Find(tasks, added)
			return format.Write(cmd.OutOrStdout(), t, "json", app.PrettyJSON)
		},
	}
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent task id (adds a subtask)")
	cmd.Flags().StringVar(&category, "category", "", "Category label")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (high|medium|low)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func lastAdded(tasks []model.Task, parentID string) string {
	if strings.TrimSpace(parentID) == "" {
		if len(tasks) == 0 {
			return ""
		}
		return tasks[len(tasks)-1].ID
	}
	parent, ok := tree.Find(tasks, parentID)
	if !ok || len(parent.Subtasks) == 0 {
		return ""
	}
	return parent.Subtasks[len(parent.Subtasks)-1].ID
}

func newTasksListCmd(app *App) *cobra.Command {
	var status, priority, due, search, sortKey string
	var desc, group bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (filtered, sorted, optionally grouped)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, err := loadBoard(app)
			if err != nil {
				return err
			}
			f := tree.Filters{
				Status:   tree.StatusFilter(strings.ToLower(strings.TrimSpace(status))),
				Priority: tree.PriorityFilter(strings.ToLower(strings.TrimSpace(priority))),
				Due:      tree.DueFilter(strings.ToLower(strings.TrimSpace(due))),
				Search:   search,
			}
			srt := tree.Sort{Key: tree.SortKey(strings.ToLower(strings.TrimSpace(sortKey))), Desc: desc}
			view := tree.Project(b.Tasks, f, srt)
			if group {
				return format.Write(cmd.OutOrStdout(), tree.GroupByCategory(view), "json", app.PrettyJSON)
			}
			return format.Write(cmd.OutOrStdout(), view, app.Format, app.PrettyJSON)
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "Status filter (all|active|completed)")
	cmd.Flags().StringVar(&priority, "priority", "all", "Priority filter (all|high|medium|low)")
	cmd.Flags().StringVar(&due, "due", "all", "Due filter (all|overdue|today|week|future)")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search over text and description")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key (priority|due|alpha)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&group, "group", false, "Group top-level tasks by category")
	return cmd
}

func newTasksDoneCmd(app *App, done bool) *cobra.Command {
	use, short := "done <id>", "Mark a task done"
	if !done {
		use, short = "undone <id>", "Mark a task not done"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, err := loadBoard(app)
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			if _, ok := tree.Find(b.Tasks, id); !ok {
				return fmt.Errorf("task not found: %s", id)
			}
			d := done
			tasks := tree.UpdateTask(b.Tasks, id, tree.Patch{Done: &d})
			if err := saveBoard(s, b, tasks); err != nil {
				return err
			}
			t, _ := tree.Find(tasks, id)
			return format.Write(cmd.OutOrStdout(), t, "json", app.PrettyJSON)
		},
	}
}

func newTasksEditCmd(app *App) *cobra.Command {
	var text, description, category, priority, due string
	var clearDue bool
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, err := loadBoard(app)
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			if _, ok := tree.Find(b.Tasks, id); !ok {
				return fmt.Errorf("task not found: %s", id)
			}

			patch := tree.Patch{}
			if cmd.Flags().Changed("text") {
				if strings.TrimSpace(text) == "" {
					return fmt.Errorf("task text cannot be empty")
				}
				patch.Text = &text
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("priority") {
				prio, ok := model.ParsePriority(priority)
				if !ok {
					return fmt.Errorf("invalid priority: %s (want high|medium|low)", priority)
				}
				patch.Priority = &prio
			}
			if cmd.Flags().Changed("due") {
				patch.DueDate = &due
			}
			if clearDue {
				empty := ""
				patch.DueDate = &empty
			}

			tasks := tree.UpdateTask(b.Tasks, id, patch)
			if err := saveBoard(s, b, tasks); err != nil {
				return err
			}
			t, _ := tree.Find(tasks, id)
			return format.Write(cmd.OutOrStdout(), t, "json", app.PrettyJSON)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New task text")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (high|medium|low, empty clears)")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Clear the due date")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task and its whole subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, err := loadBoard(app)
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			if _, ok := tree.Find(b.Tasks, id); !ok {
				return fmt.Errorf("task not found: %s", id)
			}
			tasks := tree.DeleteTask(b.Tasks, id)
			if err := saveBoard(s, b, tasks); err != nil {
				return err
			}
			return format.Write(cmd.OutOrStdout(), map[string]any{"deleted": id}, "json", app.PrettyJSON)
		},
	}
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var after string
	cmd := &cobra.Command{
		Use:   "move <id> --after <id>",
		Short: "Move a task to be the next sibling of another task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, err := loadBoard(app)
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			if _, ok := tree.Find(b.Tasks, id); !ok {
				return fmt.Errorf("task not found: %s", id)
			}
			tasks := tree.MoveTask(b.Tasks, id, after)
			if err := saveBoard(s, b, tasks); err != nil {
				return err
			}
			t, _ := tree.Find(tasks, id)
			return format.Write(cmd.OutOrStdout(), t, "json", app.PrettyJSON)
		},
	}
	cmd.Flags().StringVar(&after, "after", "", "Target task id; the moved task becomes its next sibling")
	_ = cmd.MarkFlagRequired("after")
	return cmd
}
