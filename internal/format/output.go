package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"driftboard/internal/model"
)

// Write writes command output in the requested format.
//
// Supported formats:
// - json (default)
// - table (flat, depth-indented; only meaningful for task lists)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "table":
		if tasks, ok := v.([]model.Task); ok {
			return WriteTaskTable(w, tasks)
		}
		return WriteJSON(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTaskTable renders a task tree as a flat table, one row per node,
// indented by depth.
func WriteTaskTable(w io.Writer, tasks []model.Task) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tTEXT\tCATEGORY\tPRIORITY\tDUE")
	writeTaskRows(tw, tasks)
	return tw.Flush()
}

func writeTaskRows(w io.Writer, tasks []model.Task) {
	for i := range tasks {
		t := &tasks[i]
		done := " "
		if t.Done {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t[%s]\t%s%s\t%s\t%s\t%s\n",
			t.ID, done, strings.Repeat("  ", t.Depth), t.Text, t.Category, t.Priority, t.DueDate)
		writeTaskRows(w, t.Subtasks)
	}
}
