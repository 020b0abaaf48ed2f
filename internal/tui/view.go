package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"driftboard/internal/model"
	"driftboard/internal/tree"
)

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewFilterLine())
	b.WriteString("\n")

	if m.mode == modeDetail {
		b.WriteString(m.viewDetail())
	} else {
		b.WriteString(m.viewRows())
	}

	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *Model) viewHeader() string {
	total := model.CountTasks(m.board.Tasks)
	title := styleHeader.Render("driftboard")
	counts := styleMuted.Render(fmt.Sprintf("%d tasks", total))
	if m.dragger.Dragging() {
		counts = styleDragged.Render("reordering — release to drop, esc to cancel")
	}
	return truncateStyled(title+"  "+counts, m.width)
}

func (m *Model) viewFilterLine() string {
	parts := []string{}
	if m.filters.Status != "" && m.filters.Status != tree.StatusAll {
		parts = append(parts, "status:"+string(m.filters.Status))
	}
	if m.filters.Priority != "" && m.filters.Priority != tree.PriorityAll {
		parts = append(parts, "priority:"+string(m.filters.Priority))
	}
	if m.filters.Due != "" && m.filters.Due != tree.DueAll {
		parts = append(parts, "due:"+string(m.filters.Due))
	}
	if m.filters.Search != "" {
		parts = append(parts, "search:"+m.filters.Search)
	}
	if m.sort.Key != tree.SortNone {
		dir := "asc"
		if m.sort.Desc {
			dir = "desc"
		}
		parts = append(parts, "sort:"+string(m.sort.Key)+":"+dir)
	}
	if m.grouped {
		parts = append(parts, "grouped")
	}
	if len(parts) == 0 {
		return styleMuted.Render("all tasks")
	}
	return truncateStyled(styleMuted.Render(strings.Join(parts, "  ")), m.width)
}

func (m *Model) viewRows() string {
	var b strings.Builder
	visible := m.visibleRowCount()
	end := m.scroll + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.scroll; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}
	// Pad so the footer stays on the last line.
	for i := end - m.scroll; i < visible; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderRow(i int) string {
	row := m.rows[i]
	if row.isHeader() {
		return truncateStyled(styleCategory.Render("· "+row.header), m.width)
	}
	t := row.task

	indent := strings.Repeat("  ", row.depth)

	glyph := "  "
	if row.hasChildren {
		glyph = "▾ "
		if row.collapsed {
			glyph = "▸ "
		}
	}

	check := "[ ] "
	if t.Done {
		check = "[x] "
	}

	text := t.Text
	meta := rowMeta(t)

	line := indent + glyph + check + text
	if meta != "" {
		line += "  " + meta
	}

	switch {
	case m.dragger.Dragging() && t.ID == m.dragger.SourceID():
		line = styleDragged.Render(truncate(line, m.width))
	case i == m.sel:
		line = styleSelected.Render(truncate(line, m.width))
	case t.Done:
		line = styleDone.Render(truncate(line, m.width))
	default:
		line = truncate(line, m.width)
	}
	return line
}

func rowMeta(t model.Task) string {
	parts := []string{}
	if g := priorityGlyph(string(t.Priority)); g != "" {
		parts = append(parts, g)
	}
	if t.DueDate != "" {
		parts = append(parts, t.DueDate)
	}
	if t.Category != "" {
		parts = append(parts, "#"+t.Category)
	}
	if len(parts) == 0 {
		return ""
	}
	return styleMuted.Render(strings.Join(parts, " "))
}

func (m *Model) viewDetail() string {
	t, ok := m.selectedTask()
	if !ok {
		return "\n"
	}
	var b strings.Builder
	b.WriteString(styleHeader.Render(truncate(t.Text, m.width)))
	b.WriteString("\n\n")
	if meta := rowMeta(t); meta != "" {
		b.WriteString(meta)
		b.WriteString("\n\n")
	}
	if t.Description != "" {
		b.WriteString(renderMarkdown(t.Description, m.width-2))
		b.WriteString("\n")
	} else {
		b.WriteString(styleMuted.Render("no description"))
		b.WriteString("\n")
	}

	// Pad to keep footer placement stable.
	lines := strings.Count(b.String(), "\n")
	for i := lines; i < m.visibleRowCount(); i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewFooter() string {
	switch m.mode {
	case modeCapture, modeSubCapture, modeEdit, modeSearch:
		return truncateStyled(m.input.View(), m.width)
	case modeConfirmDelete:
		t, _ := tree.Find(m.board.Tasks, m.deleteID)
		n := 1 + model.CountTasks(t.Subtasks)
		return styleOverdue.Render(truncate(fmt.Sprintf("delete %q and %d task(s)? y/n", t.Text, n), m.width))
	case modeDetail:
		return styleMuted.Render("esc to close")
	}
	if m.status != "" {
		return truncateStyled(styleMuted.Render(m.status), m.width)
	}
	help := "a add  A subtask  e edit  d delete  space done  tab fold  / search  f/p/u filter  s/S sort  c group  drag to reorder  q quit"
	return truncateStyled(styleMuted.Render(help), m.width)
}

// truncateStyled trims a styled line to the terminal width without breaking
// escape sequences.
func truncateStyled(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return ansi.Truncate(s, w, "…")
}
