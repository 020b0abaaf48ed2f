package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"driftboard/internal/tree"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case externalChangeMsg:
		m.reload()
		if m.watcher != nil {
			return m, m.watcher.waitForChange()
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeCapture, modeSubCapture, modeEdit, modeSearch:
			return m.updateInput(msg)
		case modeDetail:
			return m.updateDetail(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "g":
		m.sel = 0
		m.clampScroll()
	case "G":
		m.sel = len(m.rows) - 1
		m.clampScroll()

	case " ":
		if t, ok := m.selectedTask(); ok {
			done := !t.Done
			m.commit(tree.UpdateTask(m.board.Tasks, t.ID, tree.Patch{Done: &done}))
		}
	case "tab":
		if t, ok := m.selectedTask(); ok && len(t.Subtasks) > 0 {
			expanded := !t.IsExpanded
			m.commit(tree.UpdateTask(m.board.Tasks, t.ID, tree.Patch{IsExpanded: &expanded}))
		}

	case "a":
		m.mode = modeCapture
		m.input.SetValue("")
		m.input.Placeholder = "new task"
		m.input.Focus()
	case "A":
		if t, ok := m.selectedTask(); ok {
			m.mode = modeSubCapture
			m.editID = t.ID
			m.input.SetValue("")
			m.input.Placeholder = "new subtask of " + truncate(t.Text, 24)
			m.input.Focus()
		}
	case "e":
		if t, ok := m.selectedTask(); ok {
			m.mode = modeEdit
			m.editID = t.ID
			m.input.SetValue(t.Text)
			m.input.Placeholder = ""
			m.input.Focus()
		}
	case "d":
		if t, ok := m.selectedTask(); ok {
			m.mode = modeConfirmDelete
			m.deleteID = t.ID
		}
	case "enter":
		if _, ok := m.selectedTask(); ok {
			m.mode = modeDetail
		}

	case "/":
		m.mode = modeSearch
		m.input.SetValue(m.filters.Search)
		m.input.Placeholder = "search"
		m.input.Focus()

	case "f":
		m.filters.Status = nextStatusFilter(m.filters.Status)
		m.refreshRows()
	case "p":
		m.filters.Priority = nextPriorityFilter(m.filters.Priority)
		m.refreshRows()
	case "u":
		m.filters.Due = nextDueFilter(m.filters.Due)
		m.refreshRows()
	case "s":
		m.sort.Key = nextSortKey(m.sort.Key)
		m.refreshRows()
	case "S":
		m.sort.Desc = !m.sort.Desc
		m.refreshRows()
	case "c":
		m.grouped = !m.grouped
		m.refreshRows()

	case "esc":
		if m.dragger.Dragging() {
			m.cancelDrag()
			return m, nil
		}
		if m.filters.Search != "" {
			m.filters.Search = ""
			m.refreshRows()
		}
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	if len(m.rows) == 0 {
		return
	}
	next := m.sel + delta
	// Skip header rows.
	for next >= 0 && next < len(m.rows) && m.rows[next].isHeader() {
		next += delta
	}
	if next < 0 || next >= len(m.rows) {
		return
	}
	m.sel = next
	m.clampScroll()
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case modeCapture:
			if text != "" {
				m.commit(tree.AddTask(m.board.Tasks, text))
				m.sel = len(m.rows) - 1
				m.clampScroll()
			}
		case modeSubCapture:
			if text != "" {
				m.commit(tree.AddSubtask(m.board.Tasks, m.editID, text))
			}
		case modeEdit:
			if text != "" {
				m.commit(tree.UpdateTask(m.board.Tasks, m.editID, tree.Patch{Text: &text}))
			}
		case modeSearch:
			m.filters.Search = text
			m.refreshRows()
		}
		m.mode = modeList
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		// Live search while typing.
		m.filters.Search = m.input.Value()
		m.refreshRows()
	}
	return m, cmd
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.mode = modeList
	}
	return m, nil
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.commit(tree.DeleteTask(m.board.Tasks, m.deleteID))
		m.mode = modeList
	case "n", "esc":
		m.mode = modeList
	}
	m.deleteID = ""
	return m, nil
}

func nextStatusFilter(f tree.StatusFilter) tree.StatusFilter {
	switch f {
	case tree.StatusAll:
		return tree.StatusActive
	case tree.StatusActive:
		return tree.StatusCompleted
	default:
		return tree.StatusAll
	}
}

func nextPriorityFilter(f tree.PriorityFilter) tree.PriorityFilter {
	switch f {
	case tree.PriorityAll:
		return "high"
	case "high":
		return "medium"
	case "medium":
		return "low"
	default:
		return tree.PriorityAll
	}
}

func nextDueFilter(f tree.DueFilter) tree.DueFilter {
	switch f {
	case tree.DueAll:
		return tree.DueOverdue
	case tree.DueOverdue:
		return tree.DueToday
	case tree.DueToday:
		return tree.DueWeek
	case tree.DueWeek:
		return tree.DueFuture
	default:
		return tree.DueAll
	}
}

func nextSortKey(k tree.SortKey) tree.SortKey {
	switch k {
	case tree.SortNone:
		return tree.SortPriority
	case tree.SortPriority:
		return tree.SortDue
	case tree.SortDue:
		return tree.SortAlpha
	default:
		return tree.SortNone
	}
}
