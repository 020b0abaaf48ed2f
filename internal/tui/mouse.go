package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"driftboard/internal/drag"
)

// rowAt maps an absolute screen Y to a display row index, or -1.
func (m *Model) rowAt(y int) int {
	idx := m.scroll + (y - rowsStartY)
	if y < rowsStartY || idx < 0 || idx >= len(m.rows) {
		return -1
	}
	return idx
}

// rowRect returns the on-screen bounding box of a display row.
func (m *Model) rowRect(idx int) drag.Rect {
	return drag.Rect{X: 0, Y: rowsStartY + (idx - m.scroll), W: m.width, H: 1}
}

func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeList {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			m.moveSelection(-1)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			m.moveSelection(1)
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		idx := m.rowAt(msg.Y)
		if idx < 0 || m.rows[idx].isHeader() {
			return m, nil
		}
		m.sel = idx
		m.pressed = true
		m.pressID = m.rows[idx].task.ID
		m.pressY = msg.Y

	case tea.MouseActionMotion:
		if m.pressed && !m.dragger.Dragging() {
			// Click becomes a drag on first motion tick. Filters and grouping
			// are suspended for the duration (see refreshRows).
			if m.dragger.Start(m.board.Tasks, m.pressID, m.pressY) {
				m.refreshRows()
			} else {
				m.pressed = false
			}
		}
		if !m.dragger.Dragging() {
			return m, nil
		}
		idx := m.rowAt(msg.Y)
		if idx < 0 || m.rows[idx].isHeader() {
			// Off the rows: still record travel so direction stays current.
			m.dragger.Hover("", drag.Rect{}, msg.Y)
			return m, nil
		}
		if m.dragger.Hover(m.rows[idx].task.ID, m.rowRect(idx), msg.Y) {
			m.refreshRows()
			m.selectByID(m.dragger.SourceID())
		}

	case tea.MouseActionRelease:
		m.pressed = false
		if !m.dragger.Dragging() {
			return m, nil
		}
		id := m.dragger.SourceID()
		if dropped, ok := m.dragger.Drop(); ok {
			m.commit(dropped)
			m.selectByID(id)
		}
	}
	return m, nil
}

// cancelDrag restores the pre-drag tree exactly; the authoritative board was
// never touched mid-drag, so nothing is saved.
func (m *Model) cancelDrag() {
	if _, ok := m.dragger.Cancel(); ok {
		m.pressed = false
		m.refreshRows()
		m.status = "drag cancelled"
	}
}

// selectByID moves the selection onto the row showing id, if visible.
func (m *Model) selectByID(id string) {
	if id == "" {
		return
	}
	for i := range m.rows {
		if !m.rows[i].isHeader() && m.rows[i].task.ID == id {
			m.sel = i
			m.clampScroll()
			return
		}
	}
}
