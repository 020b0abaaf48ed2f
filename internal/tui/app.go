// Package tui renders the interactive board: a flattened task outline with
// keyboard editing, filter/sort/group toggles, and pointer-driven drag
// reordering backed by the drag engine.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"driftboard/internal/drag"
	"driftboard/internal/model"
	"driftboard/internal/store"
	"driftboard/internal/tree"
)

type mode int

const (
	modeList mode = iota
	modeCapture    // adding a top-level task
	modeSubCapture // adding a subtask under the selection
	modeEdit       // editing the selection's text
	modeSearch     // typing a search query
	modeDetail     // description panel for the selection
	modeConfirmDelete
)

const rowsStartY = 2 // header + filter line

type Model struct {
	st    store.Store
	board *store.Board

	filters tree.Filters
	sort    tree.Sort
	grouped bool

	rows   []boardRow
	sel    int
	scroll int

	width  int
	height int

	mode     mode
	input    textinput.Model
	editID   string
	deleteID string

	dragger *drag.Engine
	pressID string
	pressY  int
	pressed bool

	watcher *boardWatcher
	status  string
	err     error
}

// Run loads the board and runs the interactive TUI until quit.
func Run(s store.Store) error {
	b, err := s.Load()
	if err != nil {
		return err
	}

	in := textinput.New()
	in.CharLimit = 512
	in.Prompt = "> "

	m := &Model{
		st:      s,
		board:   b,
		filters: tree.Filters{Status: tree.StatusAll, Priority: tree.PriorityAll, Due: tree.DueAll},
		dragger: drag.New(),
		input:   in,
	}
	if w, err := newBoardWatcher(s.Dir, "index.sqlite"); err == nil {
		m.watcher = w
		defer w.Close()
	}
	m.refreshRows()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.waitForChange()
	}
	return nil
}

// refreshRows recomputes the display rows from the authoritative tree (or
// the drag engine's working tree while a drag is in flight, so intermediate
// positions are visible). Filters and grouping are suspended during a drag:
// reordering against a pruned view would make drop positions ambiguous.
func (m *Model) refreshRows() {
	if m.dragger.Dragging() {
		m.rows = flattenTasks(m.dragger.Tree())
	} else {
		view := tree.Project(m.board.Tasks, m.filters, m.sort)
		if m.grouped {
			m.rows = flattenGrouped(view)
		} else {
			m.rows = flattenTasks(view)
		}
	}
	if m.sel >= len(m.rows) {
		m.sel = len(m.rows) - 1
	}
	if m.sel < 0 {
		m.sel = 0
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	visible := m.visibleRowCount()
	if visible <= 0 {
		return
	}
	if m.sel < m.scroll {
		m.scroll = m.sel
	}
	if m.sel >= m.scroll+visible {
		m.scroll = m.sel - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *Model) visibleRowCount() int {
	// Header, filter line, footer.
	n := m.height - rowsStartY - 1
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) selectedTask() (model.Task, bool) {
	if m.sel < 0 || m.sel >= len(m.rows) || m.rows[m.sel].isHeader() {
		return model.Task{}, false
	}
	return m.rows[m.sel].task, true
}

// commit replaces the authoritative tree and persists it. Persist failures
// surface on the status line; the in-memory board stays usable.
func (m *Model) commit(tasks []model.Task) {
	m.board.Tasks = tasks
	if err := m.st.Save(m.board); err != nil {
		m.err = err
		m.status = fmt.Sprintf("save failed: %v", err)
	}
	m.refreshRows()
}

// reload re-reads the board after an external change, skipping the work
// when the content signature is unchanged.
func (m *Model) reload() {
	b, err := m.st.Load()
	if err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return
	}
	if b.Signature() == m.board.Signature() {
		return
	}
	if m.dragger.Dragging() {
		// Keep the drag's snapshot semantics intact; the reload lands on drop.
		return
	}
	m.board = b
	m.refreshRows()
	m.status = "board reloaded (external change)"
}
