// Package drag implements the pointer-driven reorder gesture as an explicit
// finite-state machine over the tree engine. A drag holds a working tree and
// a snapshot of the pre-drag tree; hover events reorder the working tree,
// Drop commits it, and Cancel restores the snapshot exactly. Modeling the
// gesture this way, with a single commit/cancel exit point, keeps the
// restore contract testable instead of scattering mutable flags across
// pointer handlers.
package drag

import (
	"strings"

	"driftboard/internal/model"
	"driftboard/internal/tree"
)

type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Engine is the drag state machine. The zero value is ready to use.
type Engine struct {
	state    State
	sourceID string
	snapshot []model.Task
	working  []model.Task

	lastY    int
	hasLastY bool
}

func New() *Engine { return &Engine{} }

func (e *Engine) State() State     { return e.state }
func (e *Engine) Dragging() bool   { return e.state == StateDragging }
func (e *Engine) SourceID() string { return e.sourceID }

// Tree returns the current working tree of an in-flight drag, for rendering
// intermediate positions. Outside a drag it returns nil.
func (e *Engine) Tree() []model.Task {
	if e.state != StateDragging {
		return nil
	}
	return e.working
}

// Start begins a drag of sourceID, recording a structural snapshot of the
// pre-drag tree so Cancel can restore it. It reports false (and stays Idle)
// when a drag is already in flight or sourceID is not in the tree.
func (e *Engine) Start(tasks []model.Task, sourceID string, pointerY int) bool {
	sourceID = strings.TrimSpace(sourceID)
	if e.state != StateIdle || sourceID == "" {
		return false
	}
	if _, ok := tree.Find(tasks, sourceID); !ok {
		return false
	}
	e.state = StateDragging
	e.sourceID = sourceID
	e.snapshot = model.CloneTasks(tasks)
	e.working = model.CloneTasks(tasks)
	e.lastY = pointerY
	e.hasLastY = true
	return true
}

// Hover evaluates one hover tick over a candidate row and reports whether a
// move fired. A move fires only when the pointer has crossed the candidate's
// vertical midpoint in the direction of travel: down past a lower target, up
// past a higher one. Hovering near a boundary without crossing, or repeating
// a tick at an unchanged position, is a no-op, which keeps the gesture
// stable under the many hover events a drag generates.
func (e *Engine) Hover(hoverID string, box Rect, pointerY int) bool {
	if e.state != StateDragging {
		return false
	}
	hoverID = strings.TrimSpace(hoverID)

	prev := e.lastY
	known := e.hasLastY
	e.lastY = pointerY
	e.hasLastY = true

	if hoverID == "" || hoverID == e.sourceID || !known || pointerY == prev {
		return false
	}

	// The midpoint must lie between the previous and current pointer
	// positions: the cursor actually crossed it this tick, in its direction
	// of travel. Sitting on one side of the boundary, however close, never
	// fires, and a crossing fires exactly once.
	mid := box.MidY()
	crossedDown := pointerY > prev && prev < mid && pointerY >= mid
	crossedUp := pointerY < prev && prev > mid && pointerY <= mid
	if !crossedDown && !crossedUp {
		return false
	}

	moved := tree.MoveTask(e.working, e.sourceID, hoverID)
	e.working = moved
	return true
}

// Drop commits the working tree as the new authoritative state and returns
// to Idle. It reports false when no drag is in flight.
func (e *Engine) Drop() ([]model.Task, bool) {
	if e.state != StateDragging {
		return nil, false
	}
	out := e.working
	e.reset()
	return out, true
}

// Cancel abandons the drag and returns the exact pre-drag snapshot. No
// partial mutation from hover moves survives a cancel.
func (e *Engine) Cancel() ([]model.Task, bool) {
	if e.state != StateDragging {
		return nil, false
	}
	out := e.snapshot
	e.reset()
	return out, true
}

func (e *Engine) reset() {
	e.state = StateIdle
	e.sourceID = ""
	e.snapshot = nil
	e.working = nil
	e.lastY = 0
	e.hasLastY = false
}
