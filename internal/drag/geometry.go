package drag

// Rect is an axis-aligned bounding box in screen cells. X/Y is the top-left
// corner; the right and bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point (x, y) falls inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// MidY returns the rect's vertical midpoint. Hover evaluation only needs
// this and a pointer Y coordinate; the engine is otherwise geometry-agnostic.
func (r Rect) MidY() int {
	return r.Y + r.H/2
}
