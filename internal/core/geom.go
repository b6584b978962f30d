// Package core provides the terminal-independent drawing primitives of the
// client. It contains no external dependencies (especially no Bubble Tea) so
// that rendering can be tested without a terminal.
package core

// Rect is an axis-aligned area in screen or board cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport returns the window of a size×size board that fits in w×h cells,
// centered on (fx, fy) as far as the board edges allow. Coordinates are in
// screen order: row 0 is the top row of the board.
func Viewport(size, w, h, fx, fy int) Rect {
	vw := Min(size, Max(w, 0))
	vh := Min(size, Max(h, 0))
	if vw == 0 || vh == 0 {
		return Rect{}
	}
	x := Clamp(fx-vw/2, 0, size-vw)
	y := Clamp(fy-vh/2, 0, size-vh)
	return NewRect(x, y, vw, vh)
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
