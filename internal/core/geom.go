// Package core holds the platform-neutral types shared by the game and its hosts.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec is a real-valued grid position. X is the column, Y the row.
type Vec struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Cell returns the floored integer cell (col, row) that contains v.
func (v Vec) Cell() (int, int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y))
}

// Add returns v translated by (dx, dy).
func (v Vec) Add(dx, dy float64) Vec {
	return Vec{X: v.X + dx, Y: v.Y + dy}
}

// Dist returns the Euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// WrapInt normalizes i into [0, n).
func WrapInt(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// WrapFloat normalizes f into [0, n).
func WrapFloat(f float64, n int) float64 {
	size := float64(n)
	f = math.Mod(f, size)
	if f < 0 {
		f += size
	}
	// math.Mod can round a tiny negative back up to size.
	if f >= size {
		f = 0
	}
	return f
}

