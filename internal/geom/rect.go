// Package geom holds the integer rectangle arithmetic shared by the layout
// engine and the window manager core, including the ICCCM size-hint resolver.
package geom

import "fmt"

// Rect is an axis-aligned rectangle in root window co-ordinates. W and H do
// not include any border.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return r.X <= x && x < r.Right() && r.Y <= y && y < r.Bottom()
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersect returns the overlapping part of r and s, or the zero Rect.
func (r Rect) Intersect(s Rect) Rect {
	x0, y0 := max(r.X, s.X), max(r.Y, s.Y)
	x1, y1 := min(r.Right(), s.Right()), min(r.Bottom(), s.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// IntersectArea returns the area of the overlap of r and s.
func (r Rect) IntersectArea(s Rect) int {
	i := r.Intersect(s)
	return i.W * i.H
}

// Center returns a rectangle of r's size centered inside area.
func (r Rect) Center(area Rect) Rect {
	r.X = area.X + (area.W-r.W)/2
	r.Y = area.Y + (area.H-r.H)/2
	return r
}

// Outer grows r by a border of width bw on every side.
func (r Rect) Outer(bw int) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W + 2*bw, H: r.H + 2*bw}
}

// Move returns r with its origin at (x, y).
func (r Rect) Move(x, y int) Rect {
	r.X, r.Y = x, y
	return r
}
