// Package gamemath provides the geometry primitives shared by the level
// loader, the simulation core and the client renderer.
package gamemath

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry is returned when a shape has a zero or negative area,
// or when a slope's edge offsets fall outside its box.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Rect is an axis-aligned box. X/Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// NewRect validates and returns a rectangle.
func NewRect(x, y, w, h float64) (Rect, error) {
	if !(w > 0 && h > 0) {
		return Rect{}, fmt.Errorf("%w: rect %gx%g", ErrInvalidGeometry, w, h)
	}
	if !finite(x) || !finite(y) || !finite(w) || !finite(h) {
		return Rect{}, fmt.Errorf("%w: rect at %g,%g size %gx%g", ErrInvalidGeometry, x, y, w, h)
	}
	return Rect{X: x, Y: y, W: w, H: h}, nil
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Intersects reports whether the interiors of r and o overlap. Boxes that
// only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether the point lies inside r (edges inclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// SpanContainsX reports whether x lies within [left, right].
func (r Rect) SpanContainsX(x float64) bool {
	return x >= r.X && x <= r.Right()
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Resized returns a rect of the given size sharing r's center.
func (r Rect) Resized(w, h float64) Rect {
	return Rect{X: r.CenterX() - w/2, Y: r.CenterY() - h/2, W: w, H: h}
}

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	left := min(r.X, o.X)
	top := min(r.Y, o.Y)
	return Rect{
		X: left,
		Y: top,
		W: max(r.Right(), o.Right()) - left,
		H: max(r.Bottom(), o.Bottom()) - top,
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
