package gamemath

import (
	"fmt"

	"github.com/automoto/flipside/mathutil"
)

// Slope is a ramp inside a box. The walkable surface runs in a straight line
// from (left, top+LeftOffset) to (right, top+RightOffset).
type Slope struct {
	Rect
	LeftOffset  float64
	RightOffset float64
}

// NewSlope validates the box and both offsets, which must lie in [0, h].
func NewSlope(box Rect, leftOffset, rightOffset float64) (Slope, error) {
	if box.W <= 0 || box.H <= 0 {
		return Slope{}, fmt.Errorf("%w: slope box %gx%g", ErrInvalidGeometry, box.W, box.H)
	}
	if leftOffset < 0 || leftOffset > box.H || rightOffset < 0 || rightOffset > box.H {
		return Slope{}, fmt.Errorf("%w: slope offsets %g,%g outside [0,%g]",
			ErrInvalidGeometry, leftOffset, rightOffset, box.H)
	}
	return Slope{Rect: box, LeftOffset: leftOffset, RightOffset: rightOffset}, nil
}

// HeightAt returns the surface y at world x. x is clamped to the slope's
// horizontal span so the function is defined everywhere.
func (s Slope) HeightAt(x float64) float64 {
	rel := mathutil.ClampFloat(x-s.X, 0, s.W) / s.W
	return s.Y + s.LeftOffset + (s.RightOffset-s.LeftOffset)*rel
}

// SnapToSurfaceY returns the top y that puts a box of height h on the
// surface.
func SnapToSurfaceY(h, surfaceY float64) float64 {
	return surfaceY - h
}
