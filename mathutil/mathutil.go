// Package mathutil holds small scalar helpers shared by the geometry and
// simulation packages.
package mathutil

// ClampFloat clamps v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// BoolToFloat maps true to 1 and false to 0. Used to turn held-key pairs
// into an axis value.
func BoolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
