package gamemath

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speed, friction float64) float64 {
	if speed > friction {
		return speed - friction
	}
	if speed < -friction {
		return speed + friction
	}
	return 0
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// ArcParams returns the constant gravity and launch speed of a symmetric
// jump arc that peaks at height and lasts airtime frames.
func ArcParams(height, airtime float64) (gravity, impulse float64) {
	if airtime <= 0 {
		return 0, 0
	}
	gravity = 8 * height / (airtime * airtime)
	impulse = 4 * height / airtime
	return gravity, impulse
}
