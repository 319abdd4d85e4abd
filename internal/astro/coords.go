package astro

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle wraps an angle in radians into [0, 2π).
func NormalizeAngle(rad float64) float64 {
	wrapped := math.Mod(rad, TwoPi)
	if wrapped < 0 {
		wrapped += TwoPi
	}
	// math.Mod can return exactly 2π after the correction for tiny negatives.
	if wrapped >= TwoPi {
		wrapped = 0
	}
	return wrapped
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x > hi {
		return hi
	}
	if x < lo {
		return lo
	}
	return x
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
